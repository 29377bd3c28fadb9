package repository

import (
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"gorm.io/gorm"
)

type TournamentFormat string

const (
	FormatStrokePlay TournamentFormat = "stroke_play"
	FormatMatchPlay  TournamentFormat = "match_play"
	FormatBestBall   TournamentFormat = "best_ball"
	FormatSkins      TournamentFormat = "skins"
)

var TournamentFormats = []TournamentFormat{FormatStrokePlay, FormatMatchPlay, FormatBestBall, FormatSkins}

// TournamentStatus is derived from the date window, never stored.
type TournamentStatus string

const (
	StatusUpcoming TournamentStatus = "Upcoming"
	StatusLive     TournamentStatus = "Live"
	StatusFinal    TournamentStatus = "Final"
)

type Tournament struct {
	Id        int              `gorm:"primaryKey" json:"id"`
	GroupId   int              `gorm:"not null;index" json:"group_id"`
	Name      string           `gorm:"not null" json:"name"`
	Format    TournamentFormat `gorm:"type:tournament_format;not null" json:"format"`
	StartDate string           `gorm:"type:varchar(10);not null" json:"start_date"`
	EndDate   string           `gorm:"type:varchar(10);not null" json:"end_date"`
	TeamSize  int              `gorm:"not null;default:1" json:"team_size"`
	CreatedBy int              `gorm:"not null" json:"created_by"`
	CreatedAt time.Time
}

// StatusOn derives the lifecycle status for a given local calendar date.
// Dates are YYYY-MM-DD strings, so string comparison is date comparison.
func (t *Tournament) StatusOn(today string) TournamentStatus {
	if today > t.EndDate {
		return StatusFinal
	}
	if today >= t.StartDate {
		return StatusLive
	}
	return StatusUpcoming
}

func (t *Tournament) Status() TournamentStatus {
	return t.StatusOn(utils.Today())
}

func (t *Tournament) IsTeamFormat() bool {
	return t.Format == FormatBestBall && t.TeamSize > 1
}

// TeamId 0 means unassigned. Assigned teams are numbered from 1.
type TournamentParticipant struct {
	TournamentId int `gorm:"primaryKey" json:"tournament_id"`
	UserId       int `gorm:"primaryKey" json:"user_id"`
	TeamId       int `gorm:"not null;default:0" json:"team_id"`
	CreatedAt    time.Time
	User         *User `gorm:"foreignKey:UserId" json:"user,omitempty"`
}

type TournamentRepository struct {
	DB *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) *TournamentRepository {
	return &TournamentRepository{DB: db}
}

func (r *TournamentRepository) Save(tournament *Tournament) (*Tournament, error) {
	result := r.DB.Save(tournament)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournament, nil
}

func (r *TournamentRepository) GetTournamentById(tournamentId int) (*Tournament, error) {
	var tournament Tournament
	result := r.DB.First(&tournament, tournamentId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &tournament, nil
}

func (r *TournamentRepository) GetTournamentsForGroup(groupId int) ([]*Tournament, error) {
	tournaments := make([]*Tournament, 0)
	result := r.DB.Where("group_id = ?", groupId).Order("start_date DESC").Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

// GetTournamentsInPlay returns tournaments whose window contains today,
// used by the daily digest job.
func (r *TournamentRepository) GetTournamentsInPlay(today string) ([]*Tournament, error) {
	tournaments := make([]*Tournament, 0)
	result := r.DB.Where("start_date <= ? AND end_date >= ?", today, today).Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

func (r *TournamentRepository) GetParticipants(tournamentId int) ([]*TournamentParticipant, error) {
	participants := make([]*TournamentParticipant, 0)
	result := r.DB.Preload("User").Where("tournament_id = ?", tournamentId).Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}
	return participants, nil
}

func (r *TournamentRepository) GetParticipant(tournamentId int, userId int) (*TournamentParticipant, error) {
	var participant TournamentParticipant
	result := r.DB.First(&participant, "tournament_id = ? AND user_id = ?", tournamentId, userId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &participant, nil
}

func (r *TournamentRepository) AddParticipant(participant *TournamentParticipant) error {
	return r.DB.Create(participant).Error
}

func (r *TournamentRepository) AssignTeam(tournamentId int, userId int, teamId int) error {
	result := r.DB.Model(&TournamentParticipant{}).
		Where("tournament_id = ? AND user_id = ?", tournamentId, userId).
		Update("team_id", teamId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TournamentRepository) RemoveParticipant(tournamentId int, userId int) error {
	return r.DB.Delete(&TournamentParticipant{}, "tournament_id = ? AND user_id = ?", tournamentId, userId).Error
}

func (r *TournamentRepository) Delete(tournamentId int) error {
	return r.DB.Delete(&Tournament{}, tournamentId).Error
}
