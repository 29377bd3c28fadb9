package repository

import (
	"time"

	"gorm.io/gorm"
)

type HoleColor string

const (
	ColorBlue   HoleColor = "blue"
	ColorYellow HoleColor = "yellow"
	ColorRed    HoleColor = "red"
	ColorPurple HoleColor = "purple"
	ColorGreen  HoleColor = "green"
)

// HoleColors is the canonical color order. Scorecard rows and the skins
// traversal depend on this exact ordering.
var HoleColors = []HoleColor{ColorBlue, ColorYellow, ColorRed, ColorPurple, ColorGreen}

type Round struct {
	Id           int    `gorm:"primaryKey" json:"id"`
	UserId       int    `gorm:"not null;uniqueIndex:idx_rounds_user_day" json:"user_id"`
	PlayedDate   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_rounds_user_day" json:"played_date"`
	TotalStrokes int    `gorm:"not null" json:"total_strokes"`
	RawInput     string `json:"raw_input"`
	CreatedAt    time.Time
	HoleScores   []*HoleScore `gorm:"constraint:OnDelete:CASCADE" json:"hole_scores,omitempty"`
}

type HoleScore struct {
	Id         int       `gorm:"primaryKey" json:"id"`
	RoundId    int       `gorm:"not null;index" json:"round_id"`
	Color      HoleColor `gorm:"type:hole_color;not null" json:"color"`
	Strokes    int       `gorm:"not null" json:"strokes"`
	HoleNumber int       `gorm:"not null" json:"hole_number"`
}

type RoundRepository struct {
	DB *gorm.DB
}

func NewRoundRepository(db *gorm.DB) *RoundRepository {
	return &RoundRepository{DB: db}
}

// CreateWithHoleScores inserts the round and its five hole scores in one
// transaction. A failed hole insert rolls the round back too; a round must
// never exist without its holes.
func (r *RoundRepository) CreateWithHoleScores(round *Round) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		holes := round.HoleScores
		round.HoleScores = nil
		if err := tx.Create(round).Error; err != nil {
			return err
		}
		for _, hole := range holes {
			hole.RoundId = round.Id
		}
		if err := tx.Create(holes).Error; err != nil {
			return err
		}
		round.HoleScores = holes
		return nil
	})
}

func (r *RoundRepository) GetRoundById(roundId int) (*Round, error) {
	var round Round
	result := r.DB.Preload("HoleScores").First(&round, roundId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &round, nil
}

func (r *RoundRepository) GetRoundsForUser(userId int) ([]*Round, error) {
	rounds := make([]*Round, 0)
	result := r.DB.Preload("HoleScores").
		Where("user_id = ?", userId).
		Order("played_date DESC").
		Find(&rounds)
	if result.Error != nil {
		return nil, result.Error
	}
	return rounds, nil
}

func (r *RoundRepository) GetRoundByUserAndDate(userId int, playedDate string) (*Round, error) {
	var round Round
	result := r.DB.First(&round, "user_id = ? AND played_date = ?", userId, playedDate)
	if result.Error != nil {
		return nil, result.Error
	}
	return &round, nil
}

// GetRoundsInWindow returns all rounds for the given users inside the
// inclusive date window, hole scores attached, oldest first. This is the
// query feeding every standings and scorecard computation.
func (r *RoundRepository) GetRoundsInWindow(userIds []int, startDate string, endDate string) ([]*Round, error) {
	rounds := make([]*Round, 0)
	if len(userIds) == 0 {
		return rounds, nil
	}
	result := r.DB.Preload("HoleScores").
		Where("user_id IN ? AND played_date >= ? AND played_date <= ?", userIds, startDate, endDate).
		Order("played_date ASC").
		Find(&rounds)
	if result.Error != nil {
		return nil, result.Error
	}
	return rounds, nil
}

// DeleteOwned deletes a round only if it belongs to the given user.
func (r *RoundRepository) DeleteOwned(roundId int, userId int) error {
	result := r.DB.Delete(&Round{}, "id = ? AND user_id = ?", roundId, userId)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
