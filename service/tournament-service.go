package service

import (
	"errors"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"gorm.io/gorm"
)

type TournamentService struct {
	tournamentRepository *repository.TournamentRepository
	groupRepository      *repository.GroupRepository
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{
		tournamentRepository: repository.NewTournamentRepository(db),
		groupRepository:      repository.NewGroupRepository(db),
	}
}

type TournamentCreate struct {
	Name      string                      `json:"name" binding:"required"`
	Format    repository.TournamentFormat `json:"format" binding:"required"`
	StartDate string                      `json:"start_date" binding:"required"`
	EndDate   string                      `json:"end_date" binding:"required"`
	TeamSize  int                         `json:"team_size"`
}

// CreateTournament validates the window and format, stores the
// tournament and enrolls the creator. Requires group owner or admin.
func (s *TournamentService) CreateTournament(groupId int, actorId int, create *TournamentCreate) (*repository.Tournament, error) {
	if err := s.requireGroupAdmin(groupId, actorId); err != nil {
		return nil, err
	}
	if !utils.Contains(repository.TournamentFormats, create.Format) {
		return nil, ErrInvalidFormat
	}
	if !validDate(create.StartDate) || !validDate(create.EndDate) {
		return nil, ErrInvalidDate
	}
	if create.EndDate < create.StartDate {
		return nil, ErrInvalidDateRange
	}
	teamSize := create.TeamSize
	if teamSize == 0 {
		teamSize = 1
	}
	if teamSize < 1 {
		return nil, ErrInvalidTeamSize
	}

	tournament := &repository.Tournament{
		GroupId:   groupId,
		Name:      create.Name,
		Format:    create.Format,
		StartDate: create.StartDate,
		EndDate:   create.EndDate,
		TeamSize:  teamSize,
		CreatedBy: actorId,
	}
	tournament, err := s.tournamentRepository.Save(tournament)
	if err != nil {
		return nil, err
	}

	creator := &repository.TournamentParticipant{
		TournamentId: tournament.Id,
		UserId:       actorId,
	}
	if tournament.IsTeamFormat() {
		creator.TeamId = 1
	}
	if err := s.tournamentRepository.AddParticipant(creator); err != nil {
		return nil, err
	}
	return tournament, nil
}

// GetTournament is visible to members of the owning group.
func (s *TournamentService) GetTournament(tournamentId int, userId int) (*repository.Tournament, error) {
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.requireGroupMember(tournament.GroupId, userId); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) GetTournamentsForGroup(groupId int, userId int) ([]*repository.Tournament, error) {
	if err := s.requireGroupMember(groupId, userId); err != nil {
		return nil, err
	}
	return s.tournamentRepository.GetTournamentsForGroup(groupId)
}

func (s *TournamentService) GetParticipants(tournamentId int, userId int) ([]*repository.TournamentParticipant, error) {
	if _, err := s.GetTournament(tournamentId, userId); err != nil {
		return nil, err
	}
	return s.tournamentRepository.GetParticipants(tournamentId)
}

func (s *TournamentService) JoinTournament(tournamentId int, userId int) error {
	tournament, err := s.GetTournament(tournamentId, userId)
	if err != nil {
		return err
	}
	if _, err := s.tournamentRepository.GetParticipant(tournamentId, userId); err == nil {
		return ErrDuplicateParticipant
	}
	return s.tournamentRepository.AddParticipant(&repository.TournamentParticipant{
		TournamentId: tournament.Id,
		UserId:       userId,
	})
}

// AddParticipant lets a group admin enroll another group member.
func (s *TournamentService) AddParticipant(tournamentId int, actorId int, userId int) error {
	tournament, err := s.GetTournament(tournamentId, actorId)
	if err != nil {
		return err
	}
	if err := s.requireGroupAdmin(tournament.GroupId, actorId); err != nil {
		return err
	}
	if err := s.requireGroupMember(tournament.GroupId, userId); err != nil {
		return err
	}
	if _, err := s.tournamentRepository.GetParticipant(tournamentId, userId); err == nil {
		return ErrDuplicateParticipant
	}
	return s.tournamentRepository.AddParticipant(&repository.TournamentParticipant{
		TournamentId: tournamentId,
		UserId:       userId,
	})
}

// RemoveParticipant allows leaving on your own or removal by a group admin.
func (s *TournamentService) RemoveParticipant(tournamentId int, actorId int, userId int) error {
	tournament, err := s.GetTournament(tournamentId, actorId)
	if err != nil {
		return err
	}
	if actorId != userId {
		if err := s.requireGroupAdmin(tournament.GroupId, actorId); err != nil {
			return err
		}
	}
	if _, err := s.tournamentRepository.GetParticipant(tournamentId, userId); err != nil {
		return ErrNotParticipant
	}
	return s.tournamentRepository.RemoveParticipant(tournamentId, userId)
}

// AssignTeam sets a participant's team. Team 0 unassigns.
func (s *TournamentService) AssignTeam(tournamentId int, actorId int, userId int, teamId int) error {
	tournament, err := s.GetTournament(tournamentId, actorId)
	if err != nil {
		return err
	}
	if err := s.requireGroupAdmin(tournament.GroupId, actorId); err != nil {
		return err
	}
	if teamId < 0 {
		return ErrInvalidTeamId
	}
	err = s.tournamentRepository.AssignTeam(tournamentId, userId, teamId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotParticipant
	}
	return err
}

func (s *TournamentService) DeleteTournament(tournamentId int, actorId int) error {
	tournament, err := s.GetTournament(tournamentId, actorId)
	if err != nil {
		return err
	}
	if err := s.requireGroupAdmin(tournament.GroupId, actorId); err != nil {
		return err
	}
	return s.tournamentRepository.Delete(tournamentId)
}

func (s *TournamentService) requireGroupMember(groupId int, userId int) error {
	_, err := s.groupRepository.GetMember(groupId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotGroupMember
	}
	return err
}

func (s *TournamentService) requireGroupAdmin(groupId int, userId int) error {
	member, err := s.groupRepository.GetMember(groupId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotGroupMember
	}
	if err != nil {
		return err
	}
	if !member.Role.CanManage() {
		return ErrNotGroupAdmin
	}
	return nil
}

func validDate(date string) bool {
	_, err := time.Parse(utils.DateLayout, date)
	return err == nil
}
