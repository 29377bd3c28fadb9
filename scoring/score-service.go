package scoring

import (
	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"gorm.io/gorm"
)

type ScoreService struct {
	tournamentRepository *repository.TournamentRepository
	roundRepository      *repository.RoundRepository
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{
		tournamentRepository: repository.NewTournamentRepository(db),
		roundRepository:      repository.NewRoundRepository(db),
	}
}

func (s *ScoreService) loadTournament(tournamentId int) (*repository.Tournament, []Participant, []*repository.Round, error) {
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId)
	if err != nil {
		return nil, nil, nil, err
	}
	dbParticipants, err := s.tournamentRepository.GetParticipants(tournamentId)
	if err != nil {
		return nil, nil, nil, err
	}
	participants := utils.Map(dbParticipants, func(p *repository.TournamentParticipant) Participant {
		name := ""
		if p.User != nil {
			name = p.User.DisplayName
		}
		return Participant{UserId: p.UserId, TeamId: p.TeamId, DisplayName: name}
	})
	userIds := utils.Map(participants, func(p Participant) int { return p.UserId })
	rounds, err := s.roundRepository.GetRoundsInWindow(userIds, tournament.StartDate, tournament.EndDate)
	if err != nil {
		return nil, nil, nil, err
	}
	return tournament, participants, rounds, nil
}

func (s *ScoreService) GetStandings(tournamentId int) ([]*StandingEntry, error) {
	tournament, participants, rounds, err := s.loadTournament(tournamentId)
	if err != nil {
		return nil, err
	}
	return ComputeStandings(tournament, participants, rounds), nil
}

func (s *ScoreService) GetScorecard(tournamentId int) (*Scorecard, error) {
	tournament, participants, rounds, err := s.loadTournament(tournamentId)
	if err != nil {
		return nil, err
	}
	return BuildScorecard(tournament, participants, rounds), nil
}
