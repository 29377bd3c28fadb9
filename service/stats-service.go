package service

import (
	"math"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"gorm.io/gorm"
)

type StatsService struct {
	roundRepository *repository.RoundRepository
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{
		roundRepository: repository.NewRoundRepository(db),
	}
}

type ColorStats struct {
	Rounds         int     `json:"rounds"`
	AverageStrokes float64 `json:"average_strokes"`
	BestStrokes    int     `json:"best_strokes"`
}

type UserStats struct {
	TotalRounds    int                                 `json:"total_rounds"`
	TotalStrokes   int                                 `json:"total_strokes"`
	AverageStrokes float64                             `json:"average_strokes"`
	BestRound      int                                 `json:"best_round"`
	BestRoundDate  string                              `json:"best_round_date"`
	CurrentStreak  int                                 `json:"current_streak"`
	PerColor       map[repository.HoleColor]ColorStats `json:"per_color"`
}

func (s *StatsService) GetStatsForUser(userId int) (*UserStats, error) {
	rounds, err := s.roundRepository.GetRoundsForUser(userId)
	if err != nil {
		return nil, err
	}
	return computeStats(rounds, time.Now()), nil
}

func computeStats(rounds []*repository.Round, now time.Time) *UserStats {
	stats := &UserStats{
		PerColor: make(map[repository.HoleColor]ColorStats),
	}
	if len(rounds) == 0 {
		return stats
	}

	played := make(map[string]bool, len(rounds))
	colorTotals := make(map[repository.HoleColor]int)
	for _, round := range rounds {
		stats.TotalRounds++
		stats.TotalStrokes += round.TotalStrokes
		played[round.PlayedDate] = true
		if stats.BestRound == 0 || round.TotalStrokes < stats.BestRound {
			stats.BestRound = round.TotalStrokes
			stats.BestRoundDate = round.PlayedDate
		}
		for _, hole := range round.HoleScores {
			entry := stats.PerColor[hole.Color]
			entry.Rounds++
			colorTotals[hole.Color] += hole.Strokes
			if entry.BestStrokes == 0 || hole.Strokes < entry.BestStrokes {
				entry.BestStrokes = hole.Strokes
			}
			stats.PerColor[hole.Color] = entry
		}
	}
	stats.AverageStrokes = roundToTenth(float64(stats.TotalStrokes) / float64(stats.TotalRounds))
	for color, entry := range stats.PerColor {
		entry.AverageStrokes = roundToTenth(float64(colorTotals[color]) / float64(entry.Rounds))
		stats.PerColor[color] = entry
	}

	// Streak counts consecutive played days ending today, or ending
	// yesterday when today's round has not come in yet.
	offset := 0
	if !played[utils.LocalDateStr(now)] {
		offset = 1
	}
	for {
		date := utils.LocalDateStr(now.AddDate(0, 0, -(offset + stats.CurrentStreak)))
		if !played[date] {
			break
		}
		stats.CurrentStreak++
	}
	return stats
}

func roundToTenth(value float64) float64 {
	return math.Round(value*10) / 10
}
