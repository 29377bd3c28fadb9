package scoring

import (
	"sort"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
)

// RoundIndex is the date -> userId -> color -> strokes lookup shared by
// the standings calculators and the scorecard aggregator.
type RoundIndex map[string]map[int]map[repository.HoleColor]int

func NewRoundIndex(rounds []*repository.Round) RoundIndex {
	index := make(RoundIndex)
	for _, round := range rounds {
		day, ok := index[round.PlayedDate]
		if !ok {
			day = make(map[int]map[repository.HoleColor]int)
			index[round.PlayedDate] = day
		}
		holes := make(map[repository.HoleColor]int, len(round.HoleScores))
		for _, hole := range round.HoleScores {
			holes[hole.Color] = hole.Strokes
		}
		day[round.UserId] = holes
	}
	return index
}

// Dates returns every date with at least one round, ascending.
func (index RoundIndex) Dates() []string {
	dates := make([]string, 0, len(index))
	for date := range index {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (index RoundIndex) Played(date string, userId int) bool {
	_, ok := index[date][userId]
	return ok
}

// Strokes reports the strokes a player took on one color on one date. The
// second return is false when the player did not play that hole; absence
// is never a score of zero.
func (index RoundIndex) Strokes(date string, userId int, color repository.HoleColor) (int, bool) {
	strokes, ok := index[date][userId][color]
	return strokes, ok
}

// DaysPlayed counts the dates on which the player has a round.
func (index RoundIndex) DaysPlayed(userId int) int {
	days := 0
	for date := range index {
		if index.Played(date, userId) {
			days++
		}
	}
	return days
}
