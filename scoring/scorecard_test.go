package scoring

import (
	"testing"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/stretchr/testify/assert"
)

func TestScorecardColumnsOrderedByTeamThenName(t *testing.T) {
	participants := []Participant{
		{UserId: 1, DisplayName: "Zoe", TeamId: 0},
		{UserId: 2, DisplayName: "Bob", TeamId: 2},
		{UserId: 3, DisplayName: "Alice", TeamId: 1},
		{UserId: 4, DisplayName: "Carol", TeamId: 2},
	}
	tournament := &repository.Tournament{Format: repository.FormatBestBall, TeamSize: 2}
	card := BuildScorecard(tournament, participants, nil)
	names := make([]string, 0, len(card.Participants))
	for _, p := range card.Participants {
		names = append(names, p.DisplayName)
	}
	// unassigned players go last
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Zoe"}, names)
}

func TestScorecardMarksAllScoresCountingOutsideBestBall(t *testing.T) {
	participants := []Participant{
		{UserId: 1, DisplayName: "Alice"},
		{UserId: 2, DisplayName: "Bob"},
	}
	tournament := &repository.Tournament{Format: repository.FormatStrokePlay, TeamSize: 1}
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(2, "2026-03-01", [5]int{3, 3, 3, 3, 3}),
	}
	card := BuildScorecard(tournament, participants, rounds)
	assert.Equal(t, 1, len(card.Days))
	day := card.Days[0]
	assert.Equal(t, "2026-03-01", day.Date)
	assert.Equal(t, 5, len(day.Rows))
	for _, row := range day.Rows {
		for _, cell := range row.Cells {
			assert.NotNil(t, cell.Strokes)
			assert.True(t, cell.IsCounting)
		}
	}
	assert.Equal(t, 10, day.PlayerTotals[1])
	assert.Equal(t, 15, day.PlayerTotals[2])
	assert.Nil(t, day.TeamTotals)
}

func TestScorecardBestBallCountingAndTeamTotals(t *testing.T) {
	participants := []Participant{
		{UserId: 1, DisplayName: "Alice", TeamId: 1},
		{UserId: 2, DisplayName: "Bob", TeamId: 1},
	}
	tournament := &repository.Tournament{Format: repository.FormatBestBall, TeamSize: 2}
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 5, 3, 5, 2}),
		newRound(2, "2026-03-01", [5]int{5, 2, 3, 2, 5}),
	}
	card := BuildScorecard(tournament, participants, rounds)
	day := card.Days[0]
	assert.Equal(t, 11, day.TeamTotals[1])

	// blue: Alice counts, Bob does not
	blue := day.Rows[0]
	assert.Equal(t, repository.ColorBlue, blue.Color)
	assert.True(t, blue.Cells[0].IsCounting)
	assert.False(t, blue.Cells[1].IsCounting)

	// red is tied at 3, both count
	red := day.Rows[2]
	assert.True(t, red.Cells[0].IsCounting)
	assert.True(t, red.Cells[1].IsCounting)

	assert.Equal(t, 17, day.PlayerTotals[1])
	assert.Equal(t, 17, day.PlayerTotals[2])
}

func TestScorecardAbsentPlayerGetsNilCells(t *testing.T) {
	participants := []Participant{
		{UserId: 1, DisplayName: "Alice"},
		{UserId: 2, DisplayName: "Bob"},
	}
	tournament := &repository.Tournament{Format: repository.FormatStrokePlay, TeamSize: 1}
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
	}
	card := BuildScorecard(tournament, participants, rounds)
	day := card.Days[0]
	for _, row := range day.Rows {
		assert.Nil(t, row.Cells[1].Strokes)
		assert.False(t, row.Cells[1].IsCounting)
	}
	assert.Equal(t, 0, day.PlayerTotals[2])
}

func TestScorecardDaysAscending(t *testing.T) {
	participants := []Participant{{UserId: 1, DisplayName: "Alice"}}
	tournament := &repository.Tournament{Format: repository.FormatStrokePlay, TeamSize: 1}
	rounds := []*repository.Round{
		newRound(1, "2026-03-05", [5]int{2, 2, 2, 2, 2}),
		newRound(1, "2026-03-01", [5]int{3, 3, 3, 3, 3}),
	}
	card := BuildScorecard(tournament, participants, rounds)
	assert.Equal(t, 2, len(card.Days))
	assert.Equal(t, "2026-03-01", card.Days[0].Date)
	assert.Equal(t, "2026-03-05", card.Days[1].Date)
}
