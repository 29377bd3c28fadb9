package scoring

import (
	"testing"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/stretchr/testify/assert"
)

func newRound(userId int, date string, strokes [5]int) *repository.Round {
	total := 0
	holes := make([]*repository.HoleScore, 0, 5)
	for i, s := range strokes {
		holes = append(holes, &repository.HoleScore{
			Color:      repository.HoleColors[i],
			Strokes:    s,
			HoleNumber: i + 1,
		})
		total += s
	}
	return &repository.Round{
		UserId:       userId,
		PlayedDate:   date,
		TotalStrokes: total,
		HoleScores:   holes,
	}
}

var alice = Participant{UserId: 1, DisplayName: "Alice"}
var bob = Participant{UserId: 2, DisplayName: "Bob"}
var carol = Participant{UserId: 3, DisplayName: "Carol"}

func TestStrokePlayRanksByTotalAscending(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{3, 3, 3, 3, 3}),
		newRound(2, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(1, "2026-03-02", [5]int{2, 2, 2, 2, 2}),
		newRound(2, "2026-03-02", [5]int{3, 3, 3, 3, 4}),
	}
	entries := calcStrokePlay([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "Alice", entries[0].DisplayName)
	assert.Equal(t, 25.0, entries[0].Score)
	assert.Equal(t, 2, entries[0].RoundsPlayed)
	assert.Equal(t, "25 strokes (2 rounds)", entries[0].Detail)
	assert.Equal(t, 26.0, entries[1].Score)
}

func TestStrokePlayRanksNoRoundsLast(t *testing.T) {
	rounds := []*repository.Round{
		newRound(2, "2026-03-01", [5]int{9, 9, 9, 9, 9}),
	}
	entries := calcStrokePlay([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, "Bob", entries[0].DisplayName)
	assert.Equal(t, "Alice", entries[1].DisplayName)
	assert.Equal(t, 0.0, entries[1].Score)
	assert.Equal(t, 0, entries[1].RoundsPlayed)
}

func TestMatchPlayPointsSumToFivePerDate(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 3, 3}),
		newRound(2, "2026-03-01", [5]int{3, 3, 3, 3, 3}),
	}
	entries := calcMatchPlay([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, "Alice", entries[0].DisplayName)
	assert.Equal(t, 4.0, entries[0].Score)
	assert.Equal(t, 1.0, entries[1].Score)
	assert.Equal(t, 3, *entries[0].ClassicScore)
	assert.Equal(t, -3, *entries[1].ClassicScore)
	assert.Equal(t, "4 pts", entries[0].Detail)
}

func TestMatchPlayHalfPointFormatting(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 3, 3, 3}),
		newRound(2, "2026-03-01", [5]int{3, 3, 2, 3, 3}),
	}
	entries := calcMatchPlay([]Participant{alice, bob}, rounds, 1)
	// two wins, one loss, two halves
	assert.Equal(t, 3.0, entries[0].Score)
	assert.Equal(t, 2.0, entries[1].Score)
	assert.Equal(t, 1, *entries[0].ClassicScore)

	rounds = append(rounds,
		newRound(1, "2026-03-02", [5]int{2, 3, 3, 3, 3}),
		newRound(2, "2026-03-02", [5]int{3, 3, 3, 3, 3}),
	)
	entries = calcMatchPlay([]Participant{alice, bob}, rounds, 1)
	// day two adds one win and four halves
	assert.Equal(t, 6.0, entries[0].Score)
	assert.Equal(t, 4.0, entries[1].Score)
	assert.Equal(t, "6 pts", entries[0].Detail)

	rounds = append(rounds,
		newRound(1, "2026-03-03", [5]int{3, 3, 3, 3, 3}),
		newRound(3, "2026-03-03", [5]int{2, 3, 3, 3, 3}),
	)
	entries = calcMatchPlay([]Participant{alice, bob, carol}, rounds, 1)
	// Alice loses one hole and halves four against Carol
	assert.Equal(t, 8.0, entries[0].Score)
	assert.Equal(t, "Alice", entries[0].DisplayName)
	assert.Equal(t, "8 pts", entries[0].Detail)
	for _, entry := range entries {
		if entry.DisplayName == "Carol" {
			assert.Equal(t, 3.0, entry.Score)
			assert.Equal(t, 1, entry.RoundsPlayed)
		}
	}
}

func TestMatchPlaySkipsUnsharedDates(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
	}
	entries := calcMatchPlay([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, 0.0, entries[0].Score)
	assert.Equal(t, 0.0, entries[1].Score)
	assert.Equal(t, 1, entries[0].RoundsPlayed)
}

func TestBestBallUsesTeamMinimumPerColor(t *testing.T) {
	teamAlice := Participant{UserId: 1, DisplayName: "Alice", TeamId: 1}
	teamBob := Participant{UserId: 2, DisplayName: "Bob", TeamId: 1}
	teamCarol := Participant{UserId: 3, DisplayName: "Carol", TeamId: 2}
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 5, 2, 5, 2}),
		newRound(2, "2026-03-01", [5]int{5, 2, 5, 2, 5}),
		newRound(3, "2026-03-01", [5]int{3, 3, 3, 3, 3}),
	}
	entries := calcBestBall([]Participant{teamAlice, teamBob, teamCarol}, rounds, 2)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "Team 1: Alice & Bob", entries[0].DisplayName)
	assert.Equal(t, 10.0, entries[0].Score)
	assert.Equal(t, 1, entries[0].RoundsPlayed)
	assert.Equal(t, "10 strokes (1 days)", entries[0].Detail)
	assert.Equal(t, "Team 2: Carol", entries[1].DisplayName)
	assert.Equal(t, 15.0, entries[1].Score)
}

func TestBestBallCountsDayWhenAnyMemberPlays(t *testing.T) {
	teamAlice := Participant{UserId: 1, DisplayName: "Alice", TeamId: 1}
	teamBob := Participant{UserId: 2, DisplayName: "Bob", TeamId: 1}
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(2, "2026-03-02", [5]int{4, 4, 4, 4, 4}),
	}
	entries := calcBestBall([]Participant{teamAlice, teamBob}, rounds, 2)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, 30.0, entries[0].Score)
	assert.Equal(t, 2, entries[0].RoundsPlayed)
}

func TestBestBallDegradesToStrokePlayForSingles(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(2, "2026-03-01", [5]int{3, 3, 3, 3, 3}),
	}
	entries := calcBestBall([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "Alice", entries[0].DisplayName)
	assert.Equal(t, "10 strokes (1 rounds)", entries[0].Detail)
}

func TestSkinsAllTiedAwardsNothing(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(2, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
	}
	entries := calcSkins([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, 0.0, entries[0].Score)
	assert.Equal(t, 0.0, entries[1].Score)
}

func TestSkinsCarryoverPaysOutOnOutrightWin(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(2, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(1, "2026-03-02", [5]int{1, 2, 2, 2, 2}),
		newRound(2, "2026-03-02", [5]int{2, 2, 2, 2, 2}),
	}
	entries := calcSkins([]Participant{alice, bob}, rounds, 1)
	// five carried skins from day one plus the blue win itself
	assert.Equal(t, "Alice", entries[0].DisplayName)
	assert.Equal(t, 6.0, entries[0].Score)
	assert.Equal(t, "6 skins", entries[0].Detail)
	assert.Equal(t, 0.0, entries[1].Score)
}

func TestSkinsUnderContestedColorsCarry(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
		newRound(1, "2026-03-02", [5]int{1, 2, 2, 2, 2}),
		newRound(2, "2026-03-02", [5]int{2, 2, 2, 2, 2}),
	}
	entries := calcSkins([]Participant{alice, bob}, rounds, 1)
	// day one had a single player, so all five colors carried
	assert.Equal(t, 6.0, entries[0].Score)
}

func TestSkinsLateLowScoreStillWins(t *testing.T) {
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{3, 2, 2, 2, 2}),
		newRound(2, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
	}
	entries := calcSkins([]Participant{alice, bob}, rounds, 1)
	assert.Equal(t, "Bob", entries[0].DisplayName)
	assert.Equal(t, 1.0, entries[0].Score)
}

func TestComputeStandingsDispatchesOnFormat(t *testing.T) {
	tournament := &repository.Tournament{
		Format:   repository.FormatStrokePlay,
		TeamSize: 1,
	}
	rounds := []*repository.Round{
		newRound(1, "2026-03-01", [5]int{2, 2, 2, 2, 2}),
	}
	entries := ComputeStandings(tournament, []Participant{alice}, rounds)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, 10.0, entries[0].Score)

	tournament.Format = repository.TournamentFormat("croquet")
	entries = ComputeStandings(tournament, []Participant{alice}, rounds)
	assert.Equal(t, 0, len(entries))
}
