package scoring

import (
	"sort"

	"github.com/jlp0422/coffee-golf-leaderboard/metrics"
	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/prometheus/client_golang/prometheus"
)

// ScorecardCell is one player's result on one color. Strokes is nil when
// the player did not play that date. IsCounting marks the scores that
// feed the tournament result; under best ball only each team's low score
// counts, everywhere else every recorded score counts.
type ScorecardCell struct {
	UserId      int    `json:"user_id"`
	DisplayName string `json:"display_name"`
	TeamId      int    `json:"team_id"`
	Strokes     *int   `json:"strokes"`
	IsCounting  bool   `json:"is_counting"`
}

type ScorecardRow struct {
	Color repository.HoleColor `json:"color"`
	Cells []ScorecardCell      `json:"cells"`
}

type ScorecardDay struct {
	Date         string         `json:"date"`
	Rows         []ScorecardRow `json:"rows"`
	TeamTotals   map[int]int    `json:"team_totals,omitempty"`
	PlayerTotals map[int]int    `json:"player_totals"`
}

type Scorecard struct {
	Days         []ScorecardDay `json:"days"`
	Participants []Participant  `json:"participants"`
}

// BuildScorecard renders the per-date, per-color grid for a tournament.
// Columns are the participants ordered by team (unassigned last) then
// name; rows follow the canonical color order. Only dates with at least
// one round appear.
func BuildScorecard(tournament *repository.Tournament, participants []Participant, rounds []*repository.Round) *Scorecard {
	timer := prometheus.NewTimer(metrics.ScorecardDuration)
	defer timer.ObserveDuration()

	columns := make([]Participant, len(participants))
	copy(columns, participants)
	sort.SliceStable(columns, func(i, j int) bool {
		a, b := columns[i], columns[j]
		if a.TeamId != b.TeamId {
			if a.TeamId == 0 || b.TeamId == 0 {
				return b.TeamId == 0
			}
			return a.TeamId < b.TeamId
		}
		return a.DisplayName < b.DisplayName
	})

	teamMembers := make(map[int][]int)
	for _, p := range columns {
		if p.TeamId != 0 {
			teamMembers[p.TeamId] = append(teamMembers[p.TeamId], p.UserId)
		}
	}
	isBestBall := tournament.IsTeamFormat()

	index := NewRoundIndex(rounds)
	days := make([]ScorecardDay, 0, len(index))
	for _, date := range index.Dates() {
		rows := make([]ScorecardRow, 0, len(repository.HoleColors))
		playerTotals := make(map[int]int, len(columns))
		for _, p := range columns {
			playerTotals[p.UserId] = 0
		}
		teamTotals := make(map[int]int)

		for _, color := range repository.HoleColors {
			counting := make(map[int]bool)
			if isBestBall {
				for teamId, members := range teamMembers {
					best, found := 0, false
					for _, userId := range members {
						strokes, ok := index.Strokes(date, userId, color)
						if ok && (!found || strokes < best) {
							best, found = strokes, true
						}
					}
					if !found {
						continue
					}
					teamTotals[teamId] += best
					// every member matching the team low counts, ties included
					for _, userId := range members {
						if strokes, ok := index.Strokes(date, userId, color); ok && strokes == best {
							counting[userId] = true
						}
					}
				}
			}

			cells := make([]ScorecardCell, 0, len(columns))
			for _, p := range columns {
				cell := ScorecardCell{
					UserId:      p.UserId,
					DisplayName: p.DisplayName,
					TeamId:      p.TeamId,
				}
				if strokes, ok := index.Strokes(date, p.UserId, color); ok {
					s := strokes
					cell.Strokes = &s
					cell.IsCounting = !isBestBall || counting[p.UserId]
					playerTotals[p.UserId] += strokes
				}
				cells = append(cells, cell)
			}
			rows = append(rows, ScorecardRow{Color: color, Cells: cells})
		}

		day := ScorecardDay{
			Date:         date,
			Rows:         rows,
			PlayerTotals: playerTotals,
		}
		if isBestBall {
			day.TeamTotals = teamTotals
		}
		days = append(days, day)
	}

	return &Scorecard{Days: days, Participants: columns}
}
