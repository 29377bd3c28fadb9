package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jlp0422/coffee-golf-leaderboard/metrics"
	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/prometheus/client_golang/prometheus"
)

type Participant struct {
	UserId      int    `json:"user_id"`
	TeamId      int    `json:"team_id"`
	DisplayName string `json:"display_name"`
}

// StandingEntry is one ranked line. The meaning of Score depends on the
// format: total strokes (stroke play, best ball), match-play points, or
// skins won. ClassicScore is only set by match play and carries net holes
// won minus lost, an alternate display ranking the caller may re-sort by.
type StandingEntry struct {
	UserId       int     `json:"user_id"`
	DisplayName  string  `json:"display_name"`
	TeamId       int     `json:"team_id"`
	Score        float64 `json:"score"`
	RoundsPlayed int     `json:"rounds_played"`
	Detail       string  `json:"detail"`
	ClassicScore *int    `json:"classic_score,omitempty"`
}

type calcFunc func(participants []Participant, rounds []*repository.Round, teamSize int) []*StandingEntry

var standingsFunctions = map[repository.TournamentFormat]calcFunc{
	repository.FormatStrokePlay: calcStrokePlay,
	repository.FormatMatchPlay:  calcMatchPlay,
	repository.FormatBestBall:   calcBestBall,
	repository.FormatSkins:      calcSkins,
}

// ComputeStandings dispatches on the tournament format. Rounds must
// already be filtered to the tournament's participants and inclusive date
// window. An unknown format yields empty standings rather than an error.
func ComputeStandings(tournament *repository.Tournament, participants []Participant, rounds []*repository.Round) []*StandingEntry {
	timer := prometheus.NewTimer(metrics.StandingsDuration.WithLabelValues(string(tournament.Format)))
	defer timer.ObserveDuration()
	if fun, ok := standingsFunctions[tournament.Format]; ok {
		return fun(participants, rounds, tournament.TeamSize)
	}
	return make([]*StandingEntry, 0)
}

// Stroke play: fewest total strokes wins. Participants without a round
// sort to the bottom so nobody "wins" on a zero.
func calcStrokePlay(participants []Participant, rounds []*repository.Round, teamSize int) []*StandingEntry {
	totals := make(map[int]int)
	counts := make(map[int]int)
	for _, round := range rounds {
		totals[round.UserId] += round.TotalStrokes
		counts[round.UserId]++
	}

	entries := make([]*StandingEntry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, &StandingEntry{
			UserId:       p.UserId,
			DisplayName:  p.DisplayName,
			TeamId:       p.TeamId,
			Score:        float64(totals[p.UserId]),
			RoundsPlayed: counts[p.UserId],
			Detail:       fmt.Sprintf("%d strokes (%d rounds)", totals[p.UserId], counts[p.UserId]),
		})
	}
	sortAscendingZeroLast(entries)
	return entries
}

// Match play: every pair of players who both played a date contest the
// five colors. Outright lower strokes takes 1 point and moves net holes
// by one in each direction; a halved hole is half a point each and leaves
// net holes untouched.
func calcMatchPlay(participants []Participant, rounds []*repository.Round, teamSize int) []*StandingEntry {
	index := NewRoundIndex(rounds)
	points := make(map[int]float64)
	netHoles := make(map[int]int)

	for _, date := range index.Dates() {
		players := make([]int, 0, len(participants))
		for _, p := range participants {
			if index.Played(date, p.UserId) {
				players = append(players, p.UserId)
			}
		}
		for i := 0; i < len(players); i++ {
			for j := i + 1; j < len(players); j++ {
				a, b := players[i], players[j]
				for _, color := range repository.HoleColors {
					aStrokes, aOk := index.Strokes(date, a, color)
					bStrokes, bOk := index.Strokes(date, b, color)
					if !aOk || !bOk {
						continue
					}
					switch {
					case aStrokes < bStrokes:
						points[a]++
						netHoles[a]++
						netHoles[b]--
					case bStrokes < aStrokes:
						points[b]++
						netHoles[b]++
						netHoles[a]--
					default:
						points[a] += 0.5
						points[b] += 0.5
						// halved hole, net holes unchanged
					}
				}
			}
		}
	}

	entries := make([]*StandingEntry, 0, len(participants))
	for _, p := range participants {
		classic := netHoles[p.UserId]
		entries = append(entries, &StandingEntry{
			UserId:       p.UserId,
			DisplayName:  p.DisplayName,
			TeamId:       p.TeamId,
			Score:        points[p.UserId],
			RoundsPlayed: index.DaysPlayed(p.UserId),
			Detail:       fmt.Sprintf("%s pts", formatPoints(points[p.UserId])),
			ClassicScore: &classic,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// Best ball: one entry per team, scoring the lowest member strokes per
// color per date. With teamSize <= 1 there are no teams and the format
// degrades to stroke play over individuals.
func calcBestBall(participants []Participant, rounds []*repository.Round, teamSize int) []*StandingEntry {
	if teamSize <= 1 {
		return calcStrokePlay(participants, rounds, teamSize)
	}

	index := NewRoundIndex(rounds)
	teams := make(map[int][]Participant)
	for _, p := range participants {
		teams[p.TeamId] = append(teams[p.TeamId], p)
	}
	teamIds := sortedKeys(teams)

	entries := make([]*StandingEntry, 0, len(teamIds))
	for _, teamId := range teamIds {
		members := teams[teamId]
		total := 0
		days := 0
		for _, date := range index.Dates() {
			playing := make([]int, 0, len(members))
			for _, member := range members {
				if index.Played(date, member.UserId) {
					playing = append(playing, member.UserId)
				}
			}
			if len(playing) == 0 {
				continue
			}
			days++
			for _, color := range repository.HoleColors {
				best, found := 0, false
				for _, userId := range playing {
					strokes, ok := index.Strokes(date, userId, color)
					if ok && (!found || strokes < best) {
						best, found = strokes, true
					}
				}
				if found {
					total += best
				}
			}
		}

		names := make([]string, len(members))
		for i, member := range members {
			names[i] = member.DisplayName
		}
		entries = append(entries, &StandingEntry{
			UserId:       members[0].UserId,
			DisplayName:  fmt.Sprintf("Team %d: %s", teamId, strings.Join(names, " & ")),
			TeamId:       teamId,
			Score:        float64(total),
			RoundsPlayed: days,
			Detail:       fmt.Sprintf("%d strokes (%d days)", total, days),
		})
	}
	sortAscendingZeroLast(entries)
	return entries
}

// Skins: dates ascending, colors in canonical order. The lone carryover
// counter is shared across the whole traversal; an under-contested or
// tied color rolls one more skin into it, an outright low score cashes
// 1 + carryover. The traversal order is load-bearing, do not reorder.
func calcSkins(participants []Participant, rounds []*repository.Round, teamSize int) []*StandingEntry {
	index := NewRoundIndex(rounds)
	skins := make(map[int]int)
	carryover := 0

	for _, date := range index.Dates() {
		for _, color := range repository.HoleColors {
			winners := make([]int, 0, len(participants))
			best := 0
			played := 0
			for _, p := range participants {
				strokes, ok := index.Strokes(date, p.UserId, color)
				if !ok {
					continue
				}
				played++
				if len(winners) == 0 || strokes < best {
					best = strokes
					winners = winners[:0]
					winners = append(winners, p.UserId)
				} else if strokes == best {
					winners = append(winners, p.UserId)
				}
			}
			if played < 2 {
				carryover++
				continue
			}
			if len(winners) == 1 {
				skins[winners[0]] += 1 + carryover
				carryover = 0
			} else {
				carryover++
			}
		}
	}

	entries := make([]*StandingEntry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, &StandingEntry{
			UserId:       p.UserId,
			DisplayName:  p.DisplayName,
			TeamId:       p.TeamId,
			Score:        float64(skins[p.UserId]),
			RoundsPlayed: index.DaysPlayed(p.UserId),
			Detail:       fmt.Sprintf("%d skins", skins[p.UserId]),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}

// sortAscendingZeroLast orders by score ascending but pins entries with
// zero rounds to the bottom in their original relative order.
func sortAscendingZeroLast(entries []*StandingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if (a.RoundsPlayed == 0) != (b.RoundsPlayed == 0) {
			return b.RoundsPlayed == 0
		}
		if a.RoundsPlayed == 0 {
			return false
		}
		return a.Score < b.Score
	})
}

func formatPoints(points float64) string {
	if points == math.Trunc(points) {
		return fmt.Sprintf("%.0f", points)
	}
	return fmt.Sprintf("%.1f", points)
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
