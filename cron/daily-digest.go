package cron

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/client"
	"github.com/jlp0422/coffee-golf-leaderboard/metrics"
	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/scoring"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"gorm.io/gorm"
)

// digestHourUTC is when the daily standings digest goes out.
const digestHourUTC = 21

// DigestLoop posts a standings summary for every tournament in play once
// a day. Errors are logged and the loop keeps going; a broken Discord
// channel must not take the job down.
func DigestLoop(ctx context.Context, db *gorm.DB) {
	discordClient, err := client.NewDiscordClient()
	if err != nil {
		log.Printf("daily digest disabled: %v", err)
		return
	}
	tournamentRepository := repository.NewTournamentRepository(db)
	scoreService := scoring.NewScoreService(db)

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(untilNextDigest(time.Now())):
		}
		today := utils.Today()
		tournaments, err := tournamentRepository.GetTournamentsInPlay(today)
		if err != nil {
			log.Printf("failed to load tournaments for digest: %v", err)
			continue
		}
		for _, tournament := range tournaments {
			message, err := buildDigest(tournament, scoreService)
			if err != nil {
				log.Printf("failed to build digest for tournament %d: %v", tournament.Id, err)
				metrics.DigestPostCounter.WithLabelValues("error").Inc()
				continue
			}
			if err := discordClient.PostMessage(message); err != nil {
				log.Printf("failed to post digest for tournament %d: %v", tournament.Id, err)
				metrics.DigestPostCounter.WithLabelValues("error").Inc()
				continue
			}
			metrics.DigestPostCounter.WithLabelValues("success").Inc()
		}
	}
}

func untilNextDigest(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), digestHourUTC, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func buildDigest(tournament *repository.Tournament, scoreService *scoring.ScoreService) (string, error) {
	standings, err := scoreService.GetStandings(tournament.Id)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n", tournament.Name, tournament.Status())
	if len(standings) == 0 {
		b.WriteString("No rounds submitted yet.")
		return b.String(), nil
	}
	medals := []string{"🥇", "🥈", "🥉"}
	for i, entry := range standings {
		if i >= len(medals) {
			break
		}
		fmt.Fprintf(&b, "%s %s: %s\n", medals[i], entry.DisplayName, entry.Detail)
	}
	return b.String(), nil
}
