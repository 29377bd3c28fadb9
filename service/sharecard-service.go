package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"
)

// shareCardWindowDays is how much history the share card plots.
const shareCardWindowDays = 30

type ShareCardService struct {
	userRepository  *repository.UserRepository
	roundRepository *repository.RoundRepository
}

func NewShareCardService(db *gorm.DB) *ShareCardService {
	return &ShareCardService{
		userRepository:  repository.NewUserRepository(db),
		roundRepository: repository.NewRoundRepository(db),
	}
}

// RenderShareCard draws a PNG line chart of the user's daily totals over
// the last 30 days, suitable for posting into a chat.
func (s *ShareCardService) RenderShareCard(userId int) ([]byte, error) {
	user, err := s.userRepository.GetUserById(userId)
	if err != nil {
		return nil, ErrNotFound
	}
	now := time.Now()
	startDate := utils.LocalDateStr(now.AddDate(0, 0, -(shareCardWindowDays - 1)))
	rounds, err := s.roundRepository.GetRoundsInWindow([]int{userId}, startDate, utils.LocalDateStr(now))
	if err != nil {
		return nil, err
	}
	if len(rounds) < 2 {
		return nil, fmt.Errorf("need at least two rounds in the last %d days to render a card", shareCardWindowDays)
	}

	xValues := make([]time.Time, 0, len(rounds))
	yValues := make([]float64, 0, len(rounds))
	for _, round := range rounds {
		date, err := time.Parse(utils.DateLayout, round.PlayedDate)
		if err != nil {
			continue
		}
		xValues = append(xValues, date)
		yValues = append(yValues, float64(round.TotalStrokes))
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s's last %d days", user.DisplayName, shareCardWindowDays),
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Strokes",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Total strokes",
				XValues: xValues,
				YValues: yValues,
			},
		},
	}

	buffer := &bytes.Buffer{}
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
