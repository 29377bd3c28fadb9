package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/config"
	"github.com/jlp0422/coffee-golf-leaderboard/metrics"
	"github.com/jlp0422/coffee-golf-leaderboard/parser"
	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

type RoundService struct {
	roundRepository *repository.RoundRepository
	kafkaWriter     *kafka.Writer
}

func NewRoundService(db *gorm.DB) *RoundService {
	writer, err := config.GetRoundEventsWriter()
	if err != nil {
		log.Printf("kafka writer unavailable, round events will not be published: %v", err)
	}
	return &RoundService{
		roundRepository: repository.NewRoundRepository(db),
		kafkaWriter:     writer,
	}
}

type RoundSubmittedEvent struct {
	RoundId      int    `json:"round_id"`
	UserId       int    `json:"user_id"`
	PlayedDate   string `json:"played_date"`
	TotalStrokes int    `json:"total_strokes"`
}

// SubmitScore parses a pasted result and stores it for the user. One
// round per user per date; a second paste for the same date is rejected,
// there is no overwrite.
func (s *RoundService) SubmitScore(userId int, text string) (*repository.Round, error) {
	parsed, err := parser.ParseScore(text)
	if err != nil {
		metrics.ParseFailureCounter.WithLabelValues(parseFailureReason(err)).Inc()
		return nil, err
	}

	_, err = s.roundRepository.GetRoundByUserAndDate(userId, parsed.Date)
	if err == nil {
		return nil, ErrDuplicateRound
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	round := &repository.Round{
		UserId:       userId,
		PlayedDate:   parsed.Date,
		TotalStrokes: parsed.TotalStrokes,
		RawInput:     text,
		HoleScores: utils.Map(parsed.Holes, func(hole parser.ParsedHole) *repository.HoleScore {
			return &repository.HoleScore{
				Color:      hole.Color,
				Strokes:    hole.Strokes,
				HoleNumber: hole.HoleNumber,
			}
		}),
	}
	if err := s.roundRepository.CreateWithHoleScores(round); err != nil {
		return nil, err
	}
	metrics.RoundsSubmittedCounter.Inc()
	s.publishRoundEvent(round)
	return round, nil
}

func (s *RoundService) GetRoundsForUser(userId int) ([]*repository.Round, error) {
	return s.roundRepository.GetRoundsForUser(userId)
}

func (s *RoundService) DeleteRound(roundId int, userId int) error {
	err := s.roundRepository.DeleteOwned(roundId, userId)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	metrics.RoundsDeletedCounter.Inc()
	return nil
}

// publishRoundEvent is best effort. Submissions must not fail because the
// broker is down.
func (s *RoundService) publishRoundEvent(round *repository.Round) {
	if s.kafkaWriter == nil {
		return
	}
	event := RoundSubmittedEvent{
		RoundId:      round.Id,
		UserId:       round.UserId,
		PlayedDate:   round.PlayedDate,
		TotalStrokes: round.TotalStrokes,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to serialize round event: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = s.kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   fmt.Appendf(nil, "%d", round.UserId),
		Value: payload,
	})
	if err != nil {
		log.Printf("failed to publish round event: %v", err)
	}
}

func parseFailureReason(err error) string {
	switch {
	case errors.Is(err, parser.ErrDateNotFound):
		return "date_not_found"
	case errors.Is(err, parser.ErrDateUnparseable):
		return "date_unparseable"
	case errors.Is(err, parser.ErrStrokesNotFound):
		return "strokes_not_found"
	case errors.Is(err, parser.ErrWrongColorCount):
		return "wrong_color_count"
	case errors.Is(err, parser.ErrWrongDigitCount):
		return "wrong_digit_count"
	case errors.Is(err, parser.ErrScoreMismatch):
		return "score_mismatch"
	default:
		return "unknown"
	}
}
