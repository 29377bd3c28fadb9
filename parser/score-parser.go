package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"
	"github.com/jlp0422/coffee-golf-leaderboard/utils"
)

// Every failure mode gets its own identity so callers can tell the user
// exactly which fragment of the pasted result was off.
var (
	ErrDateNotFound    = errors.New(`could not find date, expected format "Coffee Golf - Mon DD"`)
	ErrDateUnparseable = errors.New("could not parse date")
	ErrStrokesNotFound = errors.New(`could not find stroke count, expected "X Strokes"`)
	ErrWrongColorCount = errors.New("expected 5 color holes")
	ErrWrongDigitCount = errors.New("expected 5 hole scores")
	ErrScoreMismatch   = errors.New("score mismatch")
)

type ParsedHole struct {
	Color      repository.HoleColor `json:"color"`
	Strokes    int                  `json:"strokes"`
	HoleNumber int                  `json:"hole_number"`
}

type ParsedRound struct {
	Date         string       `json:"date"`
	TotalStrokes int          `json:"total_strokes"`
	Holes        []ParsedHole `json:"holes"`
}

var colorMap = map[rune]repository.HoleColor{
	'\U0001F7E6': repository.ColorBlue,
	'\U0001F7E8': repository.ColorYellow,
	'\U0001F7E5': repository.ColorRed,
	'\U0001F7EA': repository.ColorPurple,
	'\U0001F7E9': repository.ColorGreen,
}

var (
	dateRegex    = regexp.MustCompile(`(?i)Coffee\s+Golf\s*-\s*([A-Za-z]+)\s+(\d{1,2})`)
	strokesRegex = regexp.MustCompile(`(?i)(\d+)\s*Strokes`)
	// keycap digits: base digit + variation selector + combining keycap
	digitRegex = regexp.MustCompile(`[1-9]\x{FE0F}\x{20E3}`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseScore extracts a round from a pasted Coffee Golf result. The input
// may carry arbitrary surrounding text (percentile lines and the like);
// only the date, the stroke header, the five color squares and the five
// keycap digits are read. Parsing never partially succeeds.
func ParseScore(text string) (*ParsedRound, error) {
	return parseScoreAt(text, time.Now())
}

func parseScoreAt(text string, now time.Time) (*ParsedRound, error) {
	trimmed := strings.TrimSpace(text)

	// Date: "Coffee Golf - Feb 15" or "Coffee Golf - February 15",
	// completed with the current year.
	dateMatch := dateRegex.FindStringSubmatch(trimmed)
	if dateMatch == nil {
		return nil, ErrDateNotFound
	}
	date, err := resolveDate(dateMatch[1], dateMatch[2], now)
	if err != nil {
		return nil, err
	}

	// Total strokes: "14 Strokes"
	strokesMatch := strokesRegex.FindStringSubmatch(trimmed)
	if strokesMatch == nil {
		return nil, ErrStrokesNotFound
	}
	totalStrokes, err := strconv.Atoi(strokesMatch[1])
	if err != nil {
		return nil, ErrStrokesNotFound
	}

	// Color squares, in order of appearance.
	colors := make([]repository.HoleColor, 0, 5)
	for _, r := range trimmed {
		if color, ok := colorMap[r]; ok {
			colors = append(colors, color)
		}
	}
	if len(colors) != 5 {
		return nil, fmt.Errorf("%w, found %d", ErrWrongColorCount, len(colors))
	}

	// Keycap digits, in order of appearance.
	digitMatches := digitRegex.FindAllString(trimmed, -1)
	if len(digitMatches) != 5 {
		return nil, fmt.Errorf("%w, found %d", ErrWrongDigitCount, len(digitMatches))
	}

	// Pair color[i] with digit[i]. Hole numbering follows the order the
	// glyphs appear in the text, not any fixed color order.
	holes := make([]ParsedHole, 5)
	sum := 0
	for i, match := range digitMatches {
		strokes := int(match[0] - '0')
		holes[i] = ParsedHole{
			Color:      colors[i],
			Strokes:    strokes,
			HoleNumber: i + 1,
		}
		sum += strokes
	}

	if sum != totalStrokes {
		return nil, fmt.Errorf("%w: holes sum to %d, but header says %d", ErrScoreMismatch, sum, totalStrokes)
	}

	return &ParsedRound{
		Date:         utils.LocalDateStr(date),
		TotalStrokes: totalStrokes,
		Holes:        holes,
	}, nil
}

func resolveDate(monthName string, dayStr string, now time.Time) (time.Time, error) {
	lower := strings.ToLower(monthName)
	if len(lower) < 3 {
		return time.Time{}, fmt.Errorf(`%w: "%s %s"`, ErrDateUnparseable, monthName, dayStr)
	}
	month, ok := months[lower[:3]]
	if !ok {
		return time.Time{}, fmt.Errorf(`%w: "%s %s"`, ErrDateUnparseable, monthName, dayStr)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, fmt.Errorf(`%w: "%s %s"`, ErrDateUnparseable, monthName, dayStr)
	}
	date := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2), so a
	// changed month or day means the fragment was not a real date.
	if date.Month() != month || date.Day() != day {
		return time.Time{}, fmt.Errorf(`%w: "%s %s"`, ErrDateUnparseable, monthName, dayStr)
	}
	return date, nil
}
