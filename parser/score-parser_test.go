package parser

import (
	"testing"
	"time"

	"github.com/jlp0422/coffee-golf-leaderboard/repository"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC)

func TestParseFullResult(t *testing.T) {
	text := "Coffee Golf - Feb 15\n14 Strokes - Top 50%\n\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣"
	parsed, err := parseScoreAt(text, now)
	assert.Nil(t, err)
	assert.Equal(t, "2026-02-15", parsed.Date)
	assert.Equal(t, 14, parsed.TotalStrokes)
	assert.Equal(t, []ParsedHole{
		{Color: repository.ColorBlue, Strokes: 2, HoleNumber: 1},
		{Color: repository.ColorYellow, Strokes: 5, HoleNumber: 2},
		{Color: repository.ColorRed, Strokes: 2, HoleNumber: 3},
		{Color: repository.ColorPurple, Strokes: 2, HoleNumber: 4},
		{Color: repository.ColorGreen, Strokes: 3, HoleNumber: 5},
	}, parsed.Holes)
}

func TestParseKeepsGlyphOrder(t *testing.T) {
	text := "Coffee Golf - Mar 3\n11 Strokes\n🟩🟦🟪🟨🟥\n1️⃣2️⃣3️⃣2️⃣3️⃣"
	parsed, err := parseScoreAt(text, now)
	assert.Nil(t, err)
	assert.Equal(t, repository.ColorGreen, parsed.Holes[0].Color)
	assert.Equal(t, repository.ColorBlue, parsed.Holes[1].Color)
	assert.Equal(t, repository.ColorPurple, parsed.Holes[2].Color)
	assert.Equal(t, repository.ColorYellow, parsed.Holes[3].Color)
	assert.Equal(t, repository.ColorRed, parsed.Holes[4].Color)
	for i, hole := range parsed.Holes {
		assert.Equal(t, i+1, hole.HoleNumber)
	}
}

func TestParseFullMonthNameAndCase(t *testing.T) {
	text := "COFFEE GOLF - February 15\n14 STROKES\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣"
	parsed, err := parseScoreAt(text, now)
	assert.Nil(t, err)
	assert.Equal(t, "2026-02-15", parsed.Date)
}

func TestParseScoreMismatch(t *testing.T) {
	text := "Coffee Golf - Feb 15\n14 Strokes\n🟦🟨🟥🟪🟩\n4️⃣5️⃣4️⃣4️⃣3️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrScoreMismatch)
	assert.Contains(t, err.Error(), "holes sum to 20")
	assert.Contains(t, err.Error(), "header says 14")
}

func TestParseWrongColorCount(t *testing.T) {
	text := "Coffee Golf - Feb 15\n12 Strokes\n🟦🟨🟥🟪\n2️⃣5️⃣2️⃣2️⃣1️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrWrongColorCount)
	assert.Contains(t, err.Error(), "found 4")
}

func TestParseWrongDigitCount(t *testing.T) {
	text := "Coffee Golf - Feb 15\n9 Strokes\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrWrongDigitCount)
	assert.Contains(t, err.Error(), "found 3")
}

func TestParseDateNotFound(t *testing.T) {
	text := "14 Strokes\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrDateNotFound)
}

func TestParseImpossibleDate(t *testing.T) {
	text := "Coffee Golf - Feb 30\n14 Strokes\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrDateUnparseable)
}

func TestParseUnknownMonth(t *testing.T) {
	text := "Coffee Golf - Smarch 5\n14 Strokes\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrDateUnparseable)
}

func TestParseStrokesNotFound(t *testing.T) {
	text := "Coffee Golf - Feb 15\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣"
	_, err := parseScoreAt(text, now)
	assert.ErrorIs(t, err, ErrStrokesNotFound)
}

func TestParseIgnoresSurroundingText(t *testing.T) {
	text := "check out my score!\nCoffee Golf - Feb 15\n14 Strokes - Top 50%\n🟦🟨🟥🟪🟩\n2️⃣5️⃣2️⃣2️⃣3️⃣\nplay at coffeegolf.net"
	parsed, err := parseScoreAt(text, now)
	assert.Nil(t, err)
	assert.Equal(t, 14, parsed.TotalStrokes)
}
