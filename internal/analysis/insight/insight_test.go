package insight

import (
	"testing"

	"golang-market-sentiment/internal/analysis/lexicon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(t *testing.T, max int) *Extractor {
	t.Helper()
	lex, err := lexicon.Default()
	require.NoError(t, err)
	return NewExtractor(lex, max)
}

func TestExtract_DocumentOrder(t *testing.T) {
	e := newExtractor(t, 5)

	text := "The board met on Monday. " +
		"Profits surged 25% as exports rallied. " +
		"The meeting lasted two hours. " +
		"Management spoke about hiring. " +
		"Shares plunged after the fraud probe widened losses. " +
		"The next meeting is in June."

	assert.Equal(t, []string{
		"Profits surged 25% as exports rallied.",
		"Shares plunged after the fraud probe widened losses.",
	}, e.Extract(text))
}

func TestExtract_TopNByScore(t *testing.T) {
	e := newExtractor(t, 2)

	text := "Revenue rose. " +
		"Margins improved and profits surged to a record high. " +
		"Costs fell. " +
		"Debt declined sharply while cash flow improved. " +
		"Demand was strong."

	assert.Equal(t, []string{
		"Margins improved and profits surged to a record high.",
		"Debt declined sharply while cash flow improved.",
	}, e.Extract(text))
}

func TestExtract_TiesPreferEarlier(t *testing.T) {
	e := newExtractor(t, 2)

	assert.Equal(t, []string{"Revenue rose.", "Costs fell."}, e.Extract("Revenue rose. Costs fell. Demand was strong."))
}

func TestExtract_NoSalientSentences(t *testing.T) {
	e := newExtractor(t, 5)

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("The board met on Monday. It discussed the agenda."))
}

func TestScore(t *testing.T) {
	e := newExtractor(t, 5)

	assert.Equal(t, 0, e.Score("The board met."))
	assert.Equal(t, 1, e.Score("The index hit a record high."))
	assert.Equal(t, 3, e.Score("Profits rose 12%."))
	assert.Equal(t, 1, e.Score("The deal is worth ₹3,000 crore."))
}

func TestHasNumericFigure(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"up 4.5%", true},
		{"rose 12 percent", true},
		{"priced at ₹2,300", true},
		{"a $1.2bn deal", true},
		{"Rs. 500 per share", true},
		{"INR 40 dividend", true},
		{"inflows of 3,000 crore", true},
		{"valued at 2 billion", true},
		{"in 2024 the firm grew", false},
		{"no numbers here", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasNumericFigure(tt.text), tt.text)
	}
}
