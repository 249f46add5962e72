package impact

import (
	"testing"

	"golang-market-sentiment/internal/analysis/sentiment"

	"github.com/stretchr/testify/assert"
)

func TestClassifier_Level(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		score float64
		want  Level
	}{
		{1, HighPositive},
		{0.6, HighPositive},
		{0.59, ModeratePositive},
		{0.41, ModeratePositive},
		{0.3, ModeratePositive},
		{0.29, SlightlyPositive},
		{0.05, SlightlyPositive},
		{0.049, Neutral},
		{0, Neutral},
		{-0.049, Neutral},
		{-0.05, SlightlyNegative},
		{-0.3, ModerateNegative},
		{-0.59, ModerateNegative},
		{-0.6, HighNegative},
		{-1, HighNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Level(tt.score), "score %v", tt.score)
	}
}

func TestClassifier_Horizon(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		text string
		want Horizon
	}{
		{"Breaking: RBI cuts repo rate", Immediate},
		{"Shares are trading higher right now", Immediate},
		{"Analysts expect gains this week, and today the index opened flat", Immediate},
		{"Brokers see near-term upside for IT stocks", ShortTerm},
		{"Margins should improve this quarter", ShortTerm},
		{"The company plans to expand capacity by 2030", LongTerm},
		{"Known risks remain", LongTerm},
		{"", LongTerm},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Horizon(tt.text), tt.text)
	}
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	combined := sentiment.Combined{CombinedScore: 0.41}
	scan := sentiment.Scan{Positive: 3, Negative: 1}

	got := c.Classify(combined, scan, "Nifty rallied today")
	assert.Equal(t, ModeratePositive, got.ImpactLevel)
	assert.Equal(t, Immediate, got.TimeHorizon)
	assert.Equal(t, 3, got.PositiveIndicatorsCount)
	assert.Equal(t, 1, got.NegativeIndicatorsCount)
	assert.Equal(t, 0.41, got.SentimentScore)
	assert.Equal(t, "Moderate positive sentiment detected; immediate market reaction likely", got.ImpactDescription)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Strong positive sentiment detected; immediate market reaction likely", Describe(HighPositive, Immediate))
	assert.Equal(t, "Balanced sentiment detected; no clear long-term directional bias", Describe(Neutral, LongTerm))

	for _, level := range []Level{HighPositive, ModeratePositive, SlightlyPositive, Neutral, SlightlyNegative, ModerateNegative, HighNegative} {
		for _, horizon := range []Horizon{Immediate, ShortTerm, LongTerm} {
			assert.NotEmpty(t, levelPhrases[level])
			assert.Contains(t, Describe(level, horizon), "; ")
		}
	}
	assert.True(t, HighNegative.High())
	assert.False(t, ModeratePositive.High())
}
