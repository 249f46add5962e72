package engine

import (
	"math"
	"unicode/utf8"

	"golang-market-sentiment/internal/analysis/sentiment"
)

// ConfidenceFactors are the four inputs of the overall confidence, each in [0, 1].
type ConfidenceFactors struct {
	SentimentStrength float64 `json:"sentiment_strength"`
	Length            float64 `json:"length"`
	AssetDetected     float64 `json:"asset_detected"`
	TermDensity       float64 `json:"term_density"`
}

// Mean averages the factors and clamps the result to [0, 1].
func (f ConfidenceFactors) Mean() float64 {
	return sentiment.Clamp((f.SentimentStrength+f.Length+f.AssetDetected+f.TermDensity)/4, 0, 1)
}

// ConfidenceCalculator scores how much an analysis can be trusted.
type ConfidenceCalculator struct {
	lengthSaturation   int
	termSaturation     int
	missingAssetFactor float64
}

func NewConfidenceCalculator(p Policy) ConfidenceCalculator {
	return ConfidenceCalculator{
		lengthSaturation:   p.LengthSaturation,
		termSaturation:     p.TermSaturation,
		missingAssetFactor: p.MissingAssetFactor,
	}
}

// Factors computes the four factors for a combined score, the source text, whether
// an asset was found and the number of lexicon hits.
func (c ConfidenceCalculator) Factors(combinedScore float64, text string, assetFound bool, termHits int) ConfidenceFactors {
	f := ConfidenceFactors{
		SentimentStrength: sentiment.Clamp(math.Abs(combinedScore), 0, 1),
		Length:            math.Min(1, float64(utf8.RuneCountInString(text))/float64(c.lengthSaturation)),
		AssetDetected:     c.missingAssetFactor,
		TermDensity:       math.Min(1, float64(termHits)/float64(c.termSaturation)),
	}
	if assetFound {
		f.AssetDetected = 1
	}
	return f
}

// Compute is the mean of Factors.
func (c ConfidenceCalculator) Compute(combinedScore float64, text string, assetFound bool, termHits int) float64 {
	return c.Factors(combinedScore, text, assetFound, termHits).Mean()
}
