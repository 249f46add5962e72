package sentiment

import (
	"fmt"
	"math"
)

// Label is the direction of a sentiment score.
type Label string

const (
	Positive Label = "POSITIVE"
	Negative Label = "NEGATIVE"
	Neutral  Label = "NEUTRAL"
)

// Valid reports whether l is one of the three known labels.
func (l Label) Valid() bool {
	return l == Positive || l == Negative || l == Neutral
}

// Score is a label plus the confidence in that label. Score is a magnitude in
// [0, 1], never a signed polarity.
type Score struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

// Signed maps the score onto [-1, 1]: +score for POSITIVE, -score for NEGATIVE and
// zero for NEUTRAL.
func (s Score) Signed() float64 {
	switch s.Label {
	case Positive:
		return s.Score
	case Negative:
		return -s.Score
	default:
		return 0
	}
}

// Validate checks the label and the score range.
func (s Score) Validate() error {
	if !s.Label.Valid() {
		return fmt.Errorf("unknown sentiment label %q", s.Label)
	}
	if math.IsNaN(s.Score) || s.Score < 0 || s.Score > 1 {
		return fmt.Errorf("sentiment score %v outside [0, 1]", s.Score)
	}
	return nil
}

// FromNumeric converts a signed value into a Score. Values within the dead zone
// are NEUTRAL with score 1-|v|; everything else takes the label of its sign and
// score min(1, |v|).
func FromNumeric(v, deadZone float64) Score {
	v = Clamp(v, -1, 1)
	magnitude := math.Abs(v)
	if magnitude < deadZone {
		return Score{Label: Neutral, Score: 1 - magnitude}
	}
	if v > 0 {
		return Score{Label: Positive, Score: magnitude}
	}
	return Score{Label: Negative, Score: magnitude}
}

// Clamp bounds v to [lo, hi]. NaN becomes zero.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(lo, math.Min(hi, v))
}

// Method names the estimator that produced a text sentiment.
type Method string

const (
	MethodML      Method = "ml"
	MethodKeyword Method = "keyword"
)
