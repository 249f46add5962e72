package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"golang-market-sentiment/internal/analysis/impact"
	"golang-market-sentiment/internal/analysis/sentiment"
)

// ErrInvalidPolicy is returned by New when the policy fails validation.
var ErrInvalidPolicy = errors.New("invalid analysis policy")

// Policy collects every tunable constant of the engine. The defaults are policy
// choices without a stated derivation, so all of them can be overridden from
// configuration.
type Policy struct {
	TextWeight            float64       `mapstructure:"text_weight"`
	ImageWeight           float64       `mapstructure:"image_weight"`
	DeadZone              float64       `mapstructure:"dead_zone"`
	IntensifierMultiplier float64       `mapstructure:"intensifier_multiplier"`
	NegationWindow        int           `mapstructure:"negation_window"`
	QuestionDiscount      float64       `mapstructure:"question_discount"`
	NormalizationTokens   int           `mapstructure:"normalization_tokens"`
	ConfidenceScale       float64       `mapstructure:"confidence_scale"`
	HighImpact            float64       `mapstructure:"high_impact"`
	ModerateImpact        float64       `mapstructure:"moderate_impact"`
	SlightImpact          float64       `mapstructure:"slight_impact"`
	LengthSaturation      int           `mapstructure:"length_saturation"`
	TermSaturation        int           `mapstructure:"term_saturation"`
	MissingAssetFactor    float64       `mapstructure:"missing_asset_factor"`
	MaxInsights           int           `mapstructure:"max_insights"`
	EstimatorTimeout      time.Duration `mapstructure:"estimator_timeout"`
	ImageTimeout          time.Duration `mapstructure:"image_timeout"`
}

// DefaultPolicy returns the default constants.
func DefaultPolicy() Policy {
	kw := sentiment.DefaultKeywordConfig()
	fusion := sentiment.DefaultFusionConfig()
	th := impact.DefaultThresholds()
	return Policy{
		TextWeight:            fusion.TextWeight,
		ImageWeight:           fusion.ImageWeight,
		DeadZone:              fusion.DeadZone,
		IntensifierMultiplier: kw.IntensifierMultiplier,
		NegationWindow:        kw.NegationWindow,
		QuestionDiscount:      kw.QuestionDiscount,
		NormalizationTokens:   kw.NormalizationTokens,
		ConfidenceScale:       fusion.ConfidenceScale,
		HighImpact:            th.High,
		ModerateImpact:        th.Moderate,
		SlightImpact:          th.Slight,
		LengthSaturation:      500,
		TermSaturation:        10,
		MissingAssetFactor:    0.7,
		MaxInsights:           5,
		EstimatorTimeout:      fusion.EstimatorTimeout,
		ImageTimeout:          10 * time.Second,
	}
}

// Validate checks ranges and orderings of every constant.
func (p Policy) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(inUnit(p.TextWeight) && p.TextWeight > 0, "text_weight %v must be in (0, 1]", p.TextWeight)
	check(inUnit(p.ImageWeight), "image_weight %v must be in [0, 1]", p.ImageWeight)
	check(p.TextWeight+p.ImageWeight <= 1+1e-9, "text_weight + image_weight must not exceed 1")
	check(inUnit(p.DeadZone) && p.DeadZone < 1, "dead_zone %v must be in [0, 1)", p.DeadZone)
	check(p.IntensifierMultiplier >= 1, "intensifier_multiplier %v must be at least 1", p.IntensifierMultiplier)
	check(p.NegationWindow >= 0, "negation_window %d must not be negative", p.NegationWindow)
	check(inUnit(p.QuestionDiscount), "question_discount %v must be in [0, 1]", p.QuestionDiscount)
	check(p.NormalizationTokens >= 0, "normalization_tokens %d must not be negative", p.NormalizationTokens)
	check(p.ConfidenceScale > 0, "confidence_scale %v must be positive", p.ConfidenceScale)
	check(p.SlightImpact >= 0 && p.SlightImpact < p.ModerateImpact && p.ModerateImpact < p.HighImpact && p.HighImpact <= 1,
		"impact thresholds must satisfy 0 <= slight < moderate < high <= 1 (got %v, %v, %v)", p.SlightImpact, p.ModerateImpact, p.HighImpact)
	check(p.LengthSaturation > 0, "length_saturation %d must be positive", p.LengthSaturation)
	check(p.TermSaturation > 0, "term_saturation %d must be positive", p.TermSaturation)
	check(inUnit(p.MissingAssetFactor), "missing_asset_factor %v must be in [0, 1]", p.MissingAssetFactor)
	check(p.MaxInsights > 0, "max_insights %d must be positive", p.MaxInsights)
	check(p.EstimatorTimeout >= 0, "estimator_timeout %s must not be negative", p.EstimatorTimeout)
	check(p.ImageTimeout >= 0, "image_timeout %s must not be negative", p.ImageTimeout)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPolicy, errors.Join(errs...))
	}
	return nil
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

func (p Policy) keywordConfig() sentiment.KeywordConfig {
	return sentiment.KeywordConfig{
		IntensifierMultiplier: p.IntensifierMultiplier,
		NegationWindow:        p.NegationWindow,
		QuestionDiscount:      p.QuestionDiscount,
		NormalizationTokens:   p.NormalizationTokens,
		DeadZone:              p.DeadZone,
	}
}

func (p Policy) fusionConfig() sentiment.FusionConfig {
	return sentiment.FusionConfig{
		TextWeight:       p.TextWeight,
		ImageWeight:      p.ImageWeight,
		DeadZone:         p.DeadZone,
		ConfidenceScale:  p.ConfidenceScale,
		EstimatorTimeout: p.EstimatorTimeout,
	}
}

func (p Policy) thresholds() impact.Thresholds {
	return impact.Thresholds{High: p.HighImpact, Moderate: p.ModerateImpact, Slight: p.SlightImpact}
}
