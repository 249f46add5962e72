package sentiment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"golang-market-sentiment/pkg/logger"
)

// FusionConfig holds the weights and bounds used to combine modalities.
type FusionConfig struct {
	TextWeight       float64
	ImageWeight      float64
	DeadZone         float64
	ConfidenceScale  float64
	EstimatorTimeout time.Duration
}

// DefaultFusionConfig returns the default 70/30 text/image weighting.
func DefaultFusionConfig() FusionConfig {
	return FusionConfig{
		TextWeight:       0.7,
		ImageWeight:      0.3,
		DeadZone:         0.05,
		ConfidenceScale:  1.2,
		EstimatorTimeout: 3 * time.Second,
	}
}

// Combined is the fused view of text and image sentiment.
type Combined struct {
	ImageSentiment    *Score  `json:"image_sentiment"`
	TextSentiment     Score   `json:"text_sentiment"`
	CombinedSentiment Score   `json:"combined_sentiment"`
	CombinedScore     float64 `json:"combined_score"`
	Confidence        float64 `json:"confidence"`
	Method            Method  `json:"method"`
	Summary           string  `json:"summary"`
}

// Fuser combines a text estimate with an optional image sentiment.
type Fuser struct {
	keyword *KeywordAnalyzer
	cfg     FusionConfig
	logger  *logger.Logger
}

func NewFuser(keyword *KeywordAnalyzer, cfg FusionConfig, log *logger.Logger) *Fuser {
	if log == nil {
		log = logger.NewNop()
	}
	return &Fuser{keyword: keyword, cfg: cfg, logger: log}
}

// Fuse estimates the text sentiment with estimator (or the keyword analyzer when
// estimator is nil or fails) and weights it against image. subject names the
// leading asset mention for the summary; empty means no asset was found.
func (f *Fuser) Fuse(ctx context.Context, text string, image *Score, estimator Estimator, subject string) Combined {
	est := NewFallbackEstimator(estimator, f.keyword, f.cfg.EstimatorTimeout, f.logger).Estimate(ctx, text)
	return f.FuseScores(est, image, subject)
}

// FuseScores combines an already computed text estimate with image.
func (f *Fuser) FuseScores(est Estimate, image *Score, subject string) Combined {
	combined := f.CombinedScore(est.Score, image)
	label := FromNumeric(combined, f.cfg.DeadZone)
	confidence := Clamp(math.Abs(combined)*f.cfg.ConfidenceScale, 0, 1)

	var img *Score
	if image != nil {
		cp := *image
		img = &cp
	}

	return Combined{
		ImageSentiment:    img,
		TextSentiment:     est.Score,
		CombinedSentiment: label,
		CombinedScore:     combined,
		Confidence:        confidence,
		Method:            est.Method,
		Summary:           Summarize(label.Label, confidence, subject, est.Score, img),
	}
}

// CombinedScore is the weighted signed score: TextWeight*text + ImageWeight*image
// with an image, signed(text) without one.
func (f *Fuser) CombinedScore(text Score, image *Score) float64 {
	if image == nil {
		return Clamp(text.Signed(), -1, 1)
	}
	return Clamp(f.cfg.TextWeight*text.Signed()+f.cfg.ImageWeight*image.Signed(), -1, 1)
}

// Summarize renders the one-sentence summary of a fusion.
func Summarize(label Label, confidence float64, subject string, text Score, image *Score) string {
	if subject == "" {
		subject = "the broader market"
	}

	var b strings.Builder
	switch {
	case label == Neutral:
		b.WriteString("Neutral")
	case confidence >= 0.7:
		b.WriteString("Strong ")
		b.WriteString(labelWord(label))
	default:
		b.WriteString("Moderate ")
		b.WriteString(labelWord(label))
	}
	fmt.Fprintf(&b, " sentiment detected for %s with %.1f%% confidence.", subject, confidence*100)

	if image != nil {
		if image.Label == text.Label {
			b.WriteString(" Text and image sentiment are aligned.")
		} else {
			fmt.Fprintf(&b, " Text sentiment is %s while image sentiment is %s.", labelWord(text.Label), labelWord(image.Label))
		}
	}
	return b.String()
}

func labelWord(l Label) string {
	return strings.ToLower(string(l))
}
