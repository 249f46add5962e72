package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analysis/impact"
	"golang-market-sentiment/internal/analysis/insight"
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/pkg/logger"

	"github.com/google/uuid"
)

// UnknownAsset is the asset type reported when no catalog entry matches.
const UnknownAsset = "unknown"

var (
	// ErrInvalidText is returned for text that is not valid UTF-8.
	ErrInvalidText = errors.New("text is not valid UTF-8")
	// ErrInvalidImageSentiment is returned when a supplied image sentiment is malformed.
	ErrInvalidImageSentiment = errors.New("invalid image sentiment")
)

// analysisNamespace seeds the name-based UUIDs of analyses.
var analysisNamespace = uuid.MustParse("6f1c3c9e-43a1-4b7e-9b0f-2d5b8a0f6e21")

// AnalysisResult is the immutable outcome of one Analyze call.
type AnalysisResult struct {
	ID                string              `json:"id"`
	DetectedAsset     *string             `json:"detected_asset"`
	AssetName         string              `json:"asset_name"`
	AssetType         string              `json:"asset_type"`
	SentimentAnalysis sentiment.Combined  `json:"sentiment_analysis"`
	MarketImpact      impact.MarketImpact `json:"market_impact"`
	KeyInsights       []string            `json:"key_insights"`
	ConfidenceScore   float64             `json:"confidence_score"`
	ConfidenceFactors ConfidenceFactors   `json:"confidence_factors"`
	AnalysisTimestamp time.Time           `json:"analysis_timestamp"`
	FullTextLength    int                 `json:"full_text_length"`
	Asset             *asset.Descriptor   `json:"-"`
	Text              string              `json:"-"`
}

// Symbol returns the detected asset symbol, or "" for an unknown asset.
func (r *AnalysisResult) Symbol() string {
	if r.DetectedAsset == nil {
		return ""
	}
	return *r.DetectedAsset
}

// Request is the input of one analysis. ImageSentiment takes precedence over
// ImageURL. A nil Estimator uses the engine's default estimator, if any.
type Request struct {
	Text           string
	ImageSentiment *sentiment.Score
	ImageURL       string
	Estimator      sentiment.Estimator
}

// Engine wires the analysis components into a single pipeline. All of its state
// is read-only after New, so one Engine serves concurrent requests.
type Engine struct {
	policy     Policy
	detector   *asset.Detector
	keyword    *sentiment.KeywordAnalyzer
	fuser      *sentiment.Fuser
	classifier *impact.Classifier
	extractor  *insight.Extractor
	confidence ConfidenceCalculator

	estimator sentiment.Estimator
	images    ImageSentimentProvider
	sink      Sink
	clock     func() time.Time
	logger    *logger.Logger
}

// Option customizes an Engine.
type Option func(*Engine)

// WithEstimator sets the default text estimator used when a request has none.
func WithEstimator(est sentiment.Estimator) Option {
	return func(e *Engine) { e.estimator = est }
}

// WithImageProvider resolves Request.ImageURL into an image sentiment.
func WithImageProvider(p ImageSentimentProvider) Option {
	return func(e *Engine) { e.images = p }
}

// WithSinks appends result sinks.
func WithSinks(sinks ...Sink) Option {
	return func(e *Engine) {
		if existing, ok := e.sink.(MultiSink); ok {
			e.sink = append(existing, sinks...)
			return
		}
		e.sink = MultiSink(sinks)
	}
}

func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

func WithLogger(log *logger.Logger) Option {
	return func(e *Engine) { e.logger = log }
}

// New validates policy and builds an Engine over a loaded lexicon and catalog.
func New(lex *lexicon.Lexicon, catalog *asset.Catalog, policy Policy, opts ...Option) (*Engine, error) {
	if lex == nil {
		return nil, errors.New("lexicon is required")
	}
	if catalog == nil {
		return nil, errors.New("asset catalog is required")
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		policy:     policy,
		detector:   asset.NewDetector(catalog),
		keyword:    sentiment.NewKeywordAnalyzer(lex, policy.keywordConfig()),
		classifier: impact.NewClassifier(policy.thresholds()),
		extractor:  insight.NewExtractor(lex, policy.MaxInsights),
		confidence: NewConfidenceCalculator(policy),
		clock:      time.Now,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.fuser = sentiment.NewFuser(e.keyword, policy.fusionConfig(), e.logger)
	return e, nil
}

// Policy returns the constants the engine was built with.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Keyword exposes the keyword analyzer, e.g. for offline scoring.
func (e *Engine) Keyword() *sentiment.KeywordAnalyzer {
	return e.keyword
}

// Detect runs asset detection alone.
func (e *Engine) Detect(text string) (asset.Descriptor, bool) {
	return e.detector.Detect(text)
}

// Analyze runs the full pipeline. The only errors are malformed inputs: an
// estimator failure falls back to keyword scoring and sink failures are logged.
func (e *Engine) Analyze(ctx context.Context, req Request) (*AnalysisResult, error) {
	if !utf8.ValidString(req.Text) {
		return nil, ErrInvalidText
	}
	blank := strings.TrimSpace(req.Text) == ""
	if blank {
		// The result is neutral whatever the image says.
		req.ImageURL = ""
	}
	image, err := e.imageSentiment(ctx, req)
	if err != nil {
		return nil, err
	}

	now := e.clock()
	var result *AnalysisResult
	if blank {
		result = e.neutralResult(req.Text, image, now)
	} else {
		result = e.analyze(ctx, req, image, now)
	}

	e.logger.DebugContext(ctx, "Analysis completed",
		logger.StringField("analysis_id", result.ID),
		logger.StringField("asset", result.AssetName),
		logger.StringField("label", string(result.SentimentAnalysis.CombinedSentiment.Label)),
		logger.StringField("impact", string(result.MarketImpact.ImpactLevel)),
		logger.StringField("method", string(result.SentimentAnalysis.Method)),
	)

	if e.sink != nil {
		if err := e.sink.Consume(ctx, result); err != nil {
			e.logger.Error("Failed to deliver analysis to sinks", logger.ErrorField(err), logger.StringField("analysis_id", result.ID))
		}
	}
	return result, nil
}

func (e *Engine) analyze(ctx context.Context, req Request, image *sentiment.Score, now time.Time) *AnalysisResult {
	result := e.newResult(req.Text, image, now)

	descriptor, found := e.detector.Detect(req.Text)
	subject := ""
	if found {
		d := descriptor
		result.Asset = &d
		result.DetectedAsset = &d.Symbol
		result.AssetName = d.DisplayName
		result.AssetType = string(d.Type)
		subject = d.DisplayName
	}

	estimator := req.Estimator
	if estimator == nil {
		estimator = e.estimator
	}

	scan := e.keyword.Scan(req.Text)
	combined := e.fuser.Fuse(ctx, req.Text, image, estimator, subject)

	result.SentimentAnalysis = combined
	result.MarketImpact = e.classifier.Classify(combined, scan, req.Text)
	result.KeyInsights = e.extractor.Extract(req.Text)
	result.ConfidenceFactors = e.confidence.Factors(combined.CombinedScore, req.Text, found, scan.HitCount())
	result.ConfidenceScore = result.ConfidenceFactors.Mean()
	return result
}

// neutralResult answers empty or whitespace-only text. A supplied image sentiment
// is reported but not fused.
func (e *Engine) neutralResult(text string, image *sentiment.Score, now time.Time) *AnalysisResult {
	result := e.newResult(text, image, now)
	neutral := sentiment.Score{Label: sentiment.Neutral, Score: 1}
	result.SentimentAnalysis = sentiment.Combined{
		ImageSentiment:    image,
		TextSentiment:     neutral,
		CombinedSentiment: neutral,
		Method:            sentiment.MethodKeyword,
		Summary:           sentiment.Summarize(sentiment.Neutral, 0, "", neutral, image),
	}
	result.MarketImpact = impact.MarketImpact{
		ImpactLevel:       impact.Neutral,
		ImpactDescription: impact.Describe(impact.Neutral, impact.LongTerm),
		TimeHorizon:       impact.LongTerm,
	}
	return result
}

func (e *Engine) newResult(text string, image *sentiment.Score, now time.Time) *AnalysisResult {
	return &AnalysisResult{
		ID:                analysisID(text, image, now),
		AssetName:         "Unknown",
		AssetType:         UnknownAsset,
		KeyInsights:       []string{},
		AnalysisTimestamp: now,
		FullTextLength:    utf8.RuneCountInString(text),
		Text:              text,
	}
}

func (e *Engine) imageSentiment(ctx context.Context, req Request) (*sentiment.Score, error) {
	if req.ImageSentiment != nil {
		if err := req.ImageSentiment.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImageSentiment, err)
		}
		s := *req.ImageSentiment
		return &s, nil
	}
	if req.ImageURL == "" || e.images == nil {
		return nil, nil
	}

	s, err := e.fetchImageSentiment(ctx, req.ImageURL)
	if err == nil {
		err = s.Validate()
	}
	if err != nil {
		e.logger.Warn("Image sentiment unavailable, analyzing text only", logger.ErrorField(err), logger.StringField("image_url", req.ImageURL))
		return nil, nil
	}
	return &s, nil
}

// fetchImageSentiment bounds the provider by ImageTimeout, counted from the moment
// a throttled provider has acquired request capacity.
func (e *Engine) fetchImageSentiment(ctx context.Context, imageURL string) (sentiment.Score, error) {
	if t, ok := e.images.(sentiment.Throttled); ok {
		acquired, err := t.Acquire(ctx)
		if err != nil {
			return sentiment.Score{}, fmt.Errorf("failed to acquire image provider capacity: %w", err)
		}
		ctx = acquired
	}
	if e.policy.ImageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.policy.ImageTimeout)
		defer cancel()
	}
	return e.images.ImageSentiment(ctx, imageURL)
}

// analysisID is a name-based UUID over the inputs and the analysis time, so a
// replayed request with a fixed clock reproduces its id.
func analysisID(text string, image *sentiment.Score, now time.Time) string {
	var b strings.Builder
	b.WriteString(now.UTC().Format(time.RFC3339Nano))
	b.WriteByte(0)
	b.WriteString(text)
	if image != nil {
		fmt.Fprintf(&b, "\x00%s:%g", image.Label, image.Score)
	}
	return uuid.NewSHA1(analysisNamespace, []byte(b.String())).String()
}
