package sentiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-market-sentiment/pkg/logger"
)

// Estimator produces a text sentiment. Implementations may block and may fail.
type Estimator interface {
	Score(ctx context.Context, text string) (Score, error)
}

// Throttled is implemented by rate limited estimators. Acquire waits for request
// capacity under the caller's context only; the estimator timeout starts once it
// returns, and Score must be called with the returned context.
type Throttled interface {
	Acquire(ctx context.Context) (context.Context, error)
}

// EstimatorFunc adapts a function to Estimator.
type EstimatorFunc func(ctx context.Context, text string) (Score, error)

func (f EstimatorFunc) Score(ctx context.Context, text string) (Score, error) {
	return f(ctx, text)
}

// Estimate is a text sentiment together with the method that produced it.
type Estimate struct {
	Score  Score
	Method Method
}

// FallbackEstimator tries a primary estimator under a timeout and substitutes the
// keyword analyzer when the primary is absent, fails, times out or returns an
// invalid score. It never returns an error.
type FallbackEstimator struct {
	primary  Estimator
	keyword  *KeywordAnalyzer
	timeout  time.Duration
	logger   *logger.Logger
	adjuster func(text string, s Score) Score
}

// NewFallbackEstimator builds the decorator. primary may be nil. A zero timeout
// leaves the primary bounded only by ctx.
func NewFallbackEstimator(primary Estimator, keyword *KeywordAnalyzer, timeout time.Duration, log *logger.Logger) *FallbackEstimator {
	if log == nil {
		log = logger.NewNop()
	}
	return &FallbackEstimator{
		primary:  primary,
		keyword:  keyword,
		timeout:  timeout,
		logger:   log,
		adjuster: keyword.AdjustForContext,
	}
}

// Score implements Estimator.
func (f *FallbackEstimator) Score(ctx context.Context, text string) (Score, error) {
	return f.Estimate(ctx, text).Score, nil
}

// Estimate returns the primary's score when it succeeds, adjusted for context,
// and the keyword score otherwise.
func (f *FallbackEstimator) Estimate(ctx context.Context, text string) Estimate {
	if f.primary == nil {
		return Estimate{Score: f.keyword.ScoreText(text), Method: MethodKeyword}
	}

	score, err := f.callPrimary(ctx, text)
	if err != nil {
		f.logger.Warn("Text estimator unavailable, falling back to keyword analysis",
			logger.ErrorField(err),
			logger.IntField("text_length", len(text)),
		)
		return Estimate{Score: f.keyword.ScoreText(text), Method: MethodKeyword}
	}
	return Estimate{Score: f.adjuster(text, score), Method: MethodML}
}

type primaryResult struct {
	score Score
	err   error
}

// callPrimary runs the primary in its own goroutine so an estimator that ignores
// ctx still cannot hold the request past the timeout.
func (f *FallbackEstimator) callPrimary(ctx context.Context, text string) (Score, error) {
	if t, ok := f.primary.(Throttled); ok {
		acquired, err := t.Acquire(ctx)
		if err != nil {
			return Score{}, fmt.Errorf("failed to acquire text estimator capacity: %w", err)
		}
		ctx = acquired
	}
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	done := make(chan primaryResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- primaryResult{err: fmt.Errorf("text estimator panicked: %v", r)}
			}
		}()
		score, err := f.primary.Score(ctx, text)
		done <- primaryResult{score: score, err: err}
	}()

	var res primaryResult
	select {
	case res = <-done:
	case <-ctx.Done():
		res = primaryResult{err: ctx.Err()}
	}

	if res.err != nil {
		if errors.Is(res.err, context.DeadlineExceeded) {
			return Score{}, fmt.Errorf("text estimator timed out after %s: %w", f.timeout, res.err)
		}
		return Score{}, fmt.Errorf("failed to estimate text sentiment: %w", res.err)
	}
	if err := res.score.Validate(); err != nil {
		return Score{}, fmt.Errorf("text estimator returned an invalid score: %w", err)
	}
	return res.score, nil
}

// AdjustForContext discounts a non-neutral estimator score when every sentence of
// text is a question. The discounted value goes back through the dead zone.
func (a *KeywordAnalyzer) AdjustForContext(text string, s Score) Score {
	if s.Label == Neutral || !a.Scan(text).AllQuestions() {
		return s
	}
	return FromNumeric(s.Signed()*a.cfg.QuestionDiscount, a.cfg.DeadZone)
}
