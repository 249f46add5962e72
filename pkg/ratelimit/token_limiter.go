package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// TokenLimiter bounds the number of model tokens spent per minute.
type TokenLimiter struct {
	limiter *rate.Limiter
	burst   int
}

// NewTokenLimiter allows tokensPerMinute tokens per minute with a full-minute burst.
func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	if tokensPerMinute <= 0 {
		return &TokenLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &TokenLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(tokensPerMinute)/60), tokensPerMinute),
		burst:   tokensPerMinute,
	}
}

// Wait blocks until n tokens are available or ctx is done. Requests larger than
// the per-minute budget are rejected.
func (t *TokenLimiter) Wait(ctx context.Context, n int) error {
	if t.burst > 0 && n > t.burst {
		return fmt.Errorf("request of %d tokens exceeds the per-minute budget of %d", n, t.burst)
	}
	if n <= 0 {
		return nil
	}
	return t.limiter.WaitN(ctx, n)
}

// GetRemaining is the number of tokens currently available.
func (t *TokenLimiter) GetRemaining() int {
	if t.burst == 0 {
		return -1
	}
	return int(t.limiter.Tokens())
}
