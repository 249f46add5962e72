package repository

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// requestSlotKey marks a context whose request limiter slot was taken in advance.
type requestSlotKey struct{}

// acquireRequest waits for a slot on limiter. The returned context lets the next
// waitRequest on the same limiter pass without taking a second slot.
func acquireRequest(ctx context.Context, limiter *rate.Limiter) (context.Context, error) {
	if err := limiter.Wait(ctx); err != nil {
		return ctx, fmt.Errorf("failed to wait for request limit: %w", err)
	}
	return context.WithValue(ctx, requestSlotKey{}, limiter), nil
}

func waitRequest(ctx context.Context, limiter *rate.Limiter) error {
	if reserved, ok := ctx.Value(requestSlotKey{}).(*rate.Limiter); ok && reserved == limiter {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for request limit: %w", err)
	}
	return nil
}

func newRequestLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
}
