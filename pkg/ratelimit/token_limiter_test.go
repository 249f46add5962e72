package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenLimiter_WithinBudget(t *testing.T) {
	l := NewTokenLimiter(600)

	require.NoError(t, l.Wait(context.Background(), 500))
	assert.InDelta(t, 100, l.GetRemaining(), 5)
}

func TestTokenLimiter_RejectsOversizedRequest(t *testing.T) {
	l := NewTokenLimiter(100)

	assert.Error(t, l.Wait(context.Background(), 101))
}

func TestTokenLimiter_HonoursContext(t *testing.T) {
	l := NewTokenLimiter(60)
	require.NoError(t, l.Wait(context.Background(), 60))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, 30))
}

func TestTokenLimiter_Unlimited(t *testing.T) {
	l := NewTokenLimiter(0)

	require.NoError(t, l.Wait(context.Background(), 1_000_000))
	assert.Equal(t, -1, l.GetRemaining())
}
