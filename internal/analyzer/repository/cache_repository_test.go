package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string]string
	lastTTL time.Duration
	getErr  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

type cachedThing struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestCacheRepository_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	repo := NewCacheRepository(kv, time.Minute)
	ctx := context.Background()

	var got cachedThing
	found, err := repo.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Set(ctx, "k", cachedThing{Name: "nifty", Score: 0.4}))
	assert.Equal(t, time.Minute, kv.lastTTL)

	found, err = repo.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedThing{Name: "nifty", Score: 0.4}, got)
}

func TestCacheRepository_Disabled(t *testing.T) {
	kv := newFakeKV()
	repo := NewCacheRepository(kv, 0)

	require.NoError(t, repo.Set(context.Background(), "k", cachedThing{Name: "x"}))
	assert.Empty(t, kv.data)

	var got cachedThing
	found, err := repo.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheRepository_Errors(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("connection refused")
	repo := NewCacheRepository(kv, time.Minute)

	var got cachedThing
	_, err := repo.Get(context.Background(), "k", &got)
	assert.ErrorContains(t, err, "connection refused")

	kv.getErr = nil
	kv.data["bad"] = "{not json"
	_, err = repo.Get(context.Background(), "bad", &got)
	assert.ErrorContains(t, err, "failed to decode")
}

func TestCacheKey(t *testing.T) {
	a := CacheKey("text", "Nifty rallied", "")
	b := CacheKey("text", "Nifty rallied", "")
	c := CacheKey("text", "Nifty rallie", "d")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "analysis:result:text:"))
	assert.Len(t, strings.TrimPrefix(a, "analysis:result:text:"), 64)
}
