package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type geminiStub struct {
	answer string
	status int

	mu       sync.Mutex
	requests []dto.GeminiAPIRequest
}

func (g *geminiStub) received() []dto.GeminiAPIRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]dto.GeminiAPIRequest(nil), g.requests...)
}

func (g *geminiStub) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/models/gemini-test:generateContent", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))

		var req dto.GeminiAPIRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		g.mu.Lock()
		g.requests = append(g.requests, req)
		g.mu.Unlock()

		if g.status != 0 {
			w.WriteHeader(g.status)
			fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.GeminiAPIResponse{
			Candidates: []dto.Candidate{{Content: dto.Content{Parts: []dto.Part{{Text: g.answer}}}}},
		})
	})
	mux.HandleFunc("/chart.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html></html>")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestGemini(t *testing.T, srv *httptest.Server) GeminiRepository {
	t.Helper()
	repo, err := NewGeminiRepository(config.Gemini{
		APIKey:              "secret",
		BaseURL:             srv.URL + "/models/",
		Model:               "gemini-test",
		MaxRequestPerMinute: 6000,
		MaxTokenPerMinute:   100000,
		Timeout:             5 * time.Second,
	}, logger.NewNop(), nil, srv.Client())
	require.NoError(t, err)
	return repo
}

func TestGeminiRepository_Score(t *testing.T) {
	stub := &geminiStub{answer: "```json\n{\"label\": \"positive\", \"score\": 0.82}\n```"}
	repo := newTestGemini(t, stub.server(t))

	got, err := repo.Score(context.Background(), "Infosys profits rose 12% this quarter.")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Score{Label: sentiment.Positive, Score: 0.82}, got)

	requests := stub.received()
	require.Len(t, requests, 1)
	parts := requests[0].Contents[0].Parts
	require.Len(t, parts, 1)
	assert.Contains(t, parts[0].Text, "Infosys profits rose 12% this quarter.")
	assert.Equal(t, "application/json", requests[0].GenerationConfig.ResponseMimeType)
}

func TestGeminiRepository_ImageSentiment(t *testing.T) {
	stub := &geminiStub{answer: `{"label":"NEGATIVE","score":0.6}`}
	srv := stub.server(t)
	repo := newTestGemini(t, srv)

	got, err := repo.ImageSentiment(context.Background(), srv.URL+"/chart.png")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Score{Label: sentiment.Negative, Score: 0.6}, got)

	requests := stub.received()
	require.Len(t, requests, 1)
	parts := requests[0].Contents[0].Parts
	require.Len(t, parts, 2)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/png", parts[1].InlineData.MimeType)
	assert.NotEmpty(t, parts[1].InlineData.Data)

	_, err = repo.ImageSentiment(context.Background(), srv.URL+"/page.html")
	assert.ErrorContains(t, err, "does not point to an image")
}

func TestGeminiRepository_Failures(t *testing.T) {
	tests := []struct {
		name    string
		stub    *geminiStub
		wantErr string
	}{
		{name: "non-OK status", stub: &geminiStub{status: http.StatusTooManyRequests}, wantErr: "429"},
		{name: "not json", stub: &geminiStub{answer: "The market looks great!"}, wantErr: "failed to unmarshal"},
		{name: "unknown label", stub: &geminiStub{answer: `{"label":"BULLISH","score":0.9}`}, wantErr: "unusable sentiment"},
		{name: "score out of range", stub: &geminiStub{answer: `{"label":"POSITIVE","score":7}`}, wantErr: "unusable sentiment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestGemini(t, tt.stub.server(t))
			_, err := repo.Score(context.Background(), "Sensex fell.")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewGeminiRepository_Validation(t *testing.T) {
	_, err := NewGeminiRepository(config.Gemini{MaxRequestPerMinute: 1}, logger.NewNop(), nil, nil)
	assert.Error(t, err)
	_, err = NewGeminiRepository(config.Gemini{APIKey: "k"}, logger.NewNop(), nil, nil)
	assert.Error(t, err)
}

func TestGeminiRepository_ImageAndTextWithinShippedLimits(t *testing.T) {
	stub := &geminiStub{answer: `{"label":"POSITIVE","score":0.9}`}
	srv := stub.server(t)
	repo, err := NewGeminiRepository(config.Gemini{
		APIKey:              "secret",
		BaseURL:             srv.URL + "/models/",
		Model:               "gemini-test",
		MaxRequestPerMinute: 15,
		RequestBurst:        2,
		MaxTokenPerMinute:   1000000,
		Timeout:             5 * time.Second,
	}, logger.NewNop(), nil, srv.Client())
	require.NoError(t, err)

	lex, err := lexicon.Default()
	require.NoError(t, err)
	catalog, err := asset.DefaultCatalog()
	require.NoError(t, err)
	e, err := engine.New(lex, catalog, engine.DefaultPolicy(), engine.WithEstimator(repo), engine.WithImageProvider(repo))
	require.NoError(t, err)

	result, err := e.Analyze(context.Background(), engine.Request{
		Text:     "Infosys reported quarterly results.",
		ImageURL: srv.URL + "/chart.png",
	})
	require.NoError(t, err)

	sa := result.SentimentAnalysis
	require.NotNil(t, sa.ImageSentiment)
	assert.Equal(t, sentiment.Positive, sa.ImageSentiment.Label)
	assert.Equal(t, sentiment.MethodML, sa.Method)
	assert.Equal(t, sentiment.Score{Label: sentiment.Positive, Score: 0.9}, sa.TextSentiment)
	assert.Len(t, stub.received(), 2)
}

func TestGeminiRepository_AcquireReservesRequestSlot(t *testing.T) {
	stub := &geminiStub{answer: `{"label":"NEGATIVE","score":0.7}`}
	srv := stub.server(t)
	repo, err := NewGeminiRepository(config.Gemini{
		APIKey:              "secret",
		BaseURL:             srv.URL + "/models/",
		Model:               "gemini-test",
		MaxRequestPerMinute: 1,
		Timeout:             5 * time.Second,
	}, logger.NewNop(), nil, srv.Client())
	require.NoError(t, err)

	acquired, err := repo.Acquire(context.Background())
	require.NoError(t, err)

	// The slot is already taken, so the call must not wait a minute for another.
	ctx, cancel := context.WithTimeout(acquired, 2*time.Second)
	defer cancel()
	got, err := repo.Score(ctx, "Sensex fell.")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Negative, got.Label)

	// Without a reservation the exhausted limiter cannot serve within the deadline.
	short, cancelShort := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancelShort()
	_, err = repo.Score(short, "Sensex fell.")
	assert.ErrorContains(t, err, "request limit")
}
