package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, status int, answer string, got *dto.OpenAIRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(dto.OpenAIResponse{
			Choices: []dto.OpenAIChoice{{Message: dto.OpenAIMessage{Role: "assistant", Content: answer}}},
			Usage:   dto.OpenAIUsage{TotalTokens: 120},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAI(t *testing.T, srv *httptest.Server) OpenAIRepository {
	t.Helper()
	repo, err := NewOpenAIRepository(config.OpenAI{
		APIKey:              "secret",
		BaseURL:             srv.URL + "/v1/chat/completions",
		Model:               "gpt-test",
		MaxRequestPerMinute: 6000,
		MaxTokenPerMinute:   100000,
	}, logger.NewNop(), srv.Client())
	require.NoError(t, err)
	return repo
}

func TestOpenAIRepository_Score(t *testing.T) {
	var req dto.OpenAIRequest
	srv := newOpenAIServer(t, http.StatusOK, "```json\n{\"label\":\"NEGATIVE\",\"score\":0.74}\n```", &req)

	got, err := newTestOpenAI(t, srv).Score(context.Background(), "HDFC Bank shares slumped after weak results.")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Score{Label: sentiment.Negative, Score: 0.74}, got)

	assert.Equal(t, "gpt-test", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "HDFC Bank shares slumped")
}

func TestOpenAIRepository_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		answer  string
		wantErr string
	}{
		{name: "non-OK status", status: http.StatusUnauthorized, wantErr: "401"},
		{name: "not json", status: http.StatusOK, answer: "Bullish!", wantErr: "failed to unmarshal"},
		{name: "unknown label", status: http.StatusOK, answer: `{"label":"MIXED","score":0.5}`, wantErr: "unusable sentiment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newOpenAIServer(t, tt.status, tt.answer, nil)
			_, err := newTestOpenAI(t, srv).Score(context.Background(), "Nifty closed flat.")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewOpenAIRepository_Validation(t *testing.T) {
	_, err := NewOpenAIRepository(config.OpenAI{MaxRequestPerMinute: 1}, logger.NewNop(), nil)
	assert.Error(t, err)
	_, err = NewOpenAIRepository(config.OpenAI{APIKey: "k"}, logger.NewNop(), nil)
	assert.Error(t, err)
}

func TestOpenAIRepository_AcquireReservesRequestSlot(t *testing.T) {
	srv := newOpenAIServer(t, http.StatusOK, `{"label":"POSITIVE","score":0.6}`, nil)
	repo, err := NewOpenAIRepository(config.OpenAI{
		APIKey:              "secret",
		BaseURL:             srv.URL + "/v1/chat/completions",
		Model:               "gpt-test",
		MaxRequestPerMinute: 1,
	}, logger.NewNop(), srv.Client())
	require.NoError(t, err)

	acquired, err := repo.Acquire(context.Background())
	require.NoError(t, err)
	got, err := repo.Score(acquired, "Nifty rallied.")
	require.NoError(t, err)
	assert.Equal(t, sentiment.Positive, got.Label)
}
