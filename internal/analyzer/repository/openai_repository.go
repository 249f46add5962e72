package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/ratelimit"

	"golang.org/x/time/rate"
)

// OpenAIRepository scores text with an OpenAI compatible chat completions API.
type OpenAIRepository interface {
	Acquire(ctx context.Context) (context.Context, error)
	Score(ctx context.Context, text string) (sentiment.Score, error)
}

type openAIRepository struct {
	client         *http.Client
	cfg            config.OpenAI
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
}

// NewOpenAIRepository creates a new instance of openAIRepository.
func NewOpenAIRepository(cfg config.OpenAI, log *logger.Logger, client *http.Client) (OpenAIRepository, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if cfg.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("openai max_request_per_minute must be positive")
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &openAIRepository{
		client:         client,
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute, cfg.RequestBurst),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.MaxTokenPerMinute),
	}, nil
}

// Acquire waits for a request slot ahead of Score.
func (r *openAIRepository) Acquire(ctx context.Context) (context.Context, error) {
	return acquireRequest(ctx, r.requestLimiter)
}

// Score classifies the sentiment of text.
func (r *openAIRepository) Score(ctx context.Context, text string) (sentiment.Score, error) {
	content, err := r.sendRequest(ctx, BuildTextSentimentPrompt(text))
	if err != nil {
		return sentiment.Score{}, err
	}

	score, err := parseSentimentJSON(content)
	if err != nil {
		r.logger.Error("Failed to parse sentiment from OpenAI response", logger.ErrorField(err))
		return sentiment.Score{}, fmt.Errorf("openai: %w", err)
	}
	return score, nil
}

// sendRequest posts one user message and returns the first choice. Tokens are
// charged once the response reports usage.
func (r *openAIRepository) sendRequest(ctx context.Context, prompt string) (string, error) {
	if err := waitRequest(ctx, r.requestLimiter); err != nil {
		return "", err
	}

	payload := dto.OpenAIRequest{
		Model:    r.cfg.Model,
		Messages: []dto.OpenAIMessage{{Role: "user", Content: prompt}},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL, bytes.NewReader(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to OpenAI API", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.logger.Error("Received non-OK response from OpenAI API", logger.IntField("status_code", resp.StatusCode))
		return "", fmt.Errorf("received non-OK response from OpenAI API: %d - %s", resp.StatusCode, string(body))
	}

	var openAIResp dto.OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}
	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("invalid response from OpenAI API: no choices found")
	}

	r.logger.Debug("OpenAI token usage",
		logger.IntField("total_tokens", openAIResp.Usage.TotalTokens),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)
	if err := r.tokenLimiter.Wait(ctx, openAIResp.Usage.TotalTokens); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}

	return openAIResp.Choices[0].Message.Content, nil
}
