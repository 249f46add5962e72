package repository

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	// imageTokenCost is the flat token price Gemini charges for one image.
	imageTokenCost = 258
	maxImageBytes  = 4 << 20
)

// GeminiRepository scores text and images with the Gemini API.
type GeminiRepository interface {
	Acquire(ctx context.Context) (context.Context, error)
	Score(ctx context.Context, text string) (sentiment.Score, error)
	ImageSentiment(ctx context.Context, imageURL string) (sentiment.Score, error)
}

// geminiRepository posts generateContent requests and counts tokens with the
// genai client. Without a genai client tokens are estimated from prompt length.
type geminiRepository struct {
	client         *http.Client
	cfg            config.Gemini
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiRepository creates a new instance of geminiRepository.
func NewGeminiRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client, client *http.Client) (GeminiRepository, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if cfg.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("gemini max_request_per_minute must be positive")
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &geminiRepository{
		client:         client,
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute, cfg.RequestBurst),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.MaxTokenPerMinute),
		genAiClient:    genAiClient,
	}, nil
}

// Acquire waits for a request slot ahead of Score or ImageSentiment.
func (r *geminiRepository) Acquire(ctx context.Context) (context.Context, error) {
	return acquireRequest(ctx, r.requestLimiter)
}

// Score classifies the sentiment of text.
func (r *geminiRepository) Score(ctx context.Context, text string) (sentiment.Score, error) {
	prompt := BuildTextSentimentPrompt(text)
	resp, err := r.executeGeminiAIRequest(ctx, prompt, nil)
	if err != nil {
		return sentiment.Score{}, err
	}
	return r.parseSentimentResponse(resp)
}

// ImageSentiment downloads the image and classifies the sentiment it conveys.
func (r *geminiRepository) ImageSentiment(ctx context.Context, imageURL string) (sentiment.Score, error) {
	image, err := r.downloadImage(ctx, imageURL)
	if err != nil {
		return sentiment.Score{}, err
	}
	resp, err := r.executeGeminiAIRequest(ctx, BuildImageSentimentPrompt(), image)
	if err != nil {
		return sentiment.Score{}, err
	}
	return r.parseSentimentResponse(resp)
}

func (r *geminiRepository) executeGeminiAIRequest(ctx context.Context, prompt string, image *dto.InlineData) (*dto.GeminiAPIResponse, error) {
	tokens, err := r.countTokens(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if image != nil {
		tokens += imageTokenCost
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", tokens),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, tokens); err != nil {
		return nil, fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := waitRequest(ctx, r.requestLimiter); err != nil {
		return nil, err
	}

	parts := []dto.Part{{Text: prompt}}
	if image != nil {
		parts = append(parts, dto.Part{InlineData: image})
	}
	payload := dto.GeminiAPIRequest{
		Contents: []dto.Content{{Role: "user", Parts: parts}},
		GenerationConfig: &dto.GenerationConfig{
			Temperature:      0,
			ResponseMimeType: "application/json",
		},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/%s:generateContent", strings.TrimRight(r.cfg.BaseURL, "/"), r.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", r.cfg.APIKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to Gemini API", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to Gemini API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		r.logger.Error("Received non-OK response from Gemini API", logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from Gemini API: %d - %s", resp.StatusCode, string(body))
	}

	var geminiResp dto.GeminiAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return &geminiResp, nil
}

func (r *geminiRepository) countTokens(ctx context.Context, prompt string) (int, error) {
	if r.genAiClient == nil {
		return len(prompt)/4 + 1, nil
	}
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	resp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Model, contents, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return int(resp.TotalTokens), nil
}

func (r *geminiRepository) parseSentimentResponse(resp *dto.GeminiAPIResponse) (sentiment.Score, error) {
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return sentiment.Score{}, fmt.Errorf("invalid response from Gemini API: no content found")
	}

	score, err := parseSentimentJSON(resp.Candidates[0].Content.Parts[0].Text)
	if err != nil {
		r.logger.Error("Failed to parse sentiment from Gemini response", logger.ErrorField(err))
		return sentiment.Score{}, fmt.Errorf("gemini: %w", err)
	}
	return score, nil
}

func (r *geminiRepository) downloadImage(ctx context.Context, imageURL string) (*dto.InlineData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create image request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image, status code: %d", resp.StatusCode)
	}
	mimeType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("url does not point to an image: %q", resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return &dto.InlineData{
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}
