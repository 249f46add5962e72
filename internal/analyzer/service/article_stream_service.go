package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// StreamClient is the subset of the Redis client used to consume a stream.
type StreamClient interface {
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd
	XClaim(ctx context.Context, a *redis.XClaimArgs) *redis.XMessageSliceCmd
}

// ArticleStreamOptions tunes the stream reads.
type ArticleStreamOptions struct {
	Block    time.Duration
	Count    int64
	MaxIdle  time.Duration
	MaxRetry int64
}

// ArticleStreamService analyzes articles published on the article.analysis stream.
type ArticleStreamService interface {
	ProcessTask(ctx context.Context)
	ProcessRetries(ctx context.Context)
}

// NewArticleStreamService creates a new ArticleStreamService.
func NewArticleStreamService(client StreamClient, analysisService AnalysisService, opts ArticleStreamOptions, log *logger.Logger) ArticleStreamService {
	if opts.Count <= 0 {
		opts.Count = 1
	}
	return &articleStreamService{
		client:          client,
		analysisService: analysisService,
		opts:            opts,
		logger:          log,
	}
}

type articleStreamService struct {
	client          StreamClient
	analysisService AnalysisService
	opts            ArticleStreamOptions
	logger          *logger.Logger
}

// ProcessTask reads new messages and analyzes each article.
func (s *articleStreamService) ProcessTask(ctx context.Context) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamArticleAnalysis, ">"},
		Count:    s.opts.Count,
		Block:    s.opts.Block,
	}).Result()
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return
		}
		s.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			s.handle(ctx, message)
		}
	}
}

// ProcessRetries claims messages that stayed pending for too long and retries
// them. Messages past the retry budget are acknowledged and dropped.
func (s *articleStreamService) ProcessRetries(ctx context.Context) {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: common.RedisStreamArticleAnalysis,
		Group:  common.RedisStreamGroup,
		Idle:   s.opts.MaxIdle,
		Start:  "-",
		End:    "+",
		Count:  10,
	}).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error("Failed to list pending messages", logger.ErrorField(err))
		}
		return
	}

	var claim []string
	for _, p := range pending {
		if p.RetryCount > s.opts.MaxRetry {
			s.logger.Warn("Dropping article after too many retries", logger.StringField("message_id", p.ID), logger.Field("retries", p.RetryCount))
			s.ack(ctx, p.ID)
			continue
		}
		claim = append(claim, p.ID)
	}
	if len(claim) == 0 {
		return
	}

	messages, err := s.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   common.RedisStreamArticleAnalysis,
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		MinIdle:  s.opts.MaxIdle,
		Messages: claim,
	}).Result()
	if err != nil {
		s.logger.Error("Failed to claim pending messages", logger.ErrorField(err))
		return
	}
	for _, message := range messages {
		s.handle(ctx, message)
	}
}

// handle acknowledges a message once it is analyzed or known to be unanalyzable.
// Transient failures stay pending for ProcessRetries.
func (s *articleStreamService) handle(ctx context.Context, message redis.XMessage) {
	payload, ok := message.Values["payload"].(string)
	if !ok {
		s.logger.Error("field 'payload' not found or not a string in stream message", logger.StringField("message_id", message.ID))
		s.ack(ctx, message.ID)
		return
	}

	var event entity.ArticleEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil || event.URL == "" {
		s.logger.Error("Failed to unmarshal article event", logger.ErrorField(err), logger.StringField("message_id", message.ID))
		s.ack(ctx, message.ID)
		return
	}

	resp, err := s.analysisService.AnalyzeURL(ctx, &dto.AnalyzeURLRequest{URL: event.URL, Title: event.Title})
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			s.logger.Warn("Skipping unanalyzable article", logger.ErrorField(err), logger.StringField("url", event.URL))
			s.ack(ctx, message.ID)
			return
		}
		s.logger.Error("Failed to analyze article, will retry", logger.ErrorField(err), logger.StringField("url", event.URL))
		return
	}

	s.logger.Info("Analyzed article from stream",
		logger.StringField("message_id", message.ID),
		logger.StringField("url", event.URL),
		logger.StringField("label", string(resp.SentimentAnalysis.CombinedSentiment.Label)),
	)
	s.ack(ctx, message.ID)
}

func (s *articleStreamService) ack(ctx context.Context, id string) {
	if err := s.client.XAck(ctx, common.RedisStreamArticleAnalysis, common.RedisStreamGroup, id).Err(); err != nil {
		s.logger.Error("Failed to acknowledge message", logger.ErrorField(err), logger.StringField("message_id", id))
	}
}
