package consumer

import (
	"context"
	"sync"
	"time"

	"golang-market-sentiment/internal/analyzer/config"
	"golang-market-sentiment/internal/analyzer/service"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"
)

// RedisConsumer manages the consumption of articles from a Redis stream.
type RedisConsumer struct {
	cfg                  config.Consumer
	articleStreamService service.ArticleStreamService
	logger               *logger.Logger
	stopChan             chan struct{}
	stopOnce             sync.Once
	wg                   sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(cfg config.Consumer, articleStreamService service.ArticleStreamService, log *logger.Logger) *RedisConsumer {
	return &RedisConsumer{
		cfg:                  cfg,
		articleStreamService: articleStreamService,
		logger:               log.With(logger.StringField("stream", common.RedisStreamArticleAnalysis)),
		stopChan:             make(chan struct{}),
	}
}

// Start begins the consumer's processing loops.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")
	c.RegisterStreamHandler(ctx, c.articleStreamService.ProcessTask, common.RedisStreamArticleAnalysis, c.cfg.Timeout)

	//handle retry
	c.RegisterTickerHandler(ctx, c.articleStreamService.ProcessRetries, c.cfg.RetryInterval, c.cfg.Timeout, common.RedisStreamArticleAnalysis+"-retry")
}

func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation", logger.Field("stream", streamName))
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping", logger.Field("stream", streamName))
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

func (c *RedisConsumer) RegisterTickerHandler(ctx context.Context, fn func(ctx context.Context), interval time.Duration, timeout time.Duration, name string) {
	c.logger.Info("Registering ticker handler",
		logger.Field("name", name),
		logger.Field("interval", interval),
		logger.Field("timeout", timeout))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			case <-ctx.Done():
				c.logger.Info("Ticker handler stopping due to context cancellation", logger.Field("name", name))
				return
			case <-c.stopChan:
				c.logger.Info("Ticker handler stopping", logger.Field("name", name))
				return
			}
		}
	})
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
