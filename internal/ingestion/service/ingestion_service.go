package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/internal/ingestion/config"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/telegram"
	"golang-market-sentiment/pkg/utils"

	"github.com/mmcdole/gofeed"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// FeedParser fetches and parses one feed. *gofeed.Parser implements it.
type FeedParser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// Publisher is the subset of the Redis client used to enqueue articles.
type Publisher interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Scorer gives a quick sentiment read of a headline for the digest.
type Scorer interface {
	Analyze(ctx context.Context, req engine.Request) (*engine.AnalysisResult, error)
}

// FeedResult summarizes one feed of a poll.
type FeedResult struct {
	Feed      string
	Fetched   int
	Published int
	Err       error
}

// PollResult summarizes one poll over every feed.
type PollResult struct {
	Feeds   []FeedResult
	Entries []telegram.DigestEntry
}

// Published is the number of articles enqueued over all feeds.
func (r *PollResult) Published() int {
	n := 0
	for _, f := range r.Feeds {
		n += f.Published
	}
	return n
}

// IngestionService polls news feeds and publishes new articles to the
// article.analysis stream.
type IngestionService interface {
	Start(ctx context.Context) error
	Poll(ctx context.Context) *PollResult
}

// Option configures an IngestionService.
type Option func(*ingestionService)

// WithParser replaces the gofeed parser.
func WithParser(p FeedParser) Option {
	return func(s *ingestionService) { s.parser = p }
}

// WithScorer enables headline scoring in the digest.
func WithScorer(sc Scorer) Option {
	return func(s *ingestionService) { s.scorer = sc }
}

// WithNotifier sends a digest after every scheduled poll when digests are enabled.
func WithNotifier(n telegram.Notifier) Option {
	return func(s *ingestionService) { s.notifier = n }
}

// WithClock replaces time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *ingestionService) { s.clock = clock }
}

// NewIngestionService creates a new ingestion service.
func NewIngestionService(cfg config.Ingestion, streamMaxLen int64, publisher Publisher, log *logger.Logger, opts ...Option) IngestionService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	s := &ingestionService{
		cfg:          cfg,
		streamMaxLen: streamMaxLen,
		publisher:    publisher,
		parser:       gofeed.NewParser(),
		seen:         cache.New(cfg.DedupeTTL, cfg.DedupeTTL/2+time.Minute),
		cronParser:   cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor),
		clock:        time.Now,
		logger:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ingestionService struct {
	cfg          config.Ingestion
	streamMaxLen int64
	publisher    Publisher
	parser       FeedParser
	scorer       Scorer
	notifier     telegram.Notifier
	seen         *cache.Cache
	cronParser   cron.Parser
	clock        func() time.Time
	logger       *logger.Logger
}

// Start polls on the configured cron schedule until ctx is done.
func (s *ingestionService) Start(ctx context.Context) error {
	schedule, err := s.cronParser.Parse(s.cfg.Cron)
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cfg.Cron, err)
	}
	if s.cfg.RunOnStart {
		s.run(ctx)
	}

	for {
		next := schedule.Next(time.Now())
		s.logger.Info("Next feed poll scheduled", logger.Field("at", next))
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Ingestion service stopping")
			return nil
		case <-timer.C:
			s.run(ctx)
		}
	}
}

func (s *ingestionService) run(ctx context.Context) {
	runCtx := ctx
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	start := time.Now()
	result := s.Poll(runCtx)
	s.logger.Info("Feed poll finished",
		logger.IntField("feeds", len(result.Feeds)),
		logger.IntField("published", result.Published()),
		logger.DurationField("took", time.Since(start)),
	)
	s.sendDigest(result)
}

// Poll fetches every feed concurrently and publishes items not seen before.
// A failing feed does not stop the others.
func (s *ingestionService) Poll(ctx context.Context) *PollResult {
	var (
		mu     sync.Mutex
		result = &PollResult{Feeds: make([]FeedResult, len(s.cfg.Feeds))}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, feed := range s.cfg.Feeds {
		g.Go(func() error {
			var (
				fr      = FeedResult{Feed: feed.Name}
				entries []telegram.DigestEntry
			)
			func() {
				defer utils.Recover(&fr.Err)
				fr, entries = s.pollFeed(gctx, feed)
			}()
			mu.Lock()
			result.Feeds[i] = fr
			result.Entries = append(result.Entries, entries...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return result
}

func (s *ingestionService) pollFeed(ctx context.Context, feed config.Feed) (FeedResult, []telegram.DigestEntry) {
	fr := FeedResult{Feed: feed.Name}
	s.logger.Info("Processing RSS feed", logger.StringField("feed", feed.Name), logger.StringField("url", feed.URL))

	parsed, err := s.parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		s.logger.Error("Failed to parse RSS feed", logger.ErrorField(err), logger.StringField("feed", feed.Name))
		fr.Err = err
		return fr, nil
	}
	fr.Fetched = len(parsed.Items)

	items := s.freshItems(parsed.Items)
	var entries []telegram.DigestEntry
	for _, item := range items {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		if s.cfg.MaxItems > 0 && fr.Published >= s.cfg.MaxItems {
			break
		}

		key := itemKey(item)
		if err := s.seen.Add(key, struct{}{}, cache.DefaultExpiration); err != nil {
			continue
		}
		event := entity.ArticleEvent{
			URL:         strings.TrimSpace(item.Link),
			Title:       utils.CollapseSpaces(item.Title),
			Source:      parsed.Title,
			Feed:        feed.Name,
			PublishedAt: item.PublishedParsed,
		}
		if err := s.publish(ctx, event); err != nil {
			s.seen.Delete(key)
			s.logger.Error("Failed to enqueue article", logger.ErrorField(err), logger.StringField("url", event.URL))
			fr.Err = err
			continue
		}
		fr.Published++
		entries = append(entries, s.digestEntry(ctx, item, event.Title))
	}

	s.logger.Info("Filtered news items",
		logger.StringField("feed", feed.Name),
		logger.IntField("original_count", fr.Fetched),
		logger.IntField("published_count", fr.Published),
	)
	return fr, entries
}

// freshItems drops items without a link or older than MaxAge, newest first.
func (s *ingestionService) freshItems(items []*gofeed.Item) []*gofeed.Item {
	now := s.clock()
	out := make([]*gofeed.Item, 0, len(items))
	for _, item := range items {
		if item == nil || strings.TrimSpace(item.Link) == "" {
			continue
		}
		if s.cfg.MaxAge > 0 && item.PublishedParsed != nil && now.Sub(*item.PublishedParsed) > s.cfg.MaxAge {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PublishedParsed == nil || out[j].PublishedParsed == nil {
			return out[j].PublishedParsed == nil && out[i].PublishedParsed != nil
		}
		return out[i].PublishedParsed.After(*out[j].PublishedParsed)
	})
	return out
}

func (s *ingestionService) publish(ctx context.Context, event entity.ArticleEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal article event: %w", err)
	}
	return s.publisher.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamArticleAnalysis,
		Values: map[string]interface{}{"payload": string(payload)},
		MaxLen: s.streamMaxLen,
		Approx: true,
	}).Err()
}

func (s *ingestionService) digestEntry(ctx context.Context, item *gofeed.Item, title string) telegram.DigestEntry {
	entry := telegram.DigestEntry{Title: title}
	if s.scorer == nil {
		return entry
	}
	text := strings.TrimSpace(title + ". " + utils.SafeText(item.Description))
	result, err := s.scorer.Analyze(ctx, engine.Request{Text: text})
	if err != nil {
		s.logger.Warn("Failed to score headline", logger.ErrorField(err), logger.StringField("title", title))
		return entry
	}
	entry.Symbol = result.Symbol()
	entry.Label = result.SentimentAnalysis.CombinedSentiment.Label
	entry.Impact = result.MarketImpact.ImpactLevel
	entry.Confidence = result.ConfidenceScore
	return entry
}

func (s *ingestionService) sendDigest(result *PollResult) {
	if !s.cfg.Digest || s.notifier == nil {
		return
	}
	for _, msg := range telegram.FormatDigest(result.Entries) {
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send digest", logger.ErrorField(err))
			return
		}
	}
	for _, fr := range result.Feeds {
		if fr.Err == nil {
			continue
		}
		msg := telegram.FormatErrorAlertMessage(s.clock(), "Feed poll failed", fr.Err.Error(), fr.Feed)
		if err := s.notifier.SendMessage(msg); err != nil {
			s.logger.Error("Failed to send feed error alert", logger.ErrorField(err))
			return
		}
	}
}

// itemKey identifies a feed item across feeds and polls.
func itemKey(item *gofeed.Item) string {
	id := strings.TrimSpace(item.Link)
	if id == "" {
		id = item.GUID
	}
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}
