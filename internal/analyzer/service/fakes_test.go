package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/entity"

	"github.com/redis/go-redis/v9"
)

type countingAnalyzer struct {
	inner Analyzer
	mu    sync.Mutex
	calls int
}

func (c *countingAnalyzer) Analyze(ctx context.Context, req engine.Request) (*engine.AnalysisResult, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Analyze(ctx, req)
}

type fakeArticleRepo struct {
	articles map[string]*dto.Article
	err      error
}

func (f *fakeArticleRepo) Fetch(_ context.Context, rawURL string) (*dto.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.articles[rawURL]
	if !ok {
		return nil, repository.ErrArticleUnavailable
	}
	out := *a
	return &out, nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	return nil
}

type fakeAssetRepo struct {
	mu     sync.Mutex
	assets []entity.Asset
	err    error
}

func (f *fakeAssetRepo) GetOrCreate(_ context.Context, asset *entity.Asset) (*entity.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.assets {
		if a.Symbol == asset.Symbol {
			out := a
			return &out, nil
		}
	}
	stored := *asset
	stored.ID = uint(len(f.assets) + 1)
	f.assets = append(f.assets, stored)
	return &stored, nil
}

func (f *fakeAssetRepo) FindAll(_ context.Context) ([]entity.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]entity.Asset(nil), f.assets...), nil
}

func (f *fakeAssetRepo) FindByID(_ context.Context, id uint) (*entity.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assets {
		if a.ID == id {
			out := a
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAssetRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.assets)), f.err
}

type fakeAnalysisRepo struct {
	mu       sync.Mutex
	rows     []entity.SentimentAnalysis
	assetsOf *fakeAssetRepo
}

func (f *fakeAnalysisRepo) Create(_ context.Context, analysis *entity.SentimentAnalysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.AnalysisID == analysis.AnalysisID {
			return nil
		}
	}
	analysis.ID = uint(len(f.rows) + 1)
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, *analysis)
	return nil
}

func (f *fakeAnalysisRepo) sorted(keep func(entity.SentimentAnalysis) bool) []entity.SentimentAnalysis {
	var out []entity.SentimentAnalysis
	for _, r := range f.rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeAnalysisRepo) FindByAsset(_ context.Context, assetID uint, limit int) ([]entity.SentimentAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sorted(func(r entity.SentimentAnalysis) bool { return r.AssetID == assetID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAnalysisRepo) FindRecent(ctx context.Context, limit int) ([]entity.SentimentAnalysis, error) {
	f.mu.Lock()
	out := f.sorted(func(entity.SentimentAnalysis) bool { return true })
	f.mu.Unlock()
	if len(out) > limit {
		out = out[:limit]
	}
	if f.assetsOf != nil {
		for i := range out {
			if a, err := f.assetsOf.FindByID(ctx, out[i].AssetID); err == nil {
				out[i].Asset = a
			}
		}
	}
	return out, nil
}

func (f *fakeAnalysisRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

type fakePredictionRepo struct {
	mu   sync.Mutex
	rows []entity.MarketPrediction
}

func (f *fakePredictionRepo) Create(_ context.Context, p *entity.MarketPrediction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uint(len(f.rows) + 1)
	p.CreatedAt = time.Date(2025, 3, 14, 10, 0, int(p.ID), 0, time.UTC)
	f.rows = append(f.rows, *p)
	return nil
}

func (f *fakePredictionRepo) FindByAsset(_ context.Context, assetID uint) ([]entity.MarketPrediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.MarketPrediction
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].AssetID == assetID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakePredictionRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

type fakeNotifier struct {
	messages chan string
	err      error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{messages: make(chan string, 10)}
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages <- text
	return f.err
}

type fakeAnalysisService struct {
	mu      sync.Mutex
	urls    []string
	analyze func(url string) (*dto.URLAnalysisResponse, error)
}

func (f *fakeAnalysisService) AnalyzeText(context.Context, *dto.AnalyzeRequest) (*dto.AnalysisResponse, error) {
	return nil, nil
}

func (f *fakeAnalysisService) AnalyzeURL(_ context.Context, req *dto.AnalyzeURLRequest) (*dto.URLAnalysisResponse, error) {
	f.mu.Lock()
	f.urls = append(f.urls, req.URL)
	f.mu.Unlock()
	return f.analyze(req.URL)
}

func (f *fakeAnalysisService) ListAnalysesByAsset(context.Context, uint) (*dto.AssetAnalysesResponse, error) {
	return nil, nil
}

type fakeStream struct {
	read      []redis.XStream
	readErr   error
	pending   []redis.XPendingExt
	claimable []redis.XMessage
	claimed   []string
	acked     []string
}

func (f *fakeStream) XReadGroup(_ context.Context, _ *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	return redis.NewXStreamSliceCmdResult(f.read, f.readErr)
}

func (f *fakeStream) XAck(_ context.Context, _, _ string, ids ...string) *redis.IntCmd {
	f.acked = append(f.acked, ids...)
	return redis.NewIntResult(int64(len(ids)), nil)
}

func (f *fakeStream) XPendingExt(_ context.Context, _ *redis.XPendingExtArgs) *redis.XPendingExtCmd {
	return redis.NewXPendingExtResult(f.pending, nil)
}

func (f *fakeStream) XClaim(_ context.Context, a *redis.XClaimArgs) *redis.XMessageSliceCmd {
	f.claimed = append(f.claimed, a.Messages...)
	var out []redis.XMessage
	for _, m := range f.claimable {
		for _, id := range a.Messages {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return redis.NewXMessageSliceCmdResult(out, nil)
}
