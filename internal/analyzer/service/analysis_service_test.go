package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"golang-market-sentiment/internal/analysis/asset"
	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/impact"
	"golang-market-sentiment/internal/analysis/lexicon"
	"golang-market-sentiment/internal/analysis/sentiment"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

const relianceText = "Reliance Industries shares surged 8% today after record profits."

type analysisFixture struct {
	svc      AnalysisService
	analyzer *countingAnalyzer
	articles *fakeArticleRepo
	assets   *fakeAssetRepo
	analyses *fakeAnalysisRepo
	cache    *fakeCache
}

func newAnalysisFixture(t *testing.T) *analysisFixture {
	t.Helper()
	f := &analysisFixture{
		articles: &fakeArticleRepo{articles: map[string]*dto.Article{}},
		assets:   &fakeAssetRepo{},
		cache:    newFakeCache(),
	}
	f.analyses = &fakeAnalysisRepo{assetsOf: f.assets}

	lex, err := lexicon.Default()
	require.NoError(t, err)
	catalog, err := asset.DefaultCatalog()
	require.NoError(t, err)
	eng, err := engine.New(lex, catalog, engine.DefaultPolicy(),
		engine.WithSinks(NewPersistenceSink(f.assets, f.analyses, logger.NewNop())),
		engine.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)

	f.analyzer = &countingAnalyzer{inner: eng}
	f.svc = NewAnalysisService(f.analyzer, f.articles, f.cache, f.assets, f.analyses, 2000, logger.NewNop())
	return f
}

func TestAnalysisService_AnalyzeText(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	resp, err := f.svc.AnalyzeText(ctx, &dto.AnalyzeRequest{Text: relianceText, SourceURL: "https://example.com/ril"})
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", resp.Symbol())
	assert.Equal(t, sentiment.Positive, resp.SentimentAnalysis.CombinedSentiment.Label)
	assert.Equal(t, impact.Immediate, resp.MarketImpact.TimeHorizon)
	assert.Equal(t, fixedNow, resp.AnalysisTimestamp)

	require.Len(t, f.analyses.rows, 1)
	row := f.analyses.rows[0]
	assert.Equal(t, resp.ID, row.AnalysisID)
	assert.Equal(t, "https://example.com/ril", row.SourceURL)
	assert.Equal(t, relianceText, row.ExtractedText)
	assert.Equal(t, "POSITIVE", row.CombinedSentiment)
	assert.Nil(t, row.ImageSentiment)
	assert.NotEmpty(t, row.RawResult)

	require.Len(t, f.assets.assets, 1)
	assert.Equal(t, "RELIANCE", f.assets.assets[0].Symbol)
	assert.Equal(t, "domestic_equity", f.assets.assets[0].AssetType)

	again, err := f.svc.AnalyzeText(ctx, &dto.AnalyzeRequest{Text: relianceText, SourceURL: "https://example.com/ril"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, again.ID)
	assert.Equal(t, 1, f.analyzer.calls, "second call is served from the cache")
	assert.Len(t, f.analyses.rows, 1)
}

func TestAnalysisService_AnalyzeTextWithImage(t *testing.T) {
	f := newAnalysisFixture(t)

	resp, err := f.svc.AnalyzeText(context.Background(), &dto.AnalyzeRequest{
		Text:           relianceText,
		ImageSentiment: &sentiment.Score{Label: sentiment.Negative, Score: 0.9},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.SentimentAnalysis.ImageSentiment)

	require.Len(t, f.analyses.rows, 1)
	require.NotNil(t, f.analyses.rows[0].ImageSentiment)
	assert.Equal(t, "NEGATIVE", *f.analyses.rows[0].ImageSentiment)
}

func TestAnalysisService_AnalyzeTextInvalid(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *dto.AnalyzeRequest
	}{
		{name: "invalid utf-8", req: &dto.AnalyzeRequest{Text: "Nifty \xff\xfe rallied"}},
		{name: "too long", req: &dto.AnalyzeRequest{Text: strings.Repeat("a", 2001)}},
		{name: "bad image label", req: &dto.AnalyzeRequest{Text: "Nifty rallied", ImageSentiment: &sentiment.Score{Label: "BULLISH", Score: 0.5}}},
		{name: "bad image score", req: &dto.AnalyzeRequest{Text: "Nifty rallied", ImageSentiment: &sentiment.Score{Label: sentiment.Positive, Score: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.AnalyzeText(ctx, tt.req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
	assert.Empty(t, f.analyses.rows)
}

func TestAnalysisService_AnalyzeURL(t *testing.T) {
	f := newAnalysisFixture(t)
	longText := relianceText + " " + strings.Repeat("Analysts expect steady demand across retail and telecom businesses. ", 12)
	f.articles.articles["https://example.com/ril"] = &dto.Article{
		URL:   "https://example.com/ril",
		Title: "RIL hits a high",
		Text:  longText,
	}
	f.articles.articles["https://example.com/untitled"] = &dto.Article{
		URL:  "https://example.com/untitled",
		Text: "Sensex fell sharply.",
	}

	resp, err := f.svc.AnalyzeURL(context.Background(), &dto.AnalyzeURLRequest{URL: " https://example.com/ril "})
	require.NoError(t, err)

	assert.Equal(t, "RIL hits a high", resp.ArticleTitle)
	assert.Equal(t, "https://example.com/ril", resp.SourceURL)
	require.NotNil(t, resp.TextPreview)
	assert.Equal(t, 500, utf8.RuneCountInString(*resp.TextPreview))
	assert.True(t, strings.HasPrefix(longText, *resp.TextPreview))
	assert.Equal(t, utf8.RuneCountInString(longText), resp.FullTextLength)
	assert.Equal(t, "RELIANCE", resp.Symbol())

	require.Len(t, f.analyses.rows, 1)
	assert.Equal(t, "RIL hits a high", f.analyses.rows[0].ArticleTitle)
	assert.Equal(t, "https://example.com/ril", f.analyses.rows[0].SourceURL)

	resp, err = f.svc.AnalyzeURL(context.Background(), &dto.AnalyzeURLRequest{URL: "https://example.com/untitled", Title: "From the feed"})
	require.NoError(t, err)
	assert.Equal(t, "From the feed", resp.ArticleTitle)
	assert.Equal(t, "Sensex fell sharply.", *resp.TextPreview)
}

func TestAnalysisService_AnalyzeURLErrors(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	_, err := f.svc.AnalyzeURL(ctx, &dto.AnalyzeURLRequest{URL: "  "})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = f.svc.AnalyzeURL(ctx, &dto.AnalyzeURLRequest{URL: "https://example.com/missing"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.ErrorIs(t, err, repository.ErrArticleUnavailable)

	f.articles.err = errors.New("dns failure")
	_, err = f.svc.AnalyzeURL(ctx, &dto.AnalyzeURLRequest{URL: "https://example.com/any"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidRequest)
}

func TestAnalysisService_ListAnalysesByAsset(t *testing.T) {
	f := newAnalysisFixture(t)
	ctx := context.Background()

	_, err := f.svc.ListAnalysesByAsset(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stored, err := f.assets.GetOrCreate(ctx, &entity.Asset{Symbol: "TCS", Name: "Tata Consultancy Services", AssetType: "domestic_equity"})
	require.NoError(t, err)
	for i, label := range []string{"NEGATIVE", "POSITIVE"} {
		require.NoError(t, f.analyses.Create(ctx, &entity.SentimentAnalysis{
			AnalysisID:        label,
			AssetID:           stored.ID,
			CombinedSentiment: label,
			CreatedAt:         fixedNow.Add(time.Duration(i) * time.Hour),
		}))
	}

	resp, err := f.svc.ListAnalysesByAsset(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, dto.AssetRef{ID: stored.ID, Symbol: "TCS", Name: "Tata Consultancy Services"}, resp.Asset)
	require.Len(t, resp.Analyses, 2)
	assert.Equal(t, "POSITIVE", resp.Analyses[0].CombinedSentiment)
	assert.Equal(t, "NEGATIVE", resp.Analyses[1].CombinedSentiment)
}

func TestPersistenceSink_UnknownAsset(t *testing.T) {
	assets := &fakeAssetRepo{}
	analyses := &fakeAnalysisRepo{}
	sink := NewPersistenceSink(assets, analyses, logger.NewNop())

	result := &engine.AnalysisResult{
		ID:                "8d0f7a52-7c1e-5c55-9f43-2f3c1a5d2e10",
		AssetName:         "Unknown",
		AssetType:         engine.UnknownAsset,
		KeyInsights:       []string{"Markets were closed."},
		AnalysisTimestamp: fixedNow,
		Text:              "Markets were closed.",
	}
	ctx := WithSource(context.Background(), Source{URL: "https://example.com/a", Title: "Closed"})
	require.NoError(t, sink.Consume(ctx, result))

	require.Len(t, assets.assets, 1)
	assert.Equal(t, entity.GeneralMarketSymbol, assets.assets[0].Symbol)
	require.Len(t, analyses.rows, 1)
	assert.Equal(t, "Closed", analyses.rows[0].ArticleTitle)
	assert.Equal(t, fixedNow, analyses.rows[0].CreatedAt)
	assert.Equal(t, []string{"Markets were closed."}, []string(analyses.rows[0].KeyInsights))

	assets.err = errors.New("db down")
	assert.Error(t, sink.Consume(context.Background(), result))
}

func TestNotificationSink(t *testing.T) {
	notifier := newFakeNotifier()
	sink := NewNotificationSink(notifier, logger.NewNop())
	symbol := "SENSEX"

	moderate := &engine.AnalysisResult{
		ID:            "a",
		DetectedAsset: &symbol,
		MarketImpact:  impact.MarketImpact{ImpactLevel: impact.ModerateNegative},
	}
	require.NoError(t, sink.Consume(context.Background(), moderate))

	high := &engine.AnalysisResult{
		ID:            "b",
		DetectedAsset: &symbol,
		AssetName:     "BSE Sensex",
		MarketImpact:  impact.MarketImpact{ImpactLevel: impact.HighNegative, TimeHorizon: impact.Immediate},
	}
	ctx := WithSource(context.Background(), Source{URL: "https://example.com/crash"})
	require.NoError(t, sink.Consume(ctx, high))

	select {
	case msg := <-notifier.messages:
		assert.Contains(t, msg, "SENSEX")
		assert.Contains(t, msg, "HIGH")
		assert.Contains(t, msg, "example.com/crash")
	case <-time.After(2 * time.Second):
		t.Fatal("expected an alert for a high-impact analysis")
	}

	select {
	case msg := <-notifier.messages:
		t.Fatalf("unexpected second alert: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSourceFromContext(t *testing.T) {
	assert.Equal(t, Source{}, SourceFromContext(context.Background()))
	ctx := WithSource(context.Background(), Source{URL: "u", Title: "t"})
	assert.Equal(t, Source{URL: "u", Title: "t"}, SourceFromContext(ctx))
}
