package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analyzer/dto"
	"golang-market-sentiment/internal/analyzer/repository"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"
)

const textPreviewRunes = 500

// Analyzer runs one analysis. *engine.Engine implements it.
type Analyzer interface {
	Analyze(ctx context.Context, req engine.Request) (*engine.AnalysisResult, error)
}

// AnalysisService defines the interface for analyzing text and articles.
type AnalysisService interface {
	AnalyzeText(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalysisResponse, error)
	AnalyzeURL(ctx context.Context, req *dto.AnalyzeURLRequest) (*dto.URLAnalysisResponse, error)
	ListAnalysesByAsset(ctx context.Context, assetID uint) (*dto.AssetAnalysesResponse, error)
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	analyzer Analyzer,
	articleRepo repository.ArticleRepository,
	cacheRepo repository.CacheRepository,
	assetRepo repository.AssetRepository,
	analysisRepo repository.SentimentAnalysisRepository,
	maxTextLength int,
	log *logger.Logger,
) AnalysisService {
	return &analysisService{
		analyzer:      analyzer,
		articleRepo:   articleRepo,
		cacheRepo:     cacheRepo,
		assetRepo:     assetRepo,
		analysisRepo:  analysisRepo,
		maxTextLength: maxTextLength,
		logger:        log,
	}
}

type analysisService struct {
	analyzer      Analyzer
	articleRepo   repository.ArticleRepository
	cacheRepo     repository.CacheRepository
	assetRepo     repository.AssetRepository
	analysisRepo  repository.SentimentAnalysisRepository
	maxTextLength int
	logger        *logger.Logger
}

// AnalyzeText analyzes caller supplied text with an optional image sentiment.
func (s *analysisService) AnalyzeText(ctx context.Context, req *dto.AnalyzeRequest) (*dto.AnalysisResponse, error) {
	if err := s.checkLength(req.Text); err != nil {
		return nil, err
	}

	image := ""
	if req.ImageSentiment != nil {
		image = fmt.Sprintf("%s:%g", req.ImageSentiment.Label, req.ImageSentiment.Score)
	}
	key := repository.CacheKey("text", req.Text, image, req.ImageURL, req.SourceURL)

	var cached dto.AnalysisResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	ctx = WithSource(ctx, Source{URL: req.SourceURL})
	result, err := s.analyze(ctx, engine.Request{
		Text:           req.Text,
		ImageSentiment: req.ImageSentiment,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalysisResponse{AnalysisResult: result}
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// AnalyzeURL fetches an article and analyzes its text and lead image.
func (s *analysisService) AnalyzeURL(ctx context.Context, req *dto.AnalyzeURLRequest) (*dto.URLAnalysisResponse, error) {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}
	key := repository.CacheKey("url", rawURL)

	var cached dto.URLAnalysisResponse
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	article, err := s.articleRepo.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, repository.ErrArticleUnavailable) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	if err := s.checkLength(article.Text); err != nil {
		article.Text = utils.Truncate(article.Text, s.maxTextLength)
	}

	title := article.Title
	if title == "" {
		title = req.Title
	}

	ctx = WithSource(ctx, Source{URL: rawURL, Title: title})
	result, err := s.analyze(ctx, engine.Request{Text: article.Text, ImageURL: article.ImageURL})
	if err != nil {
		return nil, err
	}

	resp := &dto.URLAnalysisResponse{
		AnalysisResult: result,
		ArticleTitle:   title,
		SourceURL:      rawURL,
	}
	if article.Text != "" {
		preview := utils.Truncate(article.Text, textPreviewRunes)
		resp.TextPreview = &preview
	}

	s.logger.InfoContext(ctx, "Article analyzed",
		logger.StringField("url", rawURL),
		logger.StringField("asset", result.AssetName),
		logger.StringField("impact", string(result.MarketImpact.ImpactLevel)),
	)
	s.cacheSet(ctx, key, resp)
	return resp, nil
}

// ListAnalysesByAsset returns the stored analyses of an asset, newest first.
func (s *analysisService) ListAnalysesByAsset(ctx context.Context, assetID uint) (*dto.AssetAnalysesResponse, error) {
	asset, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	analyses, err := s.analysisRepo.FindByAsset(ctx, assetID, 0)
	if err != nil {
		s.logger.Error("Failed to list analyses", logger.ErrorField(err), logger.Field("asset_id", assetID))
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	resp := &dto.AssetAnalysesResponse{
		Asset:    dto.AssetRef{ID: asset.ID, Symbol: asset.Symbol, Name: asset.Name},
		Analyses: make([]dto.AnalysisSummary, 0, len(analyses)),
	}
	for _, a := range analyses {
		resp.Analyses = append(resp.Analyses, dto.AnalysisSummary{
			ID:                a.ID,
			AnalysisID:        a.AnalysisID,
			SourceURL:         a.SourceURL,
			ArticleTitle:      a.ArticleTitle,
			ExtractedText:     a.ExtractedText,
			CombinedSentiment: a.CombinedSentiment,
			CombinedScore:     a.CombinedScore,
			Confidence:        a.ConfidenceScore,
			ImpactLevel:       a.ImpactLevel,
			CreatedAt:         a.CreatedAt,
		})
	}
	return resp, nil
}

func (s *analysisService) analyze(ctx context.Context, req engine.Request) (*engine.AnalysisResult, error) {
	result, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidText) || errors.Is(err, engine.ErrInvalidImageSentiment) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
		return nil, fmt.Errorf("failed to analyze: %w", err)
	}
	return result, nil
}

func (s *analysisService) checkLength(text string) error {
	if s.maxTextLength > 0 && utf8.RuneCountInString(text) > s.maxTextLength {
		return fmt.Errorf("%w: text exceeds %d characters", ErrInvalidRequest, s.maxTextLength)
	}
	return nil
}

func (s *analysisService) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cacheRepo == nil {
		return false
	}
	found, err := s.cacheRepo.Get(ctx, key, dest)
	if err != nil {
		s.logger.Warn("Failed to read analysis cache", logger.ErrorField(err))
		return false
	}
	return found
}

func (s *analysisService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Set(ctx, key, value); err != nil {
		s.logger.Warn("Failed to write analysis cache", logger.ErrorField(err))
	}
}
