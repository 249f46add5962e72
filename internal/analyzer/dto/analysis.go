package dto

import (
	"time"

	"golang-market-sentiment/internal/analysis/engine"
	"golang-market-sentiment/internal/analysis/sentiment"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Text           string           `json:"text"`
	ImageSentiment *sentiment.Score `json:"image_sentiment,omitempty"`
	ImageURL       string           `json:"image_url,omitempty"`
	SourceURL      string           `json:"source_url,omitempty"`
}

// AnalyzeURLRequest is the body of POST /analyze-url.
type AnalyzeURLRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// AnalysisResponse is a completed analysis.
type AnalysisResponse struct {
	*engine.AnalysisResult
}

// URLAnalysisResponse is a completed analysis of a fetched article.
type URLAnalysisResponse struct {
	*engine.AnalysisResult
	ArticleTitle string  `json:"article_title"`
	SourceURL    string  `json:"source_url"`
	TextPreview  *string `json:"text_preview"`
}

// Article is the readable content of a web page.
type Article struct {
	URL      string
	Title    string
	Text     string
	ImageURL string
}

// AnalysisSummary is one persisted analysis in a history listing.
type AnalysisSummary struct {
	ID                uint      `json:"id"`
	AnalysisID        string    `json:"analysis_id"`
	SourceURL         string    `json:"source_url"`
	ArticleTitle      string    `json:"article_title"`
	ExtractedText     string    `json:"extracted_text"`
	CombinedSentiment string    `json:"combined_sentiment"`
	CombinedScore     float64   `json:"combined_score"`
	Confidence        float64   `json:"confidence"`
	ImpactLevel       string    `json:"impact_level"`
	CreatedAt         time.Time `json:"created_at"`
}

// AssetAnalysesResponse lists the analyses of one asset, newest first.
type AssetAnalysesResponse struct {
	Asset    AssetRef          `json:"asset"`
	Analyses []AnalysisSummary `json:"analyses"`
}
