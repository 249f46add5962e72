package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// SentimentAnalysis is a persisted analysis result.
type SentimentAnalysis struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	AnalysisID        string         `gorm:"type:uuid;unique;not null" json:"analysis_id"`
	AssetID           uint           `gorm:"not null" json:"asset_id"`
	Asset             *Asset         `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	SourceURL         string         `gorm:"size:500" json:"source_url"`
	ArticleTitle      string         `gorm:"size:500" json:"article_title"`
	ExtractedText     string         `json:"extracted_text"`
	ImageSentiment    *string        `gorm:"size:20" json:"image_sentiment"`
	TextSentiment     string         `gorm:"size:20;not null" json:"text_sentiment"`
	CombinedSentiment string         `gorm:"size:20;not null" json:"combined_sentiment"`
	CombinedScore     float64        `json:"combined_score"`
	Confidence        float64        `json:"confidence"`
	ConfidenceScore   float64        `json:"confidence_score"`
	ImpactLevel       string         `gorm:"size:30" json:"impact_level"`
	TimeHorizon       string         `gorm:"size:20" json:"time_horizon"`
	Method            string         `gorm:"size:20" json:"method"`
	KeyInsights       pq.StringArray `gorm:"type:text[]" json:"key_insights"`
	RawResult         datatypes.JSON `json:"raw_result"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SentimentAnalysis model.
func (SentimentAnalysis) TableName() string {
	return "sentiment_analyses"
}
