package entity

import "time"

// MarketPrediction is a sentiment-driven price projection for an asset.
type MarketPrediction struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	AssetID            uint      `gorm:"not null" json:"asset_id"`
	Asset              *Asset    `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
	CurrentPrice       float64   `gorm:"not null" json:"current_price"`
	PredictedPrice     float64   `gorm:"not null" json:"predicted_price"`
	PriceChangePercent float64   `json:"price_change_percent"`
	SentimentScore     float64   `json:"sentiment_score"`
	PredictionHorizon  int       `json:"prediction_horizon"`
	Confidence         float64   `json:"confidence"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the MarketPrediction model.
func (MarketPrediction) TableName() string {
	return "market_predictions"
}
