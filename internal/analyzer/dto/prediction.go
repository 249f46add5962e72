package dto

import "time"

// PredictRequest is the body of POST /predict.
type PredictRequest struct {
	AssetID        uint    `json:"asset_id"`
	CurrentPrice   float64 `json:"current_price"`
	SentimentScore float64 `json:"sentiment_score"`
	HorizonHours   int     `json:"horizon_hours"`
}

// PredictionResponse is a stored prediction.
type PredictionResponse struct {
	ID                 uint      `json:"prediction_id"`
	CurrentPrice       float64   `json:"current_price"`
	PredictedPrice     float64   `json:"predicted_price"`
	PriceChangePercent float64   `json:"price_change_percent"`
	SentimentScore     float64   `json:"sentiment_score"`
	HorizonHours       int       `json:"horizon_hours"`
	Confidence         float64   `json:"confidence"`
	CreatedAt          time.Time `json:"created_at"`
}

// AssetPredictionsResponse lists the predictions of one asset, newest first.
type AssetPredictionsResponse struct {
	Asset       AssetRef             `json:"asset"`
	Predictions []PredictionResponse `json:"predictions"`
}
