package dto

import "time"

// DashboardStats are the table totals.
type DashboardStats struct {
	TotalAssets      int64 `json:"total_assets"`
	TotalAnalyses    int64 `json:"total_analyses"`
	TotalPredictions int64 `json:"total_predictions"`
}

// RecentAnalysis is one entry of the dashboard feed.
type RecentAnalysis struct {
	ID          uint      `json:"id"`
	AssetSymbol string    `json:"asset_symbol"`
	Sentiment   string    `json:"sentiment"`
	ImpactLevel string    `json:"impact_level"`
	Confidence  float64   `json:"confidence"`
	CreatedAt   time.Time `json:"created_at"`
}

// DashboardResponse is the body of GET /dashboard.
type DashboardResponse struct {
	Stats          DashboardStats   `json:"stats"`
	RecentAnalyses []RecentAnalysis `json:"recent_analyses"`
}
