package entity

import "time"

// GeneralMarketSymbol is the asset row analyses are filed under when no
// catalog asset was detected.
const GeneralMarketSymbol = "MARKET-GENERAL"

// Asset is a tracked instrument.
type Asset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Symbol    string    `gorm:"size:20;unique;not null" json:"symbol"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	AssetType string    `gorm:"size:20;not null" json:"asset_type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Asset model.
func (Asset) TableName() string {
	return "assets"
}
