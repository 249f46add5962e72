package dto

// AssetRef identifies an asset inside nested responses.
type AssetRef struct {
	ID     uint   `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// AssetResponse is a tracked asset.
type AssetResponse struct {
	ID        uint   `json:"id"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
}

// AssetListResponse is the body of GET /assets.
type AssetListResponse struct {
	Assets []AssetResponse `json:"assets"`
}

// CatalogEntry is one detectable asset of the catalog.
type CatalogEntry struct {
	Symbol       string   `json:"symbol"`
	DisplayName  string   `json:"display_name"`
	AssetType    string   `json:"asset_type"`
	Aliases      []string `json:"aliases"`
	PriorityRank int      `json:"priority_rank"`
}

// CatalogResponse is the body of GET /catalog.
type CatalogResponse struct {
	Assets []CatalogEntry `json:"assets"`
}
