package asset

// DefaultDescriptors is the built-in catalog: Indian indices, NSE large caps,
// US mega caps and the major crypto assets.
func DefaultDescriptors() []Descriptor {
	return []Descriptor{
		{Symbol: "NIFTY-50", DisplayName: "Nifty 50", Type: TypeIndex, Aliases: []string{"nifty 50", "nifty50", "nifty"}},
		{Symbol: "SENSEX", DisplayName: "BSE Sensex", Type: TypeIndex, Aliases: []string{"s&p bse sensex", "bse sensex", "bse"}},
		{Symbol: "BANKNIFTY", DisplayName: "Nifty Bank", Type: TypeIndex, Aliases: []string{"nifty bank", "bank nifty"}},
		{Symbol: "SPX", DisplayName: "S&P 500", Type: TypeIndex, Aliases: []string{"s&p 500", "s&p500"}},
		{Symbol: "DJI", DisplayName: "Dow Jones Industrial Average", Type: TypeIndex, Aliases: []string{"dow jones"}},

		{Symbol: "RELIANCE", DisplayName: "Reliance Industries", Type: TypeDomesticEquity, Aliases: []string{"reliance industries", "ril"}},
		{Symbol: "TCS", DisplayName: "Tata Consultancy Services", Type: TypeDomesticEquity, Aliases: []string{"tata consultancy services"}},
		{Symbol: "INFY", DisplayName: "Infosys", Type: TypeDomesticEquity, Aliases: []string{"infosys"}},
		{Symbol: "HDFCBANK", DisplayName: "HDFC Bank", Type: TypeDomesticEquity, Aliases: []string{"hdfc bank"}},
		{Symbol: "ICICIBANK", DisplayName: "ICICI Bank", Type: TypeDomesticEquity, Aliases: []string{"icici bank"}},
		{Symbol: "SBIN", DisplayName: "State Bank of India", Type: TypeDomesticEquity, Aliases: []string{"state bank of india", "sbi"}},
		{Symbol: "ITC", DisplayName: "ITC", Type: TypeDomesticEquity},
		{Symbol: "BHARTIARTL", DisplayName: "Bharti Airtel", Type: TypeDomesticEquity, Aliases: []string{"bharti airtel", "airtel"}},
		{Symbol: "LT", DisplayName: "Larsen & Toubro", Type: TypeDomesticEquity, Aliases: []string{"larsen & toubro", "larsen and toubro", "l&t"}},
		{Symbol: "WIPRO", DisplayName: "Wipro", Type: TypeDomesticEquity},
		{Symbol: "HINDUNILVR", DisplayName: "Hindustan Unilever", Type: TypeDomesticEquity, Aliases: []string{"hindustan unilever", "hul"}},
		{Symbol: "ADANIENT", DisplayName: "Adani Enterprises", Type: TypeDomesticEquity, Aliases: []string{"adani enterprises", "adani"}},
		{Symbol: "TATAMOTORS", DisplayName: "Tata Motors", Type: TypeDomesticEquity, Aliases: []string{"tata motors"}},
		{Symbol: "MARUTI", DisplayName: "Maruti Suzuki", Type: TypeDomesticEquity, Aliases: []string{"maruti suzuki"}},
		{Symbol: "BAJFINANCE", DisplayName: "Bajaj Finance", Type: TypeDomesticEquity, Aliases: []string{"bajaj finance"}},
		{Symbol: "HCLTECH", DisplayName: "HCL Technologies", Type: TypeDomesticEquity, Aliases: []string{"hcl technologies", "hcl tech"}},

		{Symbol: "AAPL", DisplayName: "Apple Inc", Type: TypeGlobalEquity, Aliases: []string{"apple"}},
		{Symbol: "TSLA", DisplayName: "Tesla Inc", Type: TypeGlobalEquity, Aliases: []string{"tesla"}},
		{Symbol: "MSFT", DisplayName: "Microsoft", Type: TypeGlobalEquity, Aliases: []string{"microsoft"}},
		{Symbol: "GOOGL", DisplayName: "Alphabet", Type: TypeGlobalEquity, Aliases: []string{"alphabet", "google"}},
		{Symbol: "AMZN", DisplayName: "Amazon", Type: TypeGlobalEquity, Aliases: []string{"amazon"}},
		{Symbol: "META", DisplayName: "Meta Platforms", Type: TypeGlobalEquity, Aliases: []string{"meta platforms", "facebook"}},
		{Symbol: "NVDA", DisplayName: "Nvidia", Type: TypeGlobalEquity, Aliases: []string{"nvidia"}},
		{Symbol: "NFLX", DisplayName: "Netflix", Type: TypeGlobalEquity, Aliases: []string{"netflix"}},
		{Symbol: "JPM", DisplayName: "JPMorgan Chase", Type: TypeGlobalEquity, Aliases: []string{"jpmorgan chase", "jpmorgan", "jp morgan"}},
		{Symbol: "BAC", DisplayName: "Bank of America", Type: TypeGlobalEquity, Aliases: []string{"bank of america"}},
		{Symbol: "GS", DisplayName: "Goldman Sachs", Type: TypeGlobalEquity, Aliases: []string{"goldman sachs"}},

		{Symbol: "BTC-USD", DisplayName: "Bitcoin", Type: TypeCrypto, Aliases: []string{"bitcoin", "btc", "cryptocurrency", "crypto"}},
		{Symbol: "ETH-USD", DisplayName: "Ethereum", Type: TypeCrypto, Aliases: []string{"ethereum", "ether", "eth"}},
		{Symbol: "SOL-USD", DisplayName: "Solana", Type: TypeCrypto, Aliases: []string{"solana"}},
	}
}

// DefaultCatalog builds the built-in catalog.
func DefaultCatalog() (*Catalog, error) {
	return NewCatalog(DefaultDescriptors())
}
