package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultDetector(t *testing.T) *Detector {
	t.Helper()
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	return NewDetector(catalog)
}

func TestDefaultCatalog_PriorityOrder(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	descriptors := catalog.Descriptors()
	require.NotEmpty(t, descriptors)
	for i := 1; i < len(descriptors); i++ {
		assert.LessOrEqual(t, descriptors[i-1].PriorityRank, descriptors[i].PriorityRank)
	}
	assert.Equal(t, TypeIndex, descriptors[0].Type)
	assert.Equal(t, TypeCrypto, descriptors[len(descriptors)-1].Type)
}

func TestDetect(t *testing.T) {
	detector := newDefaultDetector(t)

	tests := []struct {
		name   string
		text   string
		symbol string
		alias  string
	}{
		{name: "index outranks equity", text: "RELIANCE shares rose while the NIFTY-50 hit a record high", symbol: "NIFTY-50", alias: "nifty-50"},
		{name: "longest alias at same offset", text: "Nifty Bank closed higher on Friday", symbol: "BANKNIFTY", alias: "nifty bank"},
		{name: "earliest offset within tier", text: "Sensex and Nifty both gained", symbol: "SENSEX", alias: "sensex"},
		{name: "case insensitive alias", text: "reliance industries posts record profit", symbol: "RELIANCE", alias: "reliance industries"},
		{name: "domestic before global", text: "Apple and Infosys announced a partnership", symbol: "INFY", alias: "infosys"},
		{name: "crypto last", text: "Bitcoin surged past $70,000", symbol: "BTC-USD", alias: "bitcoin"},
		{name: "symbol with punctuation", text: "Analysts like L&T after the order win", symbol: "LT", alias: "l&t"},
		{name: "exchange name is not an index", text: "Reliance Industries shares rose 3% on the NSE after results", symbol: "RELIANCE", alias: "reliance industries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := detector.DetectMatch(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.symbol, m.Descriptor.Symbol)
			assert.Equal(t, tt.alias, m.Alias)

			d, ok := detector.Detect(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.symbol, d.Symbol)
		})
	}
}

func TestDetect_WholeWordOnly(t *testing.T) {
	detector := newDefaultDetector(t)

	_, ok := detector.Detect("The itch to sell was strong, and ethics matter")
	assert.False(t, ok)
}

func TestDetect_NoMatch(t *testing.T) {
	detector := newDefaultDetector(t)

	for _, text := range []string{"", "   ", "Markets were quiet in early trade."} {
		_, ok := detector.Detect(text)
		assert.False(t, ok, text)
	}
}

func TestDetect_ReturnsCopy(t *testing.T) {
	detector := newDefaultDetector(t)

	d, ok := detector.Detect("Nifty gains")
	require.True(t, ok)
	d.Aliases[0] = "mutated"

	again, ok := detector.Detect("Nifty gains")
	require.True(t, ok)
	assert.NotEqual(t, "mutated", again.Aliases[0])
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		descriptors []Descriptor
	}{
		{name: "empty", descriptors: nil},
		{name: "no symbol", descriptors: []Descriptor{{Type: TypeIndex}}},
		{name: "unknown type", descriptors: []Descriptor{{Symbol: "X", Type: "bond"}}},
		{name: "negative rank", descriptors: []Descriptor{{Symbol: "X", Type: TypeIndex, PriorityRank: -1}}},
		{name: "duplicate symbol", descriptors: []Descriptor{{Symbol: "X", Type: TypeIndex}, {Symbol: "x", Type: TypeCrypto}}},
		{name: "empty alias", descriptors: []Descriptor{{Symbol: "X", Type: TypeIndex, Aliases: []string{" "}}}},
		{name: "shared alias", descriptors: []Descriptor{
			{Symbol: "A", Type: TypeIndex, Aliases: []string{"alpha"}},
			{Symbol: "B", Type: TypeCrypto, Aliases: []string{"Alpha"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.descriptors)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDescriptor))
		})
	}
}

func TestNewCatalog_Defaults(t *testing.T) {
	catalog, err := NewCatalog([]Descriptor{
		{Symbol: "ETH-USD", Type: TypeCrypto},
		{Symbol: "NIFTY-50", Type: TypeIndex, PriorityRank: 5},
	})
	require.NoError(t, err)

	descriptors := catalog.Descriptors()
	assert.Equal(t, "ETH-USD", descriptors[0].Symbol)
	assert.Equal(t, 4, descriptors[0].PriorityRank)
	assert.Equal(t, "ETH-USD", descriptors[0].DisplayName)

	d, ok := catalog.Lookup("nifty-50")
	require.True(t, ok)
	assert.Equal(t, 5, d.PriorityRank)
	assert.Equal(t, 2, catalog.Len())
}

func TestLoadCatalogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.yaml")
	content := `assets:
  - symbol: NIFTYIT
    display_name: Nifty IT
    type: index
    aliases: ["nifty it"]
  - symbol: DOGE-USD
    display_name: Dogecoin
    type: crypto
    aliases: ["dogecoin", "doge"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	catalog, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	d, ok := NewDetector(catalog).Detect("Dogecoin fell while Nifty IT rallied")
	require.True(t, ok)
	assert.Equal(t, "NIFTYIT", d.Symbol)
	assert.Equal(t, "Nifty IT", d.DisplayName)
}

func TestLoadCatalogFile_Errors(t *testing.T) {
	_, err := LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets: []\n"), 0o600))
	_, err = LoadCatalogFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDescriptor))
}
