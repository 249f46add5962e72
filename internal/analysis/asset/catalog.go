package asset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Type tags a descriptor with its market segment.
type Type string

const (
	TypeIndex          Type = "index"
	TypeDomesticEquity Type = "domestic_equity"
	TypeGlobalEquity   Type = "global_equity"
	TypeCrypto         Type = "crypto"
)

// Rank is the default priority rank of the segment. Indian indices come first and
// crypto last.
func (t Type) Rank() int {
	switch t {
	case TypeIndex:
		return 1
	case TypeDomesticEquity:
		return 2
	case TypeGlobalEquity:
		return 3
	case TypeCrypto:
		return 4
	default:
		return 0
	}
}

// ErrInvalidDescriptor is returned when a catalog cannot be built.
var ErrInvalidDescriptor = errors.New("invalid asset descriptor")

// Descriptor describes one detectable asset.
type Descriptor struct {
	Symbol       string   `mapstructure:"symbol" json:"symbol"`
	DisplayName  string   `mapstructure:"display_name" json:"display_name"`
	Type         Type     `mapstructure:"type" json:"type"`
	Aliases      []string `mapstructure:"aliases" json:"aliases"`
	PriorityRank int      `mapstructure:"priority_rank" json:"priority_rank"`
}

func (d Descriptor) clone() Descriptor {
	d.Aliases = append([]string(nil), d.Aliases...)
	return d
}

// Catalog is an immutable, priority-ordered list of descriptors.
type Catalog struct {
	descriptors []Descriptor
	patterns    [][]string
	bySymbol    map[string]int
}

// NewCatalog validates descriptors and orders them by priority rank, keeping the
// given order within a rank. A zero PriorityRank defaults to the type's rank.
func NewCatalog(descriptors []Descriptor) (*Catalog, error) {
	if len(descriptors) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidDescriptor)
	}

	ordered := make([]Descriptor, 0, len(descriptors))
	owners := make(map[string]string)
	symbols := make(map[string]struct{})
	for i, d := range descriptors {
		d = d.clone()
		d.Symbol = strings.TrimSpace(d.Symbol)
		if d.Symbol == "" {
			return nil, fmt.Errorf("%w: descriptor %d has no symbol", ErrInvalidDescriptor, i)
		}
		if d.Type.Rank() == 0 {
			return nil, fmt.Errorf("%w: %s has unknown type %q", ErrInvalidDescriptor, d.Symbol, d.Type)
		}
		if d.PriorityRank == 0 {
			d.PriorityRank = d.Type.Rank()
		}
		if d.PriorityRank < 0 {
			return nil, fmt.Errorf("%w: %s has negative priority rank", ErrInvalidDescriptor, d.Symbol)
		}
		if d.DisplayName == "" {
			d.DisplayName = d.Symbol
		}

		if _, dup := symbols[strings.ToUpper(d.Symbol)]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %s", ErrInvalidDescriptor, d.Symbol)
		}
		symbols[strings.ToUpper(d.Symbol)] = struct{}{}

		for _, p := range append([]string{d.Symbol}, d.Aliases...) {
			key := strings.ToLower(strings.TrimSpace(p))
			if key == "" {
				return nil, fmt.Errorf("%w: %s has an empty alias", ErrInvalidDescriptor, d.Symbol)
			}
			if owner, ok := owners[key]; ok && owner != d.Symbol {
				return nil, fmt.Errorf("%w: alias %q claimed by %s and %s", ErrInvalidDescriptor, key, owner, d.Symbol)
			}
			owners[key] = d.Symbol
		}
		ordered = append(ordered, d)
	}

	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].PriorityRank < ordered[j].PriorityRank })

	c := &Catalog{
		descriptors: ordered,
		patterns:    make([][]string, len(ordered)),
		bySymbol:    make(map[string]int, len(ordered)),
	}
	for i, d := range ordered {
		seen := make(map[string]struct{})
		for _, p := range append([]string{d.Symbol}, d.Aliases...) {
			key := strings.ToLower(strings.TrimSpace(p))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			c.patterns[i] = append(c.patterns[i], key)
		}
		c.bySymbol[strings.ToUpper(d.Symbol)] = i
	}
	return c, nil
}

// Descriptors returns a copy of the catalog in priority order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, len(c.descriptors))
	for i, d := range c.descriptors {
		out[i] = d.clone()
	}
	return out
}

// Lookup finds a descriptor by symbol, case-insensitively.
func (c *Catalog) Lookup(symbol string) (Descriptor, bool) {
	i, ok := c.bySymbol[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return Descriptor{}, false
	}
	return c.descriptors[i].clone(), true
}

func (c *Catalog) Len() int {
	return len(c.descriptors)
}

type catalogFile struct {
	Assets []Descriptor `mapstructure:"assets"`
}

// LoadCatalogFile builds a catalog from a YAML file with a top-level "assets" list.
func LoadCatalogFile(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read asset catalog %s: %w", path, err)
	}

	var f catalogFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("failed to decode asset catalog %s: %w", path, err)
	}

	c, err := NewCatalog(f.Assets)
	if err != nil {
		return nil, fmt.Errorf("failed to build asset catalog from %s: %w", path, err)
	}
	return c, nil
}
