package lexicon

import (
	"fmt"

	"github.com/spf13/viper"
)

type lexiconFile struct {
	Entries []Entry `mapstructure:"entries"`
}

// LoadFile builds a Lexicon from a YAML (or JSON/TOML, by extension) file of the form
//
//	entries:
//	  - term: surge
//	    weight: 0.9
//	    category: positive
//
// The file replaces the built-in lexicon entirely.
func LoadFile(path string) (*Lexicon, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var f lexiconFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon file %s: %w", path, err)
	}

	lex, err := New(f.Entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build lexicon from %s: %w", path, err)
	}
	return lex, nil
}
