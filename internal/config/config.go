// Package config loads an optional fixgo.toml supplying default values for
// cmd/fixgo's flags, so a CI pipeline invoking fixgo repeatedly need not
// repeat --lang/--max-len/etc on every call. Grounded on internal/tqw's
// toml.Unmarshal-into-tagged-struct pattern (marshaling.go's
// unmarshalWorldData/unmarshalManifest).
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Defaults holds the subset of cmd/fixgo's flags a config file may supply.
// A zero Defaults changes nothing: every field left unset in the file keeps
// the flag package's own default.
type Defaults struct {
	Lang         string `toml:"lang"`
	MaxLen       *int   `toml:"max_len"`
	MaxNewID     *int   `toml:"max_new_id"`
	VerboseGen   *bool  `toml:"verbose_gen"`
	MemoryLimit  *int64 `toml:"memory_limit"`
	GrammarCache string `toml:"grammar_cache"`
}

// Load reads and parses path as a fixgo.toml defaults file. A missing file is
// not an error: Load returns a zero Defaults so the caller's flag defaults
// stand unmodified.
func Load(path string) (Defaults, error) {
	var d Defaults
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("config: %w", err)
	}
	if _, err := toml.Decode(string(data), &d); err != nil {
		return d, fmt.Errorf("config: %s: %w", path, err)
	}
	return d, nil
}
