/*
Package config loads an optional TOML defaults file (SPEC_FULL.md §4.12),
supplying fallback values for CLI flags the user did not set explicitly.
Grounded on dekarrin-tunaq's use of github.com/BurntSushi/toml for its own
server configuration.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// EnvVar is the environment variable consulted when --config is not given.
const EnvVar = "PARSEFOREST_CONFIG"

// BetaPair is a [a, b] Beta-distribution shape-parameter pair as it appears
// in the TOML file (spec.md §6's -a/-b nargs=2 flags).
type BetaPair struct {
	A float64 `toml:"a"`
	B float64 `toml:"b"`
}

// File is the shape of an optional parseforest config file. Every field is
// optional; zero values mean "not set, fall through to the flag default".
// BetaBefore and BetaAfter are decoded but not applied by the CLI: the mcmc
// command takes its Beta pairs from its -a/-b flags only.
type File struct {
	GrammarFormat string   `toml:"grammarfmt"`
	UnkModel      string   `toml:"unkmodel"`
	DefaultSymbol string   `toml:"default_symbol"`
	Intersection  string   `toml:"intersection"`
	BetaBefore    BetaPair `toml:"beta_before"`
	BetaAfter     BetaPair `toml:"beta_after"`
}

// Load reads path if non-empty, else the file named by $PARSEFOREST_CONFIG
// if set, else returns an empty File (every field its zero value) and no
// error — an absent config is not a failure.
func Load(path string) (File, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return File{}, nil
	}
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return f, nil
}

// StringOr returns flagVal if it was explicitly set (non-empty), else
// fileVal if the config file set it (non-empty), else fallback.
func StringOr(flagVal, fileVal, fallback string) string {
	if flagVal != "" {
		return flagVal
	}
	if fileVal != "" {
		return fileVal
	}
	return fallback
}
