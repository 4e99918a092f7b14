/*
Package grammario loads weighted context-free grammars from disk: the bar
format (one rule per line, lexed with lexmachine) and the discodop format
(tab-separated rules plus an optional lexicon), per spec.md §6 and
SPEC_FULL.md §4.10.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package grammario

import (
	"errors"
	"math"

	"github.com/wazizlab/parseforest/grammar"
)

// Format selects a grammar file's on-disk encoding.
type Format int

const (
	// Bar is the "LHS ||| RHS... ||| weight" one-rule-per-line format.
	Bar Format = iota
	// Discodop is disco-dop's tab-separated .rules/.lex pair.
	Discodop
)

// ErrUnknownFormat is returned by ParseFormat for an unrecognised name.
var ErrUnknownFormat = errors.New("grammario: unknown grammar format")

// ParseFormat maps a CLI --grammarfmt value onto a Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "bar":
		return Bar, nil
	case "discodop":
		return Discodop, nil
	default:
		return Bar, ErrUnknownFormat
	}
}

// WeightTransform maps a raw on-disk weight to a log-semiring LogProb.
type WeightTransform func(float64) float64

// Identity leaves raw weights untouched (the file already stores log-probs).
func Identity(w float64) float64 { return w }

// Log applies math.Log, for files that store raw (linear) probabilities
// (spec.md §6's --log flag).
func Log(w float64) float64 { return math.Log(w) }

// LoadGrammar reads path (or, for Discodop, the <path>.rules/<path>.lex
// pair) and returns the resulting grammar with transform applied to every
// raw weight.
func LoadGrammar(path string, format Format, transform WeightTransform) (*grammar.Grammar, error) {
	switch format {
	case Discodop:
		return loadDiscodop(path, transform)
	default:
		return loadBar(path, transform)
	}
}
