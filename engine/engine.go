/*
Package engine defines the shared intersection-engine interface implemented
by both the Earley (top-down) and Nederhof (bottom-up) engines, plus the
forest-extraction logic they both rely on (spec §4.3–§4.5, §9 "Polymorphism
over engines").

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package engine

import (
	"errors"

	"github.com/wazizlab/parseforest/grammar"
)

// ErrNoParse is returned when the intersection forest is empty (spec §7).
var ErrNoParse = errors.New("engine: no parse")

// ErrUnknownAlgorithm is returned for an unrecognised --intersection value
// (spec §7): fatal at startup.
var ErrUnknownAlgorithm = errors.New("engine: unknown intersection algorithm")

// Engine is implemented by both Earley and Nederhof. A sliced variant is the
// same engine built with a slice-variable store (WithSliceVariables) rather
// than a separate implementation (spec §9).
type Engine interface {
	// Do runs the intersection and returns the resulting forest (itself a
	// grammar.Grammar, rooted at goal). When no parse is found it returns
	// the empty forest together with ErrNoParse, which callers treat as a
	// recoverable no-parse, per spec §7's "recovered, not fatal" policy.
	Do(root, goal grammar.Symbol) (*grammar.Grammar, error)
}
