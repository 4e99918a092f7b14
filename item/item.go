/*
Package item implements the dotted-rule items shared by the Earley and
Nederhof intersection engines (spec §3, §4.3, §4.4).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package item

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/wfsa"
)

// Item is a dotted rule: (rule, start, dot, inner), where inner[i] holds the
// FSA state the dot sat at just before RHS[i] was consumed (inner[0] is
// always start). An item is complete iff len(inner) == len(rule.RHS).
type Item struct {
	Rule  grammar.Rule
	Start wfsa.State
	Dot   wfsa.State
	Inner []wfsa.State
}

// New creates an axiom item for rule at FSA state start: an item with an
// empty inner list and the dot sitting at start (i.e. nothing consumed yet).
// Per spec §4.3, empty-RHS rules are "complete on creation".
func New(rule grammar.Rule, start wfsa.State) Item {
	return Item{Rule: rule, Start: start, Dot: start}
}

// Advance returns a copy of it with the dot moved to `to` and `to` appended
// to inner — the effect of consuming one more RHS symbol.
func (it Item) Advance(to wfsa.State) Item {
	inner := make([]wfsa.State, len(it.Inner)+1)
	copy(inner, it.Inner)
	inner[len(it.Inner)] = it.Dot
	return Item{Rule: it.Rule, Start: it.Start, Dot: to, Inner: inner}
}

// IsComplete reports whether the dot has passed every RHS symbol. An
// empty-RHS item is complete the moment it is created (spec §4.3).
func (it Item) IsComplete() bool {
	if len(it.Rule.RHS) == 0 {
		return true
	}
	return len(it.Inner) == len(it.Rule.RHS)
}

// Next returns the RHS symbol immediately following the dot, and whether
// one exists (false for a complete item).
func (it Item) Next() (grammar.Symbol, bool) {
	pos := len(it.Inner)
	if pos >= len(it.Rule.RHS) {
		return grammar.Symbol{}, false
	}
	return it.Rule.RHS[pos], true
}

// Hash returns a stable string key identifying this item by value. Items
// are not directly comparable in Go (Inner is a slice), so the agenda's
// indices key on this hash rather than on the Item value itself — the same
// technique, and the same library, the teacher's Earley engine uses for its
// completion backlinks (gorgo: lr/earley/earley.go, `structhash.Hash`).
func (it Item) Hash() string {
	type key struct {
		LHS, RHS string
		LogProb  float64
		Start    wfsa.State
		Dot      wfsa.State
		Inner    []wfsa.State
	}
	rhs := ""
	for _, s := range it.Rule.RHS {
		rhs += s.String() + " "
	}
	h, err := structhash.Hash(key{
		LHS:     it.Rule.LHS.String(),
		RHS:     rhs,
		LogProb: it.Rule.LogProb,
		Start:   it.Start,
		Dot:     it.Dot,
		Inner:   it.Inner,
	}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

func (it Item) String() string {
	return fmt.Sprintf("[%s @%d..%d inner=%v]", it.Rule.String(), it.Start, it.Dot, it.Inner)
}
