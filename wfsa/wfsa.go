/*
Package wfsa implements a deterministic weighted finite-state automaton:
states are dense non-negative integers, arcs are labelled with grammar
terminals and carry a log-domain weight, and a subset of states is marked
final with its own weight (spec §3, §4.2).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package wfsa

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/semiring"
)

// State identifies a state of the automaton. State ids are dense [0, N).
type State int

type arc struct {
	to     State
	weight float64
}

// WFSA is a deterministic weighted finite-state automaton over
// grammar.Symbol terminal labels.
type WFSA struct {
	arcs         []map[grammar.Symbol]arc // arcs[from][symbol] = (to, weight)
	initial      *linkedhashset.Set
	final        *linkedhashset.Set
	finalWeights map[State]float64
}

// New creates an empty automaton.
func New() *WFSA {
	return &WFSA{
		arcs:         make([]map[grammar.Symbol]arc, 0, 8),
		initial:      linkedhashset.New(),
		final:        linkedhashset.New(),
		finalWeights: make(map[State]float64),
	}
}

func (w *WFSA) ensure(s State) {
	for State(len(w.arcs)) <= s {
		w.arcs = append(w.arcs, make(map[grammar.Symbol]arc))
	}
}

// NStates returns the number of allocated states.
func (w *WFSA) NStates() int { return len(w.arcs) }

// AddArc adds a labelled, weighted arc, allocating `from` and `to` as
// states if they do not already exist. Determinism (at most one `to` per
// (from, symbol)) is the caller's responsibility; a later AddArc for the
// same (from, symbol) silently overwrites the earlier one, matching the
// Python original's dict-of-dicts semantics (wfsa.py: `self._arcs[sfrom][symbol][sto] = weight`
// — in that representation only the last destination for a given `sto` key
// varies, but for the deterministic automata this project builds there is
// always exactly one `sto` per (from, symbol)).
func (w *WFSA) AddArc(from, to State, symbol grammar.Symbol, weight float64) {
	w.ensure(from)
	w.ensure(to)
	w.arcs[from][symbol] = arc{to: to, weight: weight}
}

// MakeInitial marks a state as an initial state.
func (w *WFSA) MakeInitial(s State) {
	w.ensure(s)
	w.initial.Add(s)
}

// MakeFinal marks a state as final, with the given final weight (pass
// semiring.One for an unweighted final state).
func (w *WFSA) MakeFinal(s State, weight float64) {
	w.ensure(s)
	w.final.Add(s)
	w.finalWeights[s] = weight
}

// DestinationAndWeight looks up the unique arc leaving `from` labelled
// `symbol`. The second return value is false if no such arc exists.
func (w *WFSA) DestinationAndWeight(from State, symbol grammar.Symbol) (State, float64, bool) {
	if int(from) < 0 || int(from) >= len(w.arcs) {
		return 0, 0, false
	}
	a, ok := w.arcs[from][symbol]
	if !ok {
		return 0, 0, false
	}
	return a.to, a.weight, true
}

// InitialStates returns the set of initial states, in the order they were
// declared.
func (w *WFSA) InitialStates() []State {
	vs := w.initial.Values()
	out := make([]State, len(vs))
	for i, v := range vs {
		out[i] = v.(State)
	}
	return out
}

// FinalStates returns the set of final states, in the order they were
// declared.
func (w *WFSA) FinalStates() []State {
	vs := w.final.Values()
	out := make([]State, len(vs))
	for i, v := range vs {
		out[i] = v.(State)
	}
	return out
}

// IsInitial reports whether s is an initial state.
func (w *WFSA) IsInitial(s State) bool { return w.initial.Contains(s) }

// IsFinal reports whether s is a final state.
func (w *WFSA) IsFinal(s State) bool { return w.final.Contains(s) }

// FinalWeight returns the weight associated with a final state. It panics
// (wrapping grammar.ErrInvalidState) if s is not final, matching the
// "invalid-state" failure mode of spec §4.2.
func (w *WFSA) FinalWeight(s State) float64 {
	wt, ok := w.finalWeights[s]
	if !ok {
		panic(fmt.Errorf("%w: state %d is not final", grammar.ErrInvalidState, s))
	}
	return wt
}

// MakeLinear builds the canonical linear wFSA for a token sequence: a chain
// of len(tokens)+1 states, state 0 initial, state len(tokens) final with
// semiring.One weight (spec §4.2).
func MakeLinear(tokens []string) *WFSA {
	w := New()
	for i, tok := range tokens {
		w.AddArc(State(i), State(i+1), grammar.Terminal(tok), semiring.One)
	}
	w.MakeInitial(0)
	w.MakeFinal(State(len(tokens)), semiring.One)
	return w
}
