/*
Package mcmc implements the slice-sampling MCMC driver of spec §4.9: repeated
sliced-forest construction and ancestral sampling, with the slice-variable
store's conditions and Beta parameters carried forward between iterations.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package mcmc

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wazizlab/parseforest/engine"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/sample"
	"github.com/wazizlab/parseforest/slicevar"
	"github.com/wazizlab/parseforest/topsort"
)

func tracer() tracing.Trace {
	return tracing.Select("parseforest.mcmc")
}

// ErrNoDerivationAfterRetries guards against a malformed grammar/FSA pair
// where the slice is redrawn indefinitely without ever admitting a
// derivation (e.g. goal genuinely unreachable). Spec §4.9 expects this to
// be rare in practice: the slice only shrinks the forest, it never removes
// the previously sampled derivation's rules entirely, since their
// thresholds are drawn below that derivation's own log-probs once it has
// been sampled once.
var ErrNoDerivationAfterRetries = errors.New("mcmc: no derivation admitted after retry limit")

// maxRetriesPerIteration bounds the inner "redraw the slice, rebuild the
// forest" loop for a single MCMC step, so a pathological input fails loudly
// instead of spinning forever.
const maxRetriesPerIteration = 10000

// EngineFactory builds a fresh, one-shot intersection engine bound to the
// given slice-variable store. Callers pass a closure over their grammar and
// wFSA, e.g.:
//
//	func(store *slicevar.Store) engine.Engine {
//	    return earley.New(g, wf, earley.WithSliceVariables(store))
//	}
type EngineFactory func(store *slicevar.Store) engine.Engine

// BetaParams is a pair of Beta(a, b) shape parameters (spec §4.9 switches
// between a "before first derivation" pair and an "after" pair).
type BetaParams struct {
	A, B float64
}

// Config holds the driver's tunable parameters (spec §4.9, §6).
type Config struct {
	Root, Goal grammar.Symbol

	Before BetaParams
	After  BetaParams

	BurnIn     int
	NumSamples int
	// MaxIter bounds total iterations (burn-in and recorded alike), per
	// spec §4.9's "stop when len(samples) >= n_samples or iterations >=
	// max_iter". 0 means unbounded (NumSamples is the only cap).
	MaxIter int
}

// Driver runs the slice-sampling MCMC chain described in spec §4.9.
type Driver struct {
	newEngine EngineFactory
	cfg       Config
	store     *slicevar.Store
}

// New creates a Driver. newEngine is called once per attempt (an iteration
// retries while the sliced forest is empty) to build a fresh sliced engine
// sharing the returned Driver's slice-variable store.
func New(newEngine EngineFactory, cfg Config) *Driver {
	return &Driver{
		newEngine: newEngine,
		cfg:       cfg,
		store:     slicevar.NewStore(cfg.Before.A, cfg.Before.B),
	}
}

// Derivation is one accepted sample: the multiset of grammar rules visited,
// in traversal order, exactly as package sample.Sample returns them.
type Derivation []grammar.Rule

// Run executes the chain until NumSamples recorded derivations have been
// collected or MaxIter total iterations (burn-in included) is reached,
// whichever comes first (spec §4.9). The first BurnIn iterations are
// discarded.
func (d *Driver) Run() ([]Derivation, error) {
	samples := make([]Derivation, 0, d.cfg.NumSamples)
	iterations := 0
	for len(samples) < d.cfg.NumSamples && (d.cfg.MaxIter == 0 || iterations < d.cfg.MaxIter) {
		der, err := d.step()
		if err != nil {
			return nil, fmt.Errorf("mcmc: iteration %d: %w", iterations, err)
		}
		iterations++
		if iterations <= d.cfg.BurnIn {
			tracer().Debugf("burn-in %d/%d complete", iterations, d.cfg.BurnIn)
			continue
		}
		samples = append(samples, der)
		tracer().Infof("sample %d/%d (iteration %d): %d rules", len(samples), d.cfg.NumSamples, iterations, len(der))
	}
	return samples, nil
}

// step performs one slice-sampling iteration (spec §4.9):
//  1. Build the sliced forest under the store's current u's.
//  2. If empty, redraw every u (ResetNoSample) and retry.
//  3. Once non-empty, draw one derivation via generalised sampling using the
//     uniform-view edge weight (store.Weight), record each visited
//     annotated nonterminal's chosen rule log-prob as the next condition,
//     and switch to the "after" Beta pair.
func (d *Driver) step() (Derivation, error) {
	for attempt := 0; attempt < maxRetriesPerIteration; attempt++ {
		eng := d.newEngine(d.store)
		forest, err := eng.Do(d.cfg.Root, d.cfg.Goal)
		if err != nil {
			d.store.ResetNoSample()
			continue
		}

		sorted := topsort.Sort(forest)
		omega := d.uniformWeight()
		inside := topsort.Inside(forest, sorted, omega)

		s := sample.New(forest, inside, omega)
		rules, err := s.Sample(d.cfg.Goal)
		if err != nil {
			d.store.ResetNoSample()
			continue
		}

		conditions := make(map[slicevar.Key]float64, len(rules))
		for _, r := range rules {
			if !r.LHS.IsAnnotated() {
				// The synthetic GOAL -> root(i,f) rule (spec §4.5): not a
				// sliced node, nothing to condition on.
				continue
			}
			name, i, j := grammar.ParseAnnotated(r.LHS)
			conditions[slicevar.Key{Name: name, I: i, J: j}] = r.LogProb
		}
		d.store.ResetAfterSample(conditions, d.cfg.After.A, d.cfg.After.B)
		return Derivation(rules), nil
	}
	return nil, ErrNoDerivationAfterRetries
}

// uniformWeight adapts the slice-variable store's per-key Weight function
// into a topsort.EdgeWeight, keyed by each rule's annotated LHS (spec §4.8).
func (d *Driver) uniformWeight() topsort.EdgeWeight {
	return func(r grammar.Rule) float64 {
		if !r.LHS.IsAnnotated() {
			// The synthetic GOAL rule carries no slice variable; pass its
			// own (always semiring.One) weight through unchanged.
			return r.LogProb
		}
		name, i, j := grammar.ParseAnnotated(r.LHS)
		k := slicevar.Key{Name: name, I: i, J: j}
		return d.store.Weight(k, r.LogProb)
	}
}
