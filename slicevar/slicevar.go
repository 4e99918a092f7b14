/*
Package slicevar implements the per-annotated-nonterminal slice variables
that drive slice-sampling MCMC (spec §3, §4.8).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package slicevar

import (
	"math"
	"sync"

	"github.com/wazizlab/parseforest/semiring"
)

// Key identifies an annotated nonterminal (name, i, j) for slice-variable
// bookkeeping, independent of package grammar's Symbol so that this package
// has no dependency on the forest representation.
type Key struct {
	Name string
	I, J int
}

// Store holds slice variables u[k] ~ Beta(a,b), an optional condition per
// key (the log-prob of that key in the last accepted derivation, truncating
// the next draw), and the active Beta parameter pair: the "before" pair
// given to NewStore until ResetAfterSample installs the "after" pair passed
// to it (spec §3, §4.8, §4.9).
type Store struct {
	mu sync.Mutex

	u map[Key]float64

	conditions   map[Key]float64
	hasCondition map[Key]bool

	a, b float64 // currently active pair
}

// NewStore creates a store whose initial draws use (aBefore, bBefore) and
// whose conditions are all "unbounded", matching the MCMC driver's initial
// state (spec §4.9).
func NewStore(aBefore, bBefore float64) *Store {
	return &Store{
		u:            make(map[Key]float64),
		conditions:   make(map[Key]float64),
		hasCondition: make(map[Key]bool),
		a:            aBefore,
		b:            bBefore,
	}
}

// draw lazily samples u[k] on first access, honouring a truncation bound if
// the key has a recorded condition (spec §3: "when the key's condition ...
// is set, the draw is instead from Beta(a, b) truncated to (0, exp(condition)]").
func (s *Store) draw(k Key) float64 {
	if u, ok := s.u[k]; ok {
		return u
	}
	var u float64
	if s.hasCondition[k] {
		upper := math.Exp(s.conditions[k])
		u = betaSampleTruncated(s.a, s.b, upper)
	} else {
		u = betaSample(s.a, s.b)
	}
	s.u[k] = u
	return u
}

// Threshold returns log(u_k), drawing u_k lazily if this is the first
// access for k.
func (s *Store) Threshold(k Key) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return math.Log(s.draw(k))
}

// Admits reports whether logP clears the slice threshold for k (logP >
// log u_k) — the test the sliced engines apply before accepting a complete
// item (spec §4.8).
func (s *Store) Admits(k Key, logP float64) bool {
	return logP > s.Threshold(k)
}

// Weight returns the uniform-view edge weight spec §4.8 defines:
// -log pdf_Beta(u_k; a, b) when logP passes the slice threshold, and
// semiring.Zero (probability 0) otherwise. It is meant to be used as the
// pluggable ω in topsort.Inside / sample.Sample once a sliced forest has
// already been built, so in practice logP will always pass (the engine
// filtered non-passing edges out already); the conditional guards against
// calling it out of context.
func (s *Store) Weight(k Key, logP float64) float64 {
	s.mu.Lock()
	u := s.draw(k)
	a, b := s.a, s.b
	s.mu.Unlock()
	if logP <= math.Log(u) {
		return semiring.Zero
	}
	return -logBetaPDF(u, a, b)
}

// ResetAfterSample clears every drawn u, replaces the condition map
// wholesale with `conditions` (the log-prob of each visited key in the
// derivation just sampled), and switches to the "after" Beta pair (spec
// §4.9, step 2).
func (s *Store) ResetAfterSample(conditions map[Key]float64, a, b float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u = make(map[Key]float64)
	s.conditions = make(map[Key]float64, len(conditions))
	s.hasCondition = make(map[Key]bool, len(conditions))
	for k, v := range conditions {
		s.conditions[k] = v
		s.hasCondition[k] = true
	}
	s.a, s.b = a, b
}

// ResetNoSample clears every drawn u but leaves conditions and the Beta
// pair untouched — the "no derivation found" branch of spec §4.9 step 3.
func (s *Store) ResetNoSample() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u = make(map[Key]float64)
}
