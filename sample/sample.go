/*
Package sample implements generalised (ancestral, top-down) sampling over a
forest, drawing derivations proportional to their inside-weighted edge
probabilities (spec §4.7).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package sample

import (
	"errors"
	"math"

	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/rng"
	"github.com/wazizlab/parseforest/semiring"
	"github.com/wazizlab/parseforest/topsort"
)

// ErrEmptyForest is returned when goal has no rules to sample from (spec
// §4.7). Callers handle it as a no-parse (spec §7).
var ErrEmptyForest = errors.New("sample: empty forest at goal")

// Sampler draws derivations from a forest given its precomputed inside
// weights.
type Sampler struct {
	forest *grammar.Grammar
	inside map[grammar.Symbol]float64
	omega  topsort.EdgeWeight
}

// New creates a Sampler over forest, with precomputed inside weights and
// edge-weight function omega (pass topsort.DefaultWeight for exact-mode
// sampling, or a slice-variable-backed uniform view for the sliced
// sampler).
func New(forest *grammar.Grammar, inside map[grammar.Symbol]float64, omega topsort.EdgeWeight) *Sampler {
	return &Sampler{forest: forest, inside: inside, omega: omega}
}

// Sample draws one derivation rooted at goal: the multiset of rules visited,
// in traversal order (spec §4.7).
func (s *Sampler) Sample(goal grammar.Symbol) ([]grammar.Rule, error) {
	var out []grammar.Rule
	if err := s.visit(goal, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Sampler) visit(node grammar.Symbol, out *[]grammar.Rule) error {
	rules := s.forest.RulesFor(node)
	if len(rules) == 0 {
		return ErrEmptyForest
	}
	r := s.choose(node, rules)
	*out = append(*out, r)
	for _, sym := range r.RHS {
		if sym.IsNonterminal() {
			if err := s.visit(sym, out); err != nil {
				return err
			}
		}
	}
	return nil
}

// choose picks rule r among `rules` with probability
// exp(ω(r) ⊗ ∏ I(child)) / exp(I(node)), implemented as a log-domain
// cumulative draw against a single uniform variate from the shared PRNG
// (spec §5: all randomness goes through one process-wide generator).
func (s *Sampler) choose(node grammar.Symbol, rules []grammar.Rule) grammar.Rule {
	weights := make([]float64, len(rules))
	for i, r := range rules {
		w := s.omega(r)
		for _, sym := range r.RHS {
			if sym.IsNonterminal() {
				w = semiring.Times(w, s.inside[sym])
			}
		}
		weights[i] = w
	}
	total := s.inside[node]
	if math.IsInf(total, -1) {
		// Defensive: should not happen if inside was computed over this
		// same forest, but fall back to a uniform choice rather than
		// dividing by zero probability mass.
		return rules[int(rng.Float64()*float64(len(rules)))%len(rules)]
	}

	u := math.Log(rng.Float64())
	acc := semiring.Zero
	for i, w := range weights {
		acc = semiring.Add(acc, w)
		if u <= acc-total {
			return rules[i]
		}
	}
	return rules[len(rules)-1]
}
