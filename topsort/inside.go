package topsort

import (
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/semiring"
)

// EdgeWeight is the pluggable ω hook (spec §4.6, §9): given a rule, it
// returns the log-domain weight to use for that edge. The default is the
// rule's own LogProb; the sliced sampler substitutes a uniform view built
// from the slice variables (package slicevar).
type EdgeWeight func(r grammar.Rule) float64

// DefaultWeight is ω(edge) = edge.LogProb, the unsliced/exact-mode view.
func DefaultWeight(r grammar.Rule) float64 {
	return r.LogProb
}

// Inside computes, for every node in `sorted` (assumed to be forest.Sort's
// output, children before parents), the log-inside weight
//
//	I(v) = ⊕_{v→rhs ∈ rules} ω(v→rhs) ⊗ ∏_{u ∈ rhs_nonterminals} I(u)
//
// Terminals contribute semiring.One (spec §4.6). A node in sorted with no
// rules (Sort lists RHS nonterminals that have none) gets semiring.Zero. A
// node not in sorted has no entry in the returned map.
func Inside(forest *grammar.Grammar, sorted []grammar.Symbol, omega EdgeWeight) map[grammar.Symbol]float64 {
	inside := make(map[grammar.Symbol]float64, len(sorted))
	for _, v := range sorted {
		acc := semiring.Zero
		for _, r := range forest.RulesFor(v) {
			w := omega(r)
			for _, sym := range r.RHS {
				if sym.IsNonterminal() {
					w = semiring.Times(w, inside[sym])
				}
			}
			acc = semiring.Add(acc, w)
		}
		inside[v] = acc
	}
	return inside
}
