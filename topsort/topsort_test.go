package topsort

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/semiring"
)

// buildForest constructs S -> NP VP (0-3), NP -> "the" "dog" (0-2, an
// annotated leaf with a terminal-only RHS), VP -> "runs" (2-3), the shape
// engine.Extract would produce for "the dog runs" (spec §4.5/§4.6).
func buildForest() (*grammar.Grammar, grammar.Symbol, grammar.Symbol, grammar.Symbol) {
	s := grammar.Annotate(grammar.Nonterminal("S"), 0, 3)
	np := grammar.Annotate(grammar.Nonterminal("NP"), 0, 2)
	vp := grammar.Annotate(grammar.Nonterminal("VP"), 2, 3)

	g := grammar.New()
	g.Add(grammar.NewRule(s, []grammar.Symbol{np, vp}, 0))
	g.Add(grammar.NewRule(np, []grammar.Symbol{grammar.Terminal("the"), grammar.Terminal("dog")}, 0))
	g.Add(grammar.NewRule(vp, []grammar.Symbol{grammar.Terminal("runs")}, 0))
	return g, s, np, vp
}

func TestSortOrdersChildrenBeforeParents(t *testing.T) {
	g, s, np, vp := buildForest()
	order := Sort(g)
	require.Len(t, order, 3)

	pos := make(map[grammar.Symbol]int, len(order))
	for i, sym := range order {
		pos[sym] = i
	}
	assert.Less(t, pos[np], pos[s])
	assert.Less(t, pos[vp], pos[s])
}

func TestInsideComputesLogProbOfOnlyDerivation(t *testing.T) {
	g, s, _, _ := buildForest()
	order := Sort(g)
	inside := Inside(g, order, DefaultWeight)

	// Every rule has weight 0 (log 1), so the single derivation has
	// probability exp(0) == 1.
	assert.InDelta(t, 0.0, inside[s], 1e-12)
}

func TestInsideSumsOverAmbiguousDerivations(t *testing.T) {
	// S -> "a" (weight log 0.6), S -> "a" (weight log 0.4): two distinct
	// rules for the same span sum under the semiring (spec §4.6).
	sym := grammar.Nonterminal("S")
	g := grammar.New()
	g.Add(grammar.NewRule(sym, []grammar.Symbol{grammar.Terminal("a")}, math.Log(0.6)))
	g.Add(grammar.NewRule(sym, []grammar.Symbol{grammar.Terminal("a")}, math.Log(0.4)))

	order := Sort(g)
	inside := Inside(g, order, DefaultWeight)
	assert.InDelta(t, 1.0, math.Exp(inside[sym]), 1e-9)
}

// A nonterminal that appears on a right-hand side but has no rules of its
// own is listed by Sort and gets semiring.Zero from Inside.
func TestInsideOfUnknownNodeIsZero(t *testing.T) {
	g, _, _, _ := buildForest()
	unknown := grammar.Annotate(grammar.Nonterminal("PP"), 0, 1)
	g.Add(grammar.NewRule(grammar.Annotate(grammar.Nonterminal("X"), 0, 1), []grammar.Symbol{unknown}, 0))
	order := Sort(g)
	inside := Inside(g, order, DefaultWeight)
	assert.Equal(t, semiring.Zero, inside[unknown])
}

func TestCustomEdgeWeightIsHonoured(t *testing.T) {
	g, s, _, _ := buildForest()
	order := Sort(g)
	calls := 0
	omega := func(r grammar.Rule) float64 {
		calls++
		return DefaultWeight(r)
	}
	inside := Inside(g, order, omega)
	assert.Greater(t, calls, 0)
	assert.InDelta(t, 0.0, inside[s], 1e-12)
}
