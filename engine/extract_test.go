package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/agenda"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/item"
	"github.com/wazizlab/parseforest/wfsa"
)

// TestExtractBuildsForestFromCompleteItems hand-builds an agenda's passive
// set the way the Earley/Nederhof engines would leave it after a
// successful "the dog runs" parse, and checks Extract (spec §4.5) produces
// the expected annotated-nonterminal forest plus the synthetic GOAL rule.
func TestExtractBuildsForestFromCompleteItems(t *testing.T) {
	s, np, vp := grammar.Nonterminal("S"), grammar.Nonterminal("NP"), grammar.Nonterminal("VP")

	wf := wfsa.MakeLinear([]string{"the", "dog", "runs"})

	ag := agenda.New()
	npRule := grammar.NewRule(np, []grammar.Symbol{grammar.Terminal("the"), grammar.Terminal("dog")}, 0)
	npItem := item.Item{Rule: npRule, Start: 0, Dot: 2, Inner: []wfsa.State{0, 1}}
	ag.MakePassive(npItem)

	vpRule := grammar.NewRule(vp, []grammar.Symbol{grammar.Terminal("runs")}, 0)
	vpItem := item.Item{Rule: vpRule, Start: 2, Dot: 3, Inner: []wfsa.State{2}}
	ag.MakePassive(vpItem)

	sRule := grammar.NewRule(s, []grammar.Symbol{np, vp}, 0)
	sItem := item.Item{Rule: sRule, Start: 0, Dot: 3, Inner: []wfsa.State{0, 2}}
	ag.MakePassive(sItem)

	forest := Extract(ag, wf, s, grammar.GoalSymbol)
	require.Greater(t, forest.Len(), 0)

	goalRules := forest.RulesFor(grammar.GoalSymbol)
	require.Len(t, goalRules, 1)
	name, i, j := grammar.ParseAnnotated(goalRules[0].RHS[0])
	assert.Equal(t, "S", name)
	assert.Equal(t, 0, i)
	assert.Equal(t, 3, j)

	assert.Len(t, forest.RulesFor(grammar.Annotate(np, 0, 2)), 1)
	assert.Len(t, forest.RulesFor(grammar.Annotate(vp, 2, 3)), 1)
}

// TestExtractEmptyWhenRootSpanMissing checks that Extract returns an empty
// forest (not an error) when no complete root item spans an initial-to-
// final pair, per spec §7's "no parse is recovered, not fatal".
func TestExtractEmptyWhenRootSpanMissing(t *testing.T) {
	s := grammar.Nonterminal("S")
	wf := wfsa.MakeLinear([]string{"dog"})
	ag := agenda.New()

	forest := Extract(ag, wf, s, grammar.GoalSymbol)
	assert.Equal(t, 0, forest.Len())
}

// TestExtractDiscardsBrokenDerivations checks that a root item referencing
// a child span with no complete items there is discarded wholesale, leaving
// no rules and no GOAL rule behind.
func TestExtractDiscardsBrokenDerivations(t *testing.T) {
	s, np := grammar.Nonterminal("S"), grammar.Nonterminal("NP")
	wf := wfsa.MakeLinear([]string{"dog"})

	ag := agenda.New()
	// A root item whose NP child (span 0-1) was never completed.
	brokenRule := grammar.NewRule(s, []grammar.Symbol{np}, 0)
	broken := item.Item{Rule: brokenRule, Start: 0, Dot: 1, Inner: []wfsa.State{0}}
	ag.MakePassive(broken)

	forest := Extract(ag, wf, s, grammar.GoalSymbol)
	assert.Equal(t, 0, forest.Len())
}
