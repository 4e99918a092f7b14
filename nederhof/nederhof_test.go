package nederhof

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/engine"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/wfsa"
)

func makeGrammar() *grammar.Grammar {
	g := grammar.New()
	s, np, vp := grammar.Nonterminal("S"), grammar.Nonterminal("NP"), grammar.Nonterminal("VP")
	g.Add(grammar.NewRule(s, []grammar.Symbol{np, vp}, 0))
	g.Add(grammar.NewRule(np, []grammar.Symbol{grammar.Terminal("the"), grammar.Terminal("dog")}, 0))
	g.Add(grammar.NewRule(vp, []grammar.Symbol{grammar.Terminal("runs")}, 0))
	return g
}

func TestNederhofParsesMatchingSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parseforest.nederhof")
	defer teardown()

	g := makeGrammar()
	wf := wfsa.MakeLinear([]string{"the", "dog", "runs"})

	forest, err := New(g, wf).Do(grammar.Nonterminal("S"), grammar.GoalSymbol)
	require.NoError(t, err)
	assert.Greater(t, forest.Len(), 0)
}

func TestNederhofNoParseOnMismatchedSentence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parseforest.nederhof")
	defer teardown()

	g := makeGrammar()
	wf := wfsa.MakeLinear([]string{"the", "cat", "runs"})

	forest, err := New(g, wf).Do(grammar.Nonterminal("S"), grammar.GoalSymbol)
	assert.True(t, errors.Is(err, engine.ErrNoParse))
	assert.Equal(t, 0, forest.Len())
}

// TestNederhofKeepsEveryDerivationOfAmbiguousSpan checks that, over an
// ambiguous grammar, the forest holds more than one rule for the root span.
func TestNederhofKeepsEveryDerivationOfAmbiguousSpan(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parseforest.nederhof")
	defer teardown()

	g := grammar.New()
	s := grammar.Nonterminal("S")
	// Two distinct derivations of "a a a": S -> S S | "a", split after the
	// first or after the second "a".
	g.Add(grammar.NewRule(s, []grammar.Symbol{s, s}, 0))
	g.Add(grammar.NewRule(s, []grammar.Symbol{grammar.Terminal("a")}, 0))

	wf := wfsa.MakeLinear([]string{"a", "a", "a"})

	nedForest, err := New(g, wf).Do(s, grammar.GoalSymbol)
	require.NoError(t, err)

	assert.Greater(t, nedForest.Len(), 0)
	assert.Greater(t, len(nedForest.RulesFor(grammar.Annotate(s, 0, 3))), 1)
}
