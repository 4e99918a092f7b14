package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/wfsa"
)

func TestNewItemIsIncompleteUntilAdvanced(t *testing.T) {
	r := grammar.NewRule(grammar.Nonterminal("NP"), []grammar.Symbol{
		grammar.Terminal("the"), grammar.Terminal("dog"),
	}, 0)
	it := New(r, 0)
	assert.False(t, it.IsComplete())

	next, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, grammar.Terminal("the"), next)

	it = it.Advance(1)
	assert.False(t, it.IsComplete())
	it = it.Advance(2)
	assert.True(t, it.IsComplete())

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestEmptyRHSItemIsCompleteOnCreation(t *testing.T) {
	r := grammar.NewRule(grammar.Nonterminal("Eps"), nil, 0)
	it := New(r, 0)
	assert.True(t, it.IsComplete())
}

func TestAdvanceAppendsDotToInner(t *testing.T) {
	r := grammar.NewRule(grammar.Nonterminal("X"), []grammar.Symbol{
		grammar.Terminal("a"), grammar.Terminal("b"),
	}, 0)
	it := New(r, 0).Advance(1)
	assert.Equal(t, []wfsa.State{0}, it.Inner)
	assert.Equal(t, wfsa.State(1), it.Dot)
}

func TestHashIsStableAndDistinguishesItems(t *testing.T) {
	r := grammar.NewRule(grammar.Nonterminal("X"), []grammar.Symbol{grammar.Terminal("a")}, 0)
	a := New(r, 0)
	b := New(r, 0)
	assert.Equal(t, a.Hash(), b.Hash())

	c := New(r, 1)
	assert.NotEqual(t, a.Hash(), c.Hash())

	d := a.Advance(1)
	assert.NotEqual(t, a.Hash(), d.Hash())
}
