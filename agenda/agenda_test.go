package agenda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/item"
)

func TestExtendDeduplicatesByHash(t *testing.T) {
	ag := New()
	r := grammar.NewRule(grammar.Nonterminal("X"), []grammar.Symbol{grammar.Terminal("a")}, 0)
	it := item.New(r, 0)

	added := ag.Extend([]item.Item{it, it})
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, ag.Len())

	added = ag.Extend([]item.Item{it})
	assert.Equal(t, 0, added)
}

func TestPopIsLIFO(t *testing.T) {
	ag := New()
	r := grammar.NewRule(grammar.Nonterminal("X"), []grammar.Symbol{grammar.Terminal("a")}, 0)
	first := item.New(r, 0)
	second := item.New(r, 1)
	ag.Extend([]item.Item{first, second})

	got, ok := ag.Pop()
	require.True(t, ok)
	assert.Equal(t, second.Hash(), got.Hash())

	got, ok = ag.Pop()
	require.True(t, ok)
	assert.Equal(t, first.Hash(), got.Hash())

	_, ok = ag.Pop()
	assert.False(t, ok)
}

func TestMakePassiveIndexesCompleteAndIncompleteItems(t *testing.T) {
	ag := New()
	lhs := grammar.Nonterminal("NP")
	r := grammar.NewRule(lhs, []grammar.Symbol{grammar.Terminal("dog")}, 0)

	complete := item.New(r, 0).Advance(1)
	require.True(t, complete.IsComplete())
	ag.MakePassive(complete)

	found := ag.CompleteItemsAt(lhs, 0, 1)
	require.Len(t, found, 1)
	assert.Equal(t, complete.Hash(), found[0].Hash())

	sameStart := ag.MatchCompleteFor(lhs, 0)
	require.Len(t, sameStart, 1)

	vp := grammar.Nonterminal("VP")
	waitingRule := grammar.NewRule(vp, []grammar.Symbol{lhs, grammar.Terminal("runs")}, 0)
	waiting := item.New(waitingRule, 0)
	ag.MakePassive(waiting)

	matches := ag.MatchWaitingForCompletion(lhs, 0)
	require.Len(t, matches, 1)
	assert.Equal(t, waiting.Hash(), matches[0].Hash())
}

func TestAllCompleteVisitsOnlyCompleteItems(t *testing.T) {
	ag := New()
	lhs := grammar.Nonterminal("NP")
	complete := item.New(grammar.NewRule(lhs, nil, 0), 0)
	incompleteRule := grammar.NewRule(lhs, []grammar.Symbol{grammar.Terminal("a")}, 0)
	incomplete := item.New(incompleteRule, 0)

	ag.MakePassive(complete)
	ag.MakePassive(incomplete)

	var seen int
	ag.AllComplete(func(it item.Item) { seen++ })
	assert.Equal(t, 1, seen)
}
