/*
Package agenda implements the active/passive item sets shared by the Earley
and Nederhof intersection engines, plus the indices that make completion
matching and forest extraction efficient (spec §3).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package agenda

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/item"
	"github.com/wazizlab/parseforest/wfsa"
)

// Agenda holds the active (not yet processed) and passive (processed) item
// sets, plus three lookup indices. The passive set iterates in insertion
// order (linkedhashmap) and each index entry is an append-ordered slice, so
// every item list the agenda hands out comes in a fixed order; that is what
// gives the MCMC driver reproducible behaviour across runs with a fixed seed
// (spec §5, §9).
type Agenda struct {
	active *arraystack.Stack // LIFO of item.Item — spec §4.3 "agenda is LIFO"
	seen   map[string]struct{}

	passive *linkedhashmap.Map // hash -> item.Item

	// complete items grouped by exact (lhs, start, dot) triple — used by
	// forest extraction (spec §4.5).
	completeByLSD map[string][]item.Item
	// complete items grouped by (lhs, start) — used by complete-itself,
	// which must enumerate every dot reachable for a given (lhs, start).
	completeByLS map[string][]item.Item
	// incomplete items grouped by (next, dot) — used by complete-others,
	// which advances every incomplete item waiting on a given (symbol, dot).
	incompleteByND map[string][]item.Item
}

// New creates an empty agenda.
func New() *Agenda {
	return &Agenda{
		active:         arraystack.New(),
		seen:           make(map[string]struct{}),
		passive:        linkedhashmap.New(),
		completeByLSD:  make(map[string][]item.Item),
		completeByLS:   make(map[string][]item.Item),
		incompleteByND: make(map[string][]item.Item),
	}
}

// Len returns the number of items in the active set; the main loop runs
// while it is non-zero.
func (a *Agenda) Len() int { return a.active.Size() }

// Extend adds new candidate items to the active set, deduplicating by item
// equality (hash) against everything ever seen (active or passive). It
// returns the number of genuinely new items added.
func (a *Agenda) Extend(items []item.Item) int {
	added := 0
	for _, it := range items {
		h := it.Hash()
		if _, dup := a.seen[h]; dup {
			continue
		}
		a.seen[h] = struct{}{}
		a.active.Push(it)
		added++
	}
	return added
}

// Pop removes and returns the most recently pushed active item (LIFO).
func (a *Agenda) Pop() (item.Item, bool) {
	v, ok := a.active.Pop()
	if !ok {
		return item.Item{}, false
	}
	return v.(item.Item), true
}

// MakePassive moves it into the passive set and updates the completion
// indices. It must already have been popped from active.
func (a *Agenda) MakePassive(it item.Item) {
	h := it.Hash()
	a.passive.Put(h, it)
	if it.IsComplete() {
		lsd := keyLSD(it.Rule.LHS, it.Start, it.Dot)
		a.completeByLSD[lsd] = append(a.completeByLSD[lsd], it)
		ls := keyLS(it.Rule.LHS, it.Start)
		a.completeByLS[ls] = append(a.completeByLS[ls], it)
	} else {
		next, _ := it.Next()
		nd := keyND(next, it.Dot)
		a.incompleteByND[nd] = append(a.incompleteByND[nd], it)
	}
}

// MatchWaitingForCompletion implements complete-others (spec §4.3): given a
// just-completed item (lhs L, start S), returns every incomplete passive
// item whose next symbol is L and whose dot equals S.
func (a *Agenda) MatchWaitingForCompletion(lhs grammar.Symbol, start wfsa.State) []item.Item {
	return a.incompleteByND[keyND(lhs, start)]
}

// MatchCompleteFor implements complete-itself (spec §4.3): given an
// incomplete item whose next symbol is nt and whose dot is at state dot,
// returns every complete passive item with lhs == nt and start == dot (one
// per reachable junction state).
func (a *Agenda) MatchCompleteFor(nt grammar.Symbol, dot wfsa.State) []item.Item {
	return a.completeByLS[keyLS(nt, dot)]
}

// CompleteItemsAt returns the complete passive items spanning exactly
// (lhs, start, end) — the index forest extraction walks (spec §4.5).
func (a *Agenda) CompleteItemsAt(lhs grammar.Symbol, start, end wfsa.State) []item.Item {
	return a.completeByLSD[keyLSD(lhs, start, end)]
}

// AllComplete iterates every complete passive item, in the order it was
// made passive.
func (a *Agenda) AllComplete(fn func(item.Item)) {
	it := a.passive.Iterator()
	for it.Next() {
		v := it.Value().(item.Item)
		if v.IsComplete() {
			fn(v)
		}
	}
}

func keyLSD(lhs grammar.Symbol, start, dot wfsa.State) string {
	return fmt.Sprintf("%s|%d|%d", lhs.String(), start, dot)
}

func keyLS(lhs grammar.Symbol, start wfsa.State) string {
	return fmt.Sprintf("%s|%d", lhs.String(), start)
}

func keyND(next grammar.Symbol, dot wfsa.State) string {
	return fmt.Sprintf("%s|%d", next.String(), dot)
}
