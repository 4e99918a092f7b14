package engine

import (
	"github.com/wazizlab/parseforest/agenda"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/item"
	"github.com/wazizlab/parseforest/semiring"
	"github.com/wazizlab/parseforest/wfsa"
)

// rootSpan locates the (initial, final) FSA state pair for root: any
// initial state from which a root-lhs complete item reaches a final state
// (spec §4.5). It returns false if no such item exists.
func rootSpan(ag *agenda.Agenda, wf *wfsa.WFSA, root grammar.Symbol) (wfsa.State, wfsa.State, bool) {
	found := false
	var initial, final wfsa.State
	ag.AllComplete(func(it item.Item) {
		if found || it.Rule.LHS != root {
			return
		}
		if wf.IsInitial(it.Start) && wf.IsFinal(it.Dot) {
			initial, final = it.Start, it.Dot
			found = true
		}
	})
	return initial, final, found
}

func intersectedRule(it item.Item) grammar.Rule {
	lhs := grammar.Annotate(it.Rule.LHS, int(it.Start), int(it.Dot))
	positions := boundaries(it)
	rhs := make([]grammar.Symbol, len(it.Rule.RHS))
	for i, sym := range it.Rule.RHS {
		if sym.IsNonterminal() {
			rhs[i] = grammar.Annotate(sym, int(positions[i]), int(positions[i+1]))
		} else {
			rhs[i] = sym
		}
	}
	return grammar.NewRule(lhs, rhs, it.Rule.LogProb)
}

type span struct {
	sym        grammar.Symbol
	start, end wfsa.State
}

// Extract walks the agenda's complete items from GOAL downward, emitting
// intersected rules into a forest (spec §4.5). A partial root-derivation
// whose walk hits a span with no complete items is "broken": its
// accumulated rules are discarded, but other root-derivations are
// unaffected. If any rules were emitted, a synthetic
// GOAL -> [root(initial,final)] rule is added with weight semiring.One.
// An entirely empty result (no rules at all) signals no parse.
func Extract(ag *agenda.Agenda, wf *wfsa.WFSA, root, goal grammar.Symbol) *grammar.Grammar {
	g := grammar.New()

	initial, final, ok := rootSpan(ag, wf, root)
	if !ok {
		return g
	}

	rootItems := ag.CompleteItemsAt(root, initial, final)
	for _, rootItem := range rootItems {
		pending := grammar.New()
		queuing := make(map[span]struct{})
		queue := []span{}

		pending.Add(intersectedRule(rootItem))
		queue = append(queue, childSpans(rootItem)...)

		broken := false
		for len(queue) > 0 {
			s := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			items := ag.CompleteItemsAt(s.sym, s.start, s.end)
			if len(items) == 0 {
				broken = true
				break
			}
			for _, it := range items {
				pending.Add(intersectedRule(it))
				for _, child := range childSpans(it) {
					if _, already := queuing[child]; already {
						continue
					}
					queuing[child] = struct{}{}
					queue = append(queue, child)
				}
			}
		}

		if broken {
			continue
		}
		pending.Each(func(lhs grammar.Symbol, rules []grammar.Rule) {
			g.Update(rules)
		})
	}

	if g.Len() > 0 {
		g.Add(grammar.NewRule(goal, []grammar.Symbol{grammar.Annotate(root, int(initial), int(final))}, semiring.One))
	}
	return g
}

func childSpans(it item.Item) []span {
	positions := boundaries(it)
	var out []span
	for i, sym := range it.Rule.RHS {
		if sym.IsNonterminal() {
			out = append(out, span{sym: sym, start: positions[i], end: positions[i+1]})
		}
	}
	return out
}

// boundaries returns the len(it.Rule.RHS)+1 FSA states delimiting each RHS
// symbol's span. it.Inner already holds the state the dot sat at before
// each consumed symbol (inner[0] == it.Start for a non-empty RHS), so the
// trailing boundary is simply it.Dot, the state after the last symbol.
func boundaries(it item.Item) []wfsa.State {
	out := make([]wfsa.State, 0, len(it.Inner)+1)
	out = append(out, it.Inner...)
	out = append(out, it.Dot)
	return out
}
