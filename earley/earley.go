/*
Package earley implements the top-down Earley intersection engine: wCFG ×
wFSA → forest, via predict/scan/complete over dotted items (spec §4.3).

Optionally parameterised by a slice-variable store (package slicevar), in
which case it behaves as the "sliced Earley" engine of spec §4.8 — filtering
complete items against their slice threshold before accepting them into the
agenda's passive set, except for root-spanning items, which are always kept
unless StrictSlice is enabled (spec §9 open question).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/wazizlab/parseforest/agenda"
	"github.com/wazizlab/parseforest/engine"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/item"
	"github.com/wazizlab/parseforest/slicevar"
	"github.com/wazizlab/parseforest/wfsa"
)

func tracer() tracing.Trace {
	return tracing.Select("parseforest.earley")
}

type predKey struct {
	dot    wfsa.State
	symbol grammar.Symbol
}

// Parser is the Earley intersection engine. Construct with New.
type Parser struct {
	g  *grammar.Grammar
	wf *wfsa.WFSA
	ag *agenda.Agenda

	predStatus map[predKey]bool

	slice       *slicevar.Store
	strictSlice bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithSliceVariables turns this into a sliced-Earley engine, filtering
// complete items against store's thresholds (spec §4.8).
func WithSliceVariables(store *slicevar.Store) Option {
	return func(p *Parser) { p.slice = store }
}

// StrictSlice, when true, subjects even root-spanning items to the slice
// filter, so that equivalence to a "strict" slice sampler can be tested
// (spec §9 open question). Defaults to false: root-spanning items are
// always kept.
func StrictSlice(b bool) Option {
	return func(p *Parser) { p.strictSlice = b }
}

// New creates an Earley parser over grammar g intersected with wfsa wf.
func New(g *grammar.Grammar, wf *wfsa.WFSA, opts ...Option) *Parser {
	p := &Parser{
		g:          g,
		wf:         wf,
		ag:         agenda.New(),
		predStatus: make(map[predKey]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ engine.Engine = (*Parser)(nil)

// Do runs the Earley intersection and returns the resulting forest (spec
// §4.3, §4.5). It returns engine.ErrNoParse (wrapping an empty forest) when
// the intersection yields no rules.
func (p *Parser) Do(root, goal grammar.Symbol) (*grammar.Grammar, error) {
	p.axioms(root)

	for p.ag.Len() > 0 {
		it, _ := p.ag.Pop()
		if it.IsComplete() {
			p.handleComplete(it, root)
		} else {
			p.handleIncomplete(it)
		}
	}

	forest := engine.Extract(p.ag, p.wf, root, goal)
	if forest.Len() == 0 {
		return forest, engine.ErrNoParse
	}
	return forest, nil
}

// axioms seeds the agenda with [rule -> •rhs, s0] for every rule with
// LHS == root and every initial FSA state s0 (spec §4.3).
func (p *Parser) axioms(root grammar.Symbol) {
	rules := p.g.RulesFor(root)
	for _, s0 := range p.wf.InitialStates() {
		key := predKey{s0, root}
		if len(rules) == 0 {
			p.predStatus[key] = false
			continue
		}
		items := make([]item.Item, len(rules))
		for i, r := range rules {
			items[i] = item.New(r, s0)
		}
		p.ag.Extend(items)
		p.predStatus[key] = true
	}
}

func (p *Parser) handleComplete(it item.Item, root grammar.Symbol) {
	status := p.completeOthers(it)

	isRootSpan := it.Rule.LHS == root && p.wf.IsInitial(it.Start) && p.wf.IsFinal(it.Dot)

	slicePass := true
	if p.slice != nil {
		k := slicevar.Key{Name: it.Rule.LHS.Name(), I: int(it.Start), J: int(it.Dot)}
		slicePass = p.slice.Admits(k, it.Rule.LogProb)
	}

	// A complete root item at an initial state is kept even when nothing
	// waits on it yet: a left-recursive root axiom that needs it may still
	// be on the active stack and will find it through complete-itself.
	wanted := status >= 0 || (it.Rule.LHS == root && p.wf.IsInitial(it.Start))

	switch {
	case isRootSpan && (!p.strictSlice || slicePass):
		p.ag.MakePassive(it)
	case !isRootSpan && slicePass && wanted:
		p.ag.MakePassive(it)
	default:
		tracer().Debugf("discard complete item %s (status=%d, slicePass=%v)", it, status, slicePass)
	}
}

// completeOthers implements spec §4.3's complete-others: every incomplete
// passive item waiting on (lhs, start) of the just-completed item advances
// its dot, appending the junction state. Returns -1 if nothing was waiting.
func (p *Parser) completeOthers(it item.Item) int {
	waiting := p.ag.MatchWaitingForCompletion(it.Rule.LHS, it.Start)
	if len(waiting) == 0 {
		return -1
	}
	advanced := make([]item.Item, len(waiting))
	for i, w := range waiting {
		advanced[i] = w.Advance(it.Dot)
	}
	return p.ag.Extend(advanced)
}

func (p *Parser) handleIncomplete(it item.Item) {
	next, ok := it.Next()
	if !ok {
		return // unreachable: IsComplete() would have been true
	}

	var status int
	if next.IsTerminal() {
		status = p.scan(it)
	} else {
		status = p.predict(it)
		if status == 0 {
			p.completeItself(it)
		}
	}
	if status >= 0 {
		p.ag.MakePassive(it)
	}
}

// scan implements spec §4.3's scan: the longest maximal prefix of terminals
// starting at the dot is consumed atomically through the FSA; the first
// terminal with no matching arc discards the whole step.
func (p *Parser) scan(it item.Item) int {
	pos := len(it.Inner)
	remaining := it.Rule.RHS[pos:]

	states := []wfsa.State{it.Dot}
	var weights []float64
	for _, sym := range remaining {
		if !sym.IsTerminal() {
			break
		}
		to, w, ok := p.wf.DestinationAndWeight(states[len(states)-1], sym)
		if !ok {
			return -1
		}
		states = append(states, to)
		weights = append(weights, w)
	}
	if len(weights) == 0 {
		return -1
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	newRule := grammar.NewRule(it.Rule.LHS, it.Rule.RHS, it.Rule.LogProb+sum)
	inner := append(append([]wfsa.State{}, it.Inner...), states[:len(states)-1]...)
	advanced := item.Item{Rule: newRule, Start: it.Start, Dot: states[len(states)-1], Inner: inner}
	return p.ag.Extend([]item.Item{advanced})
}

// predict implements spec §4.3's predict, with the prediction-status cache
// avoiding repeated prediction of the same (state, symbol) pair (handles
// left recursion).
func (p *Parser) predict(it item.Item) int {
	next, _ := it.Next()
	key := predKey{it.Dot, next}
	if status, seen := p.predStatus[key]; seen {
		if status {
			return 0
		}
		return -1
	}
	rules := p.g.RulesFor(next)
	if len(rules) == 0 {
		p.predStatus[key] = false
		return -1
	}
	items := make([]item.Item, len(rules))
	for i, r := range rules {
		items[i] = item.New(r, it.Dot)
	}
	added := p.ag.Extend(items)
	p.predStatus[key] = true
	return added
}

// completeItself implements spec §4.3's complete-itself, fired when a
// prediction for (dot, next) has already happened for some other item: this
// item may still progress if a matching complete item already exists.
func (p *Parser) completeItself(it item.Item) int {
	next, _ := it.Next()
	matches := p.ag.MatchCompleteFor(next, it.Dot)
	if len(matches) == 0 {
		return -1
	}
	seen := make(map[wfsa.State]struct{})
	var advanced []item.Item
	for _, m := range matches {
		if _, dup := seen[m.Dot]; dup {
			continue
		}
		seen[m.Dot] = struct{}{}
		advanced = append(advanced, it.Advance(m.Dot))
	}
	return p.ag.Extend(advanced)
}
