/*
Package nederhof implements the bottom-up Nederhof intersection engine: wCFG
× wFSA → forest (spec §4.4). It shares the agenda, item factory and forest
extraction with package earley; it differs only in control — axioms are the
terminals of the FSA (scan items created eagerly) and a rule only gets
"predicted" reactively, once a complete item licenses it as a possible first
symbol.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package nederhof

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
	return tracing.Select("parseforest.nederhof")
}

// Parser is the Nederhof intersection engine. Construct with New.
type Parser struct {
	g  *grammar.Grammar
	wf *wfsa.WFSA
	ag *agenda.Agenda

	// rulesStartingWith indexes every grammar rule by its first RHS
	// symbol, so predictFromComplete is an O(1) lookup rather than a scan
	// over the whole grammar.
	rulesStartingWith map[grammar.Symbol][]grammar.Rule

	slice       *slicevar.Store
	strictSlice bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithSliceVariables turns this into a sliced-Nederhof engine (spec §4.8).
func WithSliceVariables(store *slicevar.Store) Option {
	return func(p *Parser) { p.slice = store }
}

// StrictSlice, when true, subjects even root-spanning items to the slice
// filter (spec §9 open question). Defaults to false.
func StrictSlice(b bool) Option {
	return func(p *Parser) { p.strictSlice = b }
}

// New creates a Nederhof parser over grammar g intersected with wfsa wf.
func New(g *grammar.Grammar, wf *wfsa.WFSA, opts ...Option) *Parser {
	p := &Parser{
		g:                 g,
		wf:                wf,
		ag:                agenda.New(),
		rulesStartingWith: make(map[grammar.Symbol][]grammar.Rule),
	}
	for _, lhs := range g.Symbols() {
		for _, r := range g.RulesFor(lhs) {
			if len(r.RHS) == 0 {
				continue
			}
			first := r.RHS[0]
			p.rulesStartingWith[first] = append(p.rulesStartingWith[first], r)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ engine.Engine = (*Parser)(nil)

// Do runs the Nederhof intersection and returns the resulting forest.
func (p *Parser) Do(root, goal grammar.Symbol) (*grammar.Grammar, error) {
	p.seedAxioms()

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

// seedAxioms creates, for every FSA state and every rule whose RHS begins
// with a terminal, a zero-progress item there and immediately scans the
// maximal terminal run starting from it (spec §4.4: "axioms are the
// terminals of the FSA"). Rules are visited in grammar insertion order, so
// the agenda is seeded in the same order on every run.
func (p *Parser) seedAxioms() {
	for q := 0; q < p.wf.NStates(); q++ {
		for _, lhs := range p.g.Symbols() {
			for _, r := range p.g.RulesFor(lhs) {
				if len(r.RHS) == 0 || !r.RHS[0].IsTerminal() {
					continue
				}
				seed := item.New(r, wfsa.State(q))
				p.scan(seed)
			}
		}
	}
}

func (p *Parser) handleComplete(it item.Item, root grammar.Symbol) {
	p.completeOthers(it)
	p.predictFromComplete(it)

	isRootSpan := it.Rule.LHS == root && p.wf.IsInitial(it.Start) && p.wf.IsFinal(it.Dot)

	slicePass := true
	if p.slice != nil {
		k := slicevar.Key{Name: it.Rule.LHS.Name(), I: int(it.Start), J: int(it.Dot)}
		slicePass = p.slice.Admits(k, it.Rule.LogProb)
	}

	switch {
	case isRootSpan && (!p.strictSlice || slicePass):
		p.ag.MakePassive(it)
	case !isRootSpan && slicePass:
		p.ag.MakePassive(it)
	default:
		tracer().Debugf("discard complete item %s (slicePass=%v)", it, slicePass)
	}
}

// completeOthers is identical to the Earley operation of the same name:
// every incomplete passive item waiting on (lhs, start) of the just-
// completed item advances, appending the junction state.
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

// predictFromComplete is Nederhof's bottom-up substitute for Earley's
// top-down predict: once `it` (lhs Y, span start..end) is complete, every
// rule X -> Y β gets a fresh zero-progress item at `start`, already
// advanced past Y to `end` (spec §4.4).
func (p *Parser) predictFromComplete(it item.Item) int {
	rules := p.rulesStartingWith[it.Rule.LHS]
	if len(rules) == 0 {
		return -1
	}
	advanced := make([]item.Item, 0, len(rules))
	for _, r := range rules {
		zero := item.New(r, it.Start)
		advanced = append(advanced, zero.Advance(it.Dot))
	}
	return p.ag.Extend(advanced)
}

func (p *Parser) handleIncomplete(it item.Item) {
	next, ok := it.Next()
	if !ok {
		return
	}
	if next.IsTerminal() {
		p.scan(it)
	} else {
		p.tryAdvanceExisting(it, next)
	}
	p.ag.MakePassive(it)
}

// tryAdvanceExisting is complete-itself's bottom-up counterpart: `it` may
// already be satisfiable by a complete item that existed before `it` did,
// since Nederhof has no top-down ordering guaranteeing predict-before-use.
func (p *Parser) tryAdvanceExisting(it item.Item, next grammar.Symbol) int {
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

// scan consumes the longest maximal prefix of terminals from it's dot
// onward through the FSA (spec §4.3, shared verbatim with package earley's
// semantics); the first terminal with no matching arc discards the step.
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
