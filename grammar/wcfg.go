package grammar

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Grammar is a weighted context-free grammar: a mapping from LHS
// nonterminal to its insertion-ordered list of rules, plus the terminal
// vocabulary it has seen. Both the input grammar and a forest (the output of
// intersection) share this shape (spec §3). Duplicate rules are permitted —
// they represent distinct derivation edges.
//
// Rule lists are stored behind a linkedhashmap (github.com/emirpasic/gods)
// rather than a bare Go map so that iteration order is reproducible, which
// matters for MCMC determinism (spec §5, §9).
type Grammar struct {
	rules     *linkedhashmap.Map // Symbol -> []Rule
	terminals map[Symbol]struct{}
}

// New creates an empty grammar.
func New() *Grammar {
	return &Grammar{
		rules:     linkedhashmap.New(),
		terminals: make(map[Symbol]struct{}),
	}
}

// RulesFor returns the insertion-ordered list of rules for lhs, or nil if
// there are none. The returned slice must not be mutated by the caller.
func (g *Grammar) RulesFor(lhs Symbol) []Rule {
	v, found := g.rules.Get(lhs)
	if !found {
		return nil
	}
	return v.([]Rule)
}

// Update appends rules to the grammar, indexed by their LHS, and records any
// terminal symbols seen on their RHS.
func (g *Grammar) Update(rules []Rule) {
	for _, r := range rules {
		g.add(r)
	}
}

// Add appends a single rule.
func (g *Grammar) Add(r Rule) {
	g.add(r)
}

func (g *Grammar) add(r Rule) {
	var existing []Rule
	if v, found := g.rules.Get(r.LHS); found {
		existing = v.([]Rule)
	}
	g.rules.Put(r.LHS, append(existing, r))
	for _, sym := range r.RHS {
		if sym.IsTerminal() {
			g.terminals[sym] = struct{}{}
		}
	}
}

// Terminals returns the terminal vocabulary accumulated so far.
func (g *Grammar) Terminals() map[Symbol]struct{} {
	return g.terminals
}

// HasTerminal reports whether name is a known terminal surface form.
func (g *Grammar) HasTerminal(name string) bool {
	_, ok := g.terminals[Terminal(name)]
	return ok
}

// Len returns the total number of rules stored (across all LHS symbols),
// mirroring the Python original's `len(wcfg)`.
func (g *Grammar) Len() int {
	n := 0
	for _, k := range g.rules.Keys() {
		v, _ := g.rules.Get(k)
		n += len(v.([]Rule))
	}
	return n
}

// Symbols returns the LHS symbols in insertion order.
func (g *Grammar) Symbols() []Symbol {
	keys := g.rules.Keys()
	out := make([]Symbol, len(keys))
	for i, k := range keys {
		out[i] = k.(Symbol)
	}
	return out
}

// Each iterates rules for every LHS symbol, in insertion order of both the
// LHS symbols and the rules within each LHS's list.
func (g *Grammar) Each(fn func(lhs Symbol, rules []Rule)) {
	it := g.rules.Iterator()
	for it.Next() {
		fn(it.Key().(Symbol), it.Value().([]Rule))
	}
}
