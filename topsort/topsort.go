/*
Package topsort implements topological sorting of a forest's annotated
nonterminals and the inside-weight recursion over the sorted DAG (spec
§4.6).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package topsort

import (
	"github.com/wazizlab/parseforest/grammar"
)

// Sort returns the forest's LHS nonterminals, together with every
// nonterminal referenced on their rules' right-hand sides (even one with no
// rules of its own), ordered so that every symbol referenced on the RHS of
// one of a node's rules appears before that node — i.e. children before parents, the order package
// sample and package topsort's own Inside need. The forest is guaranteed
// acyclic by construction (spec §4.6: FSA states delimiting each span
// strictly order the dependency relation), so a plain DFS post-order
// suffices; we do not attempt cycle detection beyond a recursion guard
// that would otherwise stack-overflow on a malformed forest.
func Sort(forest *grammar.Grammar) []grammar.Symbol {
	visited := make(map[grammar.Symbol]bool)
	inProgress := make(map[grammar.Symbol]bool)
	var order []grammar.Symbol

	var visit func(sym grammar.Symbol)
	visit = func(sym grammar.Symbol) {
		if visited[sym] {
			return
		}
		if inProgress[sym] {
			// Should not happen for a well-formed forest; break the cycle
			// rather than recurse forever.
			return
		}
		inProgress[sym] = true
		for _, r := range forest.RulesFor(sym) {
			for _, child := range r.RHS {
				if child.IsNonterminal() {
					visit(child)
				}
			}
		}
		inProgress[sym] = false
		visited[sym] = true
		order = append(order, sym)
	}

	for _, sym := range forest.Symbols() {
		visit(sym)
	}
	return order
}
