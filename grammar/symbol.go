package grammar

import "fmt"

// Kind tags a Symbol as a terminal or a nonterminal.
type Kind uint8

const (
	// TerminalKind marks a Symbol as a terminal (a word of the vocabulary).
	TerminalKind Kind = iota
	// NonterminalKind marks a Symbol as a nonterminal, possibly annotated
	// with an FSA span once it lives inside a forest.
	NonterminalKind
)

// Symbol is a tagged value: either a terminal or a (possibly annotated)
// nonterminal. Annotated nonterminals are the node type of a forest — see
// Annotate/ParseAnnotated. Symbol is comparable and may be used as a map key.
type Symbol struct {
	kind Kind
	name string
	// annotated span; zero value (0,0) together with annotated==false
	// means "not annotated".
	from, to  int
	annotated bool
}

// Terminal constructs an (unannotated) terminal symbol.
func Terminal(name string) Symbol {
	return Symbol{kind: TerminalKind, name: name}
}

// Nonterminal constructs an unannotated nonterminal symbol.
func Nonterminal(name string) Symbol {
	return Symbol{kind: NonterminalKind, name: name}
}

// IsTerminal reports whether sym is a terminal.
func (s Symbol) IsTerminal() bool { return s.kind == TerminalKind }

// IsNonterminal reports whether sym is a nonterminal (annotated or not).
func (s Symbol) IsNonterminal() bool { return s.kind == NonterminalKind }

// IsAnnotated reports whether sym carries an FSA span.
func (s Symbol) IsAnnotated() bool { return s.annotated }

// Name returns the symbol's bare name, stripped of any annotation.
func (s Symbol) Name() string { return s.name }

// Annotate returns a copy of a nonterminal symbol tagged with FSA span
// (i, j). Annotating a terminal is a programmer error and panics, since the
// forest's node type is nonterminals only (see spec §3).
func Annotate(sym Symbol, i, j int) Symbol {
	if sym.kind != NonterminalKind {
		panic(fmt.Sprintf("grammar: cannot annotate non-nonterminal symbol %v", sym))
	}
	sym.from, sym.to, sym.annotated = i, j, true
	return sym
}

// ParseAnnotated recovers (name, i, j) from an annotated nonterminal. It
// panics if sym is not annotated, satisfying the round-trip law
// ParseAnnotated(Annotate(n, i, j)) == (n, i, j) from spec §8.
func ParseAnnotated(sym Symbol) (name string, i, j int) {
	if !sym.annotated {
		panic(fmt.Sprintf("grammar: symbol %v is not annotated", sym))
	}
	return sym.name, sym.from, sym.to
}

// String renders a Symbol for debugging and for pretty-printing derivations,
// matching the bracket convention of the bar grammar format.
func (s Symbol) String() string {
	if s.kind == TerminalKind {
		return s.name
	}
	if s.annotated {
		return fmt.Sprintf("[%s:%d-%d]", s.name, s.from, s.to)
	}
	return fmt.Sprintf("[%s]", s.name)
}

// GoalSymbol is the synthetic root nonterminal the forest is anchored under
// after extraction (spec §4.5).
var GoalSymbol = Nonterminal("GOAL")
