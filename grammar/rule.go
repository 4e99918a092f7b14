package grammar

import (
	"strings"
)

// Rule is a weighted production lhs -> rhs, with LogProb living in the log
// semiring (see package semiring). In the input grammar lhs/rhs symbols are
// unannotated; in a forest all nonterminals are annotated (spec §3).
type Rule struct {
	LHS     Symbol
	RHS     []Symbol
	LogProb float64
}

// NewRule constructs a Rule. The RHS slice is copied so that callers may
// reuse or mutate their own slice afterwards.
func NewRule(lhs Symbol, rhs []Symbol, logProb float64) Rule {
	cp := make([]Symbol, len(rhs))
	copy(cp, rhs)
	return Rule{LHS: lhs, RHS: cp, LogProb: logProb}
}

// IsEmpty reports whether the rule has an empty RHS (an epsilon production).
func (r Rule) IsEmpty() bool { return len(r.RHS) == 0 }

// String renders a rule in the bar grammar's own notation, so that CLI
// derivation dumps (spec §6) can simply print a Rule value.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteString(r.LHS.String())
	b.WriteString(" ||| ")
	for i, s := range r.RHS {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.String())
	}
	b.WriteString(" ||| ")
	b.WriteString(formatWeight(r.LogProb))
	return b.String()
}

func formatWeight(w float64) string {
	// %g keeps short decimals readable while never losing precision for
	// the log-domain weights we actually deal with.
	return trimFloat(w)
}
