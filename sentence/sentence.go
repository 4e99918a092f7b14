/*
Package sentence builds the per-input linear wFSA and its accompanying
unknown-word rules (SPEC_FULL.md §4.11), the concrete implementation behind
spec.md §6's sentence-reading entry point.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package sentence

import (
	"strings"

	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/semiring"
	"github.com/wazizlab/parseforest/wfsa"
)

// Vocabulary reports whether a surface form is a known terminal of the
// grammar being parsed against; *grammar.Grammar satisfies it via
// HasTerminal.
type Vocabulary interface {
	HasTerminal(name string) bool
}

// Sentence is a tokenised input line together with the linear wFSA built
// over it (spec.md §4.2's make_linear_fsa, applied to one sentence).
type Sentence struct {
	Tokens []string
	FSA    *wfsa.WFSA
}

// MakeSentence tokenises line by whitespace, builds its linear wFSA, and
// substitutes each out-of-vocabulary token according to unk, returning any
// extra grammar rules the substitution requires (empty for UnkNone, one
// "defaultNT -> substitute" rule per distinct substitute otherwise: the
// surface form for UnkPassthrough, the signature for the Stanford models).
func MakeSentence(line string, vocab Vocabulary, unk UnkModel, defaultNT string) (*Sentence, []grammar.Rule, error) {
	tokens := strings.Fields(line)
	surface := make([]string, len(tokens))
	copy(surface, tokens)

	var extra []grammar.Rule
	seen := make(map[string]struct{})

	for i, tok := range tokens {
		if vocab.HasTerminal(tok) {
			continue
		}
		switch unk {
		case UnkNone:
			// Leave as-is; this token simply won't scan.
			continue
		case UnkPassthrough:
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				extra = append(extra, grammar.NewRule(
					grammar.Nonterminal(defaultNT),
					[]grammar.Symbol{grammar.Terminal(tok)},
					semiring.One,
				))
			}
		default:
			sig := signature(tok, unk)
			surface[i] = sig
			if _, ok := seen[sig]; !ok {
				seen[sig] = struct{}{}
				extra = append(extra, grammar.NewRule(
					grammar.Nonterminal(defaultNT),
					[]grammar.Symbol{grammar.Terminal(sig)},
					semiring.One,
				))
			}
		}
	}

	return &Sentence{Tokens: tokens, FSA: wfsa.MakeLinear(surface)}, extra, nil
}
