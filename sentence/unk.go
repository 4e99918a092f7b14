package sentence

import (
	"errors"
	"strings"
	"unicode"
)

// UnkModel selects how out-of-vocabulary tokens are handled when building a
// Sentence (SPEC_FULL.md §4.11).
type UnkModel int

const (
	// UnkNone leaves unknown tokens as-is; they will simply fail to scan,
	// producing a no-parse for that sentence (spec.md §6's default).
	UnkNone UnkModel = iota
	// UnkPassthrough substitutes the literal surface form as a fresh
	// terminal and adds defaultNT -> <token> with weight 1 (log 0).
	UnkPassthrough
	// UnkStfdBase buckets every unknown token into a single UNK class.
	UnkStfdBase
	// UnkStfd4 adds three orthographic features to the base class: digit
	// presence, hyphenation, capitalisation.
	UnkStfd4
	// UnkStfd6 adds two more: a one/two/three+ character token-length
	// bucket and an all-caps flag.
	UnkStfd6
)

// ErrUnknownUnkModel is returned by ParseUnkModel for an unrecognised name.
var ErrUnknownUnkModel = errors.New("sentence: unknown unk model")

// ParseUnkModel maps a CLI --unkmodel value onto an UnkModel.
func ParseUnkModel(name string) (UnkModel, error) {
	switch name {
	case "none":
		return UnkNone, nil
	case "passthrough":
		return UnkPassthrough, nil
	case "stfdbase":
		return UnkStfdBase, nil
	case "stfd4":
		return UnkStfd4, nil
	case "stfd6":
		return UnkStfd6, nil
	default:
		return UnkNone, ErrUnknownUnkModel
	}
}

// signature classifies token under model, returning the surface form the
// sentence should use in place of the unknown word. UnkNone and
// UnkPassthrough never call this (they use the token itself); it exists for
// the Stanford-signature family only.
//
// Exact feature definitions are this project's own reading of the
// "stfdbase/stfd4/stfd6" names (the original reader.py/unk module was not
// retrieved) — see DESIGN.md's Open Question resolution.
func signature(token string, model UnkModel) string {
	base := "UNK"
	if model == UnkStfdBase {
		return base
	}

	hasDigit, hasHyphen, hasCap := false, false, false
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == '-':
			hasHyphen = true
		case unicode.IsUpper(r):
			hasCap = true
		}
	}

	feat4 := base
	if hasDigit {
		feat4 += "-DIGIT"
	}
	if hasHyphen {
		feat4 += "-HYPHEN"
	}
	if hasCap {
		feat4 += "-CAP"
	}
	if model == UnkStfd4 {
		return feat4
	}

	allCaps := len(token) > 0 && strings.ToUpper(token) == token && hasCap
	suffixLen := len([]rune(token))
	bucket := "SHORT"
	switch {
	case suffixLen >= 3:
		bucket = "LONG"
	case suffixLen == 2:
		bucket = "MED"
	}
	feat6 := feat4 + "-" + bucket
	if allCaps {
		feat6 += "-ALLCAP"
	}
	return feat6
}
