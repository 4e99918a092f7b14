package main

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/wazizlab/parseforest/grammar"
)

// derivationGroup is one distinct derivation drawn for a sentence, together
// with how many of the N samples produced it (spec.md §6).
type derivationGroup struct {
	rules []grammar.Rule
	count int
	score float64
}

func derivationKey(rules []grammar.Rule) string {
	var b strings.Builder
	for _, r := range rules {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func derivationScore(rules []grammar.Rule) float64 {
	score := 0.0
	for _, r := range rules {
		score += r.LogProb
	}
	return score
}

// groupDerivations collapses repeated samples into distinct derivations
// with multiplicities, sorted in multiplicity-descending order (spec.md
// §6), ties broken by first-seen order for determinism.
func groupDerivations(samples [][]grammar.Rule) []derivationGroup {
	index := make(map[string]int)
	var groups []derivationGroup
	for _, rules := range samples {
		key := derivationKey(rules)
		if i, ok := index[key]; ok {
			groups[i].count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, derivationGroup{rules: rules, count: 1, score: derivationScore(rules)})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].count > groups[j].count })
	return groups
}

// renderDerivations writes the spec.md §6 output block for one sentence.
// insideGoal is non-nil in exact mode, where the true posterior is known
// (prob = exp(score - inside[goal])); it is nil in MCMC mode, where only
// the sample-frequency estimate is available.
func renderDerivations(w io.Writer, groups []derivationGroup, total int, insideGoal *float64) {
	for _, grp := range groups {
		estimate := float64(grp.count) / float64(total)
		if insideGoal != nil {
			prob := math.Exp(grp.score - *insideGoal)
			fmt.Fprintf(w, "# n=%d estimate=%g prob=%g score=%g\n", grp.count, estimate, prob, grp.score)
		} else {
			fmt.Fprintf(w, "# n=%d estimate=%g score=%g\n", grp.count, estimate, grp.score)
		}
		for _, r := range grp.rules {
			fmt.Fprintln(w, r.String())
		}
		fmt.Fprintln(w)
	}
}
