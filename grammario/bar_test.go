package grammario

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/grammar"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadBarGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parseforest.grammario")
	defer teardown()

	dir := t.TempDir()
	path := writeFile(t, dir, "g.bar", `
# a comment line, skipped
[S] ||| [NP] [VP] ||| 0
[NP] ||| the dog ||| -0.2
[VP] ||| "runs away" ||| -0.1
`)

	g, err := LoadGrammar(path, Bar, Identity)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())

	rules := g.RulesFor(grammar.Nonterminal("VP"))
	require.Len(t, rules, 1)
	assert.Equal(t, grammar.Terminal("runs away"), rules[0].RHS[0])
	assert.Equal(t, -0.1, rules[0].LogProb)
}

func TestLoadBarGrammarAppliesWeightTransform(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "g.bar", `[S] ||| a ||| 0.5`)

	g, err := LoadGrammar(path, Bar, Log)
	require.NoError(t, err)
	rules := g.RulesFor(grammar.Nonterminal("S"))
	require.Len(t, rules, 1)
	assert.InDelta(t, math.Log(0.5), rules[0].LogProb, 1e-12)
}

func TestLoadBarGrammarRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "g.bar", `[S] ||| a`)

	_, err := LoadGrammar(path, Bar, Identity)
	assert.Error(t, err)
}

func TestLoadBarGrammarRejectsNonNonterminalLHS(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "g.bar", `a ||| b ||| 0`)

	_, err := LoadGrammar(path, Bar, Identity)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("bar")
	require.NoError(t, err)
	assert.Equal(t, Bar, f)

	f, err = ParseFormat("discodop")
	require.NoError(t, err)
	assert.Equal(t, Discodop, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
