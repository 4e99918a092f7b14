package grammario

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/wazizlab/parseforest/grammar"
)

func tracer() tracing.Trace {
	return tracing.Select("parseforest.grammario")
}

// loadBar reads a bar-format grammar file: one rule per non-blank,
// non-comment line, "LHS ||| RHS1 RHS2 ... ||| weight", bracketed
// nonterminals, bare or quoted terminals.
func loadBar(path string, transform WeightTransform) (*grammar.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("grammario: opening %s: %w", path, err)
	}
	defer f.Close()

	g := grammar.New()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r, err := parseBarLine(line)
		if err != nil {
			return nil, fmt.Errorf("grammario: %s:%d: %w", path, lineNo, err)
		}
		r.LogProb = transform(r.LogProb)
		g.Add(r)
		tracer().Debugf("loaded rule %s", r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("grammario: reading %s: %w", path, err)
	}
	return g, nil
}

func parseBarLine(line string) (grammar.Rule, error) {
	toks, err := tokenizeLine(line)
	if err != nil {
		return grammar.Rule{}, err
	}
	if len(toks) < 4 {
		return grammar.Rule{}, fmt.Errorf("malformed rule line: %q", line)
	}

	lhs, rest, err := readSymbol(toks)
	if err != nil {
		return grammar.Rule{}, err
	}
	if !lhs.IsNonterminal() {
		return grammar.Rule{}, fmt.Errorf("rule LHS must be a nonterminal: %q", line)
	}
	rest, err = expectBar(rest)
	if err != nil {
		return grammar.Rule{}, err
	}

	var rhs []grammar.Symbol
	for len(rest) > 0 && rest[0].kind != tokBar {
		var sym grammar.Symbol
		sym, rest, err = readSymbol(rest)
		if err != nil {
			return grammar.Rule{}, err
		}
		rhs = append(rhs, sym)
	}
	rest, err = expectBar(rest)
	if err != nil {
		return grammar.Rule{}, err
	}
	if len(rest) != 1 || rest[0].kind != tokNumber {
		return grammar.Rule{}, fmt.Errorf("expected a single weight after the final |||: %q", line)
	}
	w, err := strconv.ParseFloat(rest[0].text, 64)
	if err != nil {
		return grammar.Rule{}, fmt.Errorf("invalid weight %q: %w", rest[0].text, err)
	}
	return grammar.NewRule(lhs, rhs, w), nil
}

func readSymbol(toks []barToken) (grammar.Symbol, []barToken, error) {
	if len(toks) == 0 {
		return grammar.Symbol{}, nil, fmt.Errorf("unexpected end of rule")
	}
	switch toks[0].kind {
	case tokLBRACK:
		if len(toks) < 3 || toks[1].kind != tokWord || toks[2].kind != tokRBRACK {
			return grammar.Symbol{}, nil, fmt.Errorf("malformed bracketed nonterminal")
		}
		return grammar.Nonterminal(toks[1].text), toks[3:], nil
	case tokWord:
		return grammar.Terminal(toks[0].text), toks[1:], nil
	case tokString:
		return grammar.Terminal(strings.Trim(toks[0].text, `"`)), toks[1:], nil
	default:
		return grammar.Symbol{}, nil, fmt.Errorf("unexpected token %q", toks[0].text)
	}
}

func expectBar(toks []barToken) ([]barToken, error) {
	if len(toks) == 0 || toks[0].kind != tokBar {
		return nil, fmt.Errorf("expected ||| separator")
	}
	return toks[1:], nil
}
