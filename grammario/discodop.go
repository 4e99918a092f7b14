package grammario

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wazizlab/parseforest/grammar"
)

// loadDiscodop reads disco-dop's PCFG export pair: <prefix>.rules (binary/
// unary internal rules, tab-separated "LHS\tRHS1 RHS2 ...\tweight") and, if
// present, <prefix>.lex (lexical rules, "word\tTAG weight TAG weight ...").
// Column order follows the well-known disco-dop PCFG export convention;
// original_source/ does not include the Python grammar loader this project
// is modelled on, so this is this project's own reading of that convention
// (recorded in DESIGN.md).
func loadDiscodop(prefix string, transform WeightTransform) (*grammar.Grammar, error) {
	g := grammar.New()

	if err := loadDiscodopRules(prefix+".rules", transform, g); err != nil {
		return nil, err
	}

	lexPath := prefix + ".lex"
	if _, err := os.Stat(lexPath); err == nil {
		if err := loadDiscodopLex(lexPath, transform, g); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("grammario: stat %s: %w", lexPath, err)
	}
	return g, nil
}

func loadDiscodopRules(path string, transform WeightTransform, g *grammar.Grammar) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("grammario: opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 3 {
			return fmt.Errorf("grammario: %s:%d: expected 3 tab-separated columns, got %d", path, lineNo, len(cols))
		}
		w, err := strconv.ParseFloat(cols[2], 64)
		if err != nil {
			return fmt.Errorf("grammario: %s:%d: invalid weight %q: %w", path, lineNo, cols[2], err)
		}
		rhsNames := strings.Fields(cols[1])
		rhs := make([]grammar.Symbol, len(rhsNames))
		for i, n := range rhsNames {
			rhs[i] = grammar.Nonterminal(n)
		}
		g.Add(grammar.NewRule(grammar.Nonterminal(cols[0]), rhs, transform(w)))
		tracer().Debugf("loaded discodop rule %s -> %v (%g)", cols[0], rhsNames, w)
	}
	return scanner.Err()
}

func loadDiscodopLex(path string, transform WeightTransform, g *grammar.Grammar) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("grammario: opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 || len(fields)%2 == 0 {
			return fmt.Errorf("grammario: %s:%d: expected word followed by TAG/weight pairs", path, lineNo)
		}
		word := fields[0]
		for i := 1; i < len(fields); i += 2 {
			tag := fields[i]
			w, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return fmt.Errorf("grammario: %s:%d: invalid weight %q: %w", path, lineNo, fields[i+1], err)
			}
			g.Add(grammar.NewRule(grammar.Nonterminal(tag), []grammar.Symbol{grammar.Terminal(word)}, transform(w)))
		}
	}
	return scanner.Err()
}
