/*
Command parseforest is the CLI surface of spec.md §6: two entry points,
`exact` and `mcmc`, over a shared grammar-loading, sentence-reading and
derivation-rendering core (SPEC_FULL.md §4.13).

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/wazizlab/parseforest/config"
	"github.com/wazizlab/parseforest/engine"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/grammario"
	"github.com/wazizlab/parseforest/rng"
	"github.com/wazizlab/parseforest/sentence"
)

func tracer() tracing.Trace {
	return tracing.Select("parseforest.cli")
}

// commonFlags are the flags spec.md §6 lists as shared between exact and
// mcmc mode.
type commonFlags struct {
	intersection  string
	log           bool
	start         string
	goal          string
	grammarfmt    string
	unkmodel      string
	defaultSymbol string
	samples       int
	verbose       bool
	configPath    string
	seed          int64
}

func addCommonFlags(fs *pflag.FlagSet) *commonFlags {
	c := &commonFlags{}
	fs.StringVar(&c.intersection, "intersection", "", "intersection algorithm: earley|nederhof (default earley)")
	fs.BoolVar(&c.log, "log", false, "apply natural log to raw grammar weights")
	fs.StringVar(&c.start, "start", "S", "root nonterminal")
	fs.StringVar(&c.goal, "goal", "GOAL", "synthetic goal symbol name")
	fs.StringVar(&c.grammarfmt, "grammarfmt", "", "grammar file format: bar|discodop (default bar)")
	fs.StringVar(&c.unkmodel, "unkmodel", "", "unknown-word model: none|passthrough|stfdbase|stfd4|stfd6 (default none)")
	fs.StringVar(&c.defaultSymbol, "default-symbol", "", "nonterminal unknown-word rules attach to (default UNK)")
	fs.IntVar(&c.samples, "samples", 1, "number of derivations to draw per sentence")
	fs.BoolVar(&c.verbose, "verbose", false, "raise trace level to debug")
	fs.StringVar(&c.configPath, "config", "", "path to an optional TOML defaults file")
	fs.Int64Var(&c.seed, "seed", 0, "PRNG seed (0 = current Unix time, read once at startup)")
	return c
}

// resolve merges an optional config file beneath flags the user left at
// their zero value (SPEC_FULL.md §4.12), rejects an unknown --intersection
// value, and seeds the shared PRNG and tracing level. It must be called
// once, after cobra has parsed flags.
func (c *commonFlags) resolve() error {
	file, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.grammarfmt = config.StringOr(c.grammarfmt, file.GrammarFormat, "bar")
	c.unkmodel = config.StringOr(c.unkmodel, file.UnkModel, "none")
	c.defaultSymbol = config.StringOr(c.defaultSymbol, file.DefaultSymbol, "UNK")
	c.intersection = config.StringOr(c.intersection, file.Intersection, "earley")
	if c.intersection != "earley" && c.intersection != "nederhof" {
		return fmt.Errorf("%w: %q", engine.ErrUnknownAlgorithm, c.intersection)
	}

	seed := c.seed
	if seed == 0 {
		seed = time.Now().Unix()
	}
	rng.Seed(seed)

	level := tracing.LevelInfo
	if c.verbose {
		level = tracing.LevelDebug
	}
	for _, key := range []string{
		"parseforest.cli",
		"parseforest.grammario",
		"parseforest.earley",
		"parseforest.nederhof",
		"parseforest.mcmc",
	} {
		tracing.Select(key).SetTraceLevel(level)
	}
	return nil
}

// loadGrammar loads the grammar file named by args[0] under the resolved
// format/transform, per SPEC_FULL.md §4.10.
func (c *commonFlags) loadGrammar(path string) (*grammar.Grammar, error) {
	format, err := grammario.ParseFormat(c.grammarfmt)
	if err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}
	transform := grammario.Identity
	if c.log {
		transform = grammario.Log
	}
	g, err := grammario.LoadGrammar(path, format, transform)
	if err != nil {
		return nil, fmt.Errorf("io-error: %w", err)
	}
	return g, nil
}

func (c *commonFlags) unk() (sentence.UnkModel, error) {
	return sentence.ParseUnkModel(c.unkmodel)
}

// stdinIsTerminal reports whether stdin looks like an interactive terminal
// rather than a pipe or redirected file, the signal the CLI uses to decide
// between batch-reading and an interactive readline prompt.
func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// readInputLines reads one sentence per line from path, or from stdin if
// path is empty and stdin is not a terminal. It returns (nil, true, nil)
// when the caller should fall back to the interactive prompt instead.
func readInputLines(path string) (lines []string, interactive bool, err error) {
	var r *os.File
	if path != "" {
		r, err = os.Open(path)
		if err != nil {
			return nil, false, fmt.Errorf("io-error: opening %s: %w", path, err)
		}
		defer r.Close()
	} else {
		if stdinIsTerminal() {
			return nil, true, nil
		}
		r = os.Stdin
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("io-error: reading input: %w", err)
	}
	return lines, false, nil
}

// positionalArgs extracts the required grammar path and optional input path
// from a command's positional arguments.
func positionalArgs(args []string) (grammarPath, inputPath string) {
	grammarPath = args[0]
	if len(args) > 1 {
		inputPath = args[1]
	}
	return
}

func reportNoParse(line string) {
	pterm.Warning.Printfln("no parse: %q", line)
	tracer().Infof("no parse for sentence %q", line)
}

func reportFatal(err error) {
	pterm.Error.Printfln("%v", err)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "parseforest",
		Short: "Weighted context-free grammar parsing, intersected with a sentence automaton",
	}
	root.AddCommand(newExactCmd())
	root.AddCommand(newMCMCCmd())
	return root
}
