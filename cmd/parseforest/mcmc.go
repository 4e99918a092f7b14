package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/wazizlab/parseforest/earley"
	"github.com/wazizlab/parseforest/engine"
	"github.com/wazizlab/parseforest/grammar"
	"github.com/wazizlab/parseforest/mcmc"
	"github.com/wazizlab/parseforest/nederhof"
	"github.com/wazizlab/parseforest/sentence"
	"github.com/wazizlab/parseforest/slicevar"
	"github.com/wazizlab/parseforest/wfsa"
)

func newMCMCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcmc <grammar> [input]",
		Short: "Slice-sampling MCMC over the sliced forest (spec.md §6 MCMC mode)",
		Args:  cobra.RangeArgs(1, 2),
	}
	common := addCommonFlags(cmd.Flags())

	var burnIn, maxIter int
	var aPair, bPair []float64
	cmd.Flags().IntVar(&burnIn, "burn", 0, "number of burn-in iterations to discard")
	cmd.Flags().IntVar(&maxIter, "max", 10000, "maximum MCMC iterations")
	cmd.Flags().Float64SliceVarP(&aPair, "beta-a", "a", []float64{1, 1}, "Beta shape parameter a: before,after first derivation")
	cmd.Flags().Float64SliceVarP(&bPair, "beta-b", "b", []float64{1, 1}, "Beta shape parameter b: before,after first derivation")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if err := common.resolve(); err != nil {
			return err
		}
		if len(aPair) != 2 || len(bPair) != 2 {
			return fmt.Errorf("io-error: -a and -b each take exactly two comma-separated floats")
		}
		grammarPath, inputPath := positionalArgs(args)

		base, err := common.loadGrammar(grammarPath)
		if err != nil {
			return err
		}
		unk, err := common.unk()
		if err != nil {
			return fmt.Errorf("unknown-algorithm: %w", err)
		}
		root := grammar.Nonterminal(common.start)
		goal := grammar.Nonterminal(common.goal)

		betaBefore := mcmc.BetaParams{A: aPair[0], B: bPair[0]}
		betaAfter := mcmc.BetaParams{A: aPair[1], B: bPair[1]}

		process := func(line string) error {
			return runMCMCSentence(common, base, root, goal, unk, line, betaBefore, betaAfter, burnIn, maxIter)
		}

		lines, interactive, err := readInputLines(inputPath)
		if err != nil {
			return err
		}
		if interactive {
			pterm.Info.Println("reading sentences from the terminal; Ctrl-D to quit")
			return runInteractive(process)
		}
		for _, line := range lines {
			if err := process(line); err != nil {
				return err
			}
		}
		return nil
	}
	return cmd
}

// buildSlicedEngineFactory selects the sliced intersection engine family
// named by --intersection (spec.md §4.8/§6, §7 "unknown-algorithm").
func buildSlicedEngineFactory(intersection string, g *grammar.Grammar, wf *wfsa.WFSA) (mcmc.EngineFactory, error) {
	switch intersection {
	case "earley":
		return func(store *slicevar.Store) engine.Engine {
			return earley.New(g, wf, earley.WithSliceVariables(store))
		}, nil
	case "nederhof":
		return func(store *slicevar.Store) engine.Engine {
			return nederhof.New(g, wf, nederhof.WithSliceVariables(store))
		}, nil
	default:
		return nil, engine.ErrUnknownAlgorithm
	}
}

func runMCMCSentence(
	c *commonFlags,
	base *grammar.Grammar,
	root, goal grammar.Symbol,
	unk sentence.UnkModel,
	line string,
	before, after mcmc.BetaParams,
	burnIn, maxIter int,
) error {
	sent, extra, err := sentence.MakeSentence(line, base, unk, c.defaultSymbol)
	if err != nil {
		return fmt.Errorf("io-error: %w", err)
	}
	g := grammar.New()
	base.Each(func(lhs grammar.Symbol, rules []grammar.Rule) { g.Update(rules) })
	g.Update(extra)

	factory, err := buildSlicedEngineFactory(c.intersection, g, sent.FSA)
	if err != nil {
		reportFatal(err)
		return err
	}

	driver := mcmc.New(factory, mcmc.Config{
		Root:       root,
		Goal:       goal,
		Before:     before,
		After:      after,
		BurnIn:     burnIn,
		NumSamples: c.samples,
		MaxIter:    maxIter,
	})

	samples, err := driver.Run()
	if err != nil {
		reportNoParse(line)
		tracer().Errorf("mcmc: %v", err)
		return nil
	}
	if len(samples) == 0 {
		reportNoParse(line)
		return nil
	}

	draws := make([][]grammar.Rule, len(samples))
	for i, d := range samples {
		draws[i] = d
	}

	fmt.Fprintf(os.Stdout, "# sentence: %s\n", line)
	renderDerivations(os.Stdout, groupDerivations(draws), len(draws), nil)
	return nil
}
