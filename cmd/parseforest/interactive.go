package main

import (
	"io"

	"github.com/chzyer/readline"
)

// runInteractive drives an interactive readline prompt (SPEC_FULL.md §4.13),
// reading one sentence at a time and invoking process for each, until EOF
// (Ctrl-D) or an interrupt.
func runInteractive(process func(line string) error) error {
	rl, err := readline.New("sentence> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if err := process(line); err != nil {
			return err
		}
	}
}
