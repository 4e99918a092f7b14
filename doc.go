/*
Package parseforest performs probabilistic parsing and derivation sampling
from weighted context-free grammars intersected with weighted finite-state
automata over input sentences.

Given a grammar G and an automaton A representing a sentence, two
intersection engines — top-down Earley (package earley) and bottom-up
Nederhof (package nederhof) — compute the intersected grammar G∩A as a
shared parse forest (package grammar). Forest machinery (package topsort)
topologically sorts the forest and computes inside weights in the log
semiring (package semiring). A generalised sampler (package sample) then
draws derivations from the forest proportional to their weight.

Package mcmc wraps the inner pipeline with per-annotated-nonterminal slice
variables (package slicevar), producing dependent posterior samples when
the forest is too large to sum exactly.

Package structure:

■ grammar: Symbols, rules and the wCFG rule store shared by the input
grammar and the output forest.

■ wfsa: The deterministic weighted finite-state automaton a sentence is
compiled to.

■ item, agenda: Dotted items and the active/passive sets the intersection
engines drive to a fixpoint.

■ earley, nederhof: The two intersection engines, sharing the engine
interface so a slice-sampling driver can treat them interchangeably.

■ engine: The shared Engine interface and forest-extraction pass common to
both intersection engines.

■ topsort: Topological sort and inside-weight computation over a forest.

■ sample: Ancestral top-down sampling over a forest's inside weights.

■ slicevar: Per-annotated-nonterminal slice variables and their Beta-draw
bookkeeping.

■ mcmc: The slice-sampling driver tying the above together into a Markov
chain over derivations.

■ grammario, sentence, config: Grammar file loading, sentence/unknown-word
handling and optional TOML defaults — the external collaborators of
spec.md §6.

■ cmd/parseforest: The CLI surface (exact and mcmc entry points).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package parseforest
