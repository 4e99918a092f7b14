/*
Package rng provides the single process-wide pseudo-random source spec §5
requires for reproducibility: every draw in the sampler and the slice
variables goes through this one generator, seeded once at start-up.

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package rng

import (
	"math/rand"
	"sync"
)

var (
	mu  sync.Mutex
	src = rand.New(rand.NewSource(1))
)

// Seed (re)initialises the shared generator. Call once, before any sampling
// work begins; the CLI does this at start-up from --seed or a time-derived
// default.
func Seed(seed int64) {
	mu.Lock()
	defer mu.Unlock()
	src = rand.New(rand.NewSource(seed))
}

// Float64 draws a uniform variate in [0, 1) from the shared generator.
func Float64() float64 {
	mu.Lock()
	defer mu.Unlock()
	return src.Float64()
}

// ExpFloat64 draws a standard-exponential variate, used by the Beta sampler
// (package slicevar) to build Gamma variates via Marsaglia-Tsang.
func ExpFloat64() float64 {
	mu.Lock()
	defer mu.Unlock()
	return src.ExpFloat64()
}

// NormFloat64 draws a standard-normal variate, the other input the
// Marsaglia-Tsang Gamma sampler needs.
func NormFloat64() float64 {
	mu.Lock()
	defer mu.Unlock()
	return src.NormFloat64()
}
