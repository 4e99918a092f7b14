package slicevar

import (
	"math"

	"github.com/wazizlab/parseforest/rng"
)

// No example repo in the retrieval pack imports a statistics/distribution
// library (no gonum, no scipy-equivalent anywhere in the corpus), so the
// Beta(a, b) sampler below is written from scratch against the standard
// library's math/rand primitives via the shared rng package — see
// DESIGN.md's justification for this one standard-library-only corner.

// gammaSample draws a Gamma(shape, 1) variate using the Marsaglia-Tsang
// method. shape must be > 0.
func gammaSample(shape float64) float64 {
	if shape < 1 {
		// boost(x) ~ Gamma(shape+1) * U^(1/shape) ~ Gamma(shape)
		u := rng.Float64()
		return gammaSample(shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		x2 := x * x
		if u < 1-0.0331*x2*x2 {
			return d * v
		}
		if math.Log(u) < 0.5*x2+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}

// betaSample draws a Beta(a, b) variate as X/(X+Y) for independent
// Gamma(a,1), Gamma(b,1) variates X, Y — the standard construction.
func betaSample(a, b float64) float64 {
	x := gammaSample(a)
	y := gammaSample(b)
	return x / (x + y)
}

// betaSampleTruncated draws a Beta(a, b) variate conditioned on being at
// most `upper` (in (0,1]), via rejection sampling. Beta draws are cheap, so
// simple rejection — rather than inverting the incomplete Beta function —
// is the pragmatic choice here.
func betaSampleTruncated(a, b, upper float64) float64 {
	if upper >= 1 {
		return betaSample(a, b)
	}
	for i := 0; i < 10000; i++ {
		x := betaSample(a, b)
		if x <= upper {
			return x
		}
	}
	// Pathologically unlikely with reasonable (a, b, upper); fall back to
	// the boundary rather than loop forever.
	return upper
}

// logBetaPDF returns log(pdf_Beta(x; a, b)).
func logBetaPDF(x, a, b float64) float64 {
	if x <= 0 || x >= 1 {
		return math.Inf(-1)
	}
	logNorm, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	logNorm += lb - lab
	return (a-1)*math.Log(x) + (b-1)*math.Log1p(-x) - logNorm
}
