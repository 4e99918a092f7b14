package slicevar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wazizlab/parseforest/rng"
	"github.com/wazizlab/parseforest/semiring"
)

func TestThresholdIsStableAcrossRepeatedAccess(t *testing.T) {
	rng.Seed(1)
	s := NewStore(1, 1)
	k := Key{Name: "NP", I: 0, J: 2}

	first := s.Threshold(k)
	second := s.Threshold(k)
	assert.Equal(t, first, second)
}

func TestAdmitsComparesAgainstThreshold(t *testing.T) {
	rng.Seed(1)
	s := NewStore(1, 1)
	k := Key{Name: "NP", I: 0, J: 2}

	u := s.Threshold(k)
	assert.True(t, s.Admits(k, u+1))
	assert.False(t, s.Admits(k, u-1))
}

func TestResetAfterSampleAppliesConditionTruncation(t *testing.T) {
	rng.Seed(7)
	s := NewStore(1, 1)
	k := Key{Name: "NP", I: 0, J: 2}

	// Condition the key at a very small log-prob, forcing the next draw's
	// upper bound far below 1.
	s.ResetAfterSample(map[Key]float64{k: math.Log(1e-6)}, 2, 2)

	for i := 0; i < 100; i++ {
		s.ResetNoSample()
		u := math.Exp(s.Threshold(k))
		assert.LessOrEqual(t, u, 1e-6+1e-9)
	}
}

func TestResetNoSampleClearsDrawsButKeepsConditions(t *testing.T) {
	rng.Seed(3)
	s := NewStore(1, 1)
	k := Key{Name: "NP", I: 0, J: 2}

	s.ResetAfterSample(map[Key]float64{k: math.Log(0.5)}, 5, 5)
	before := s.Threshold(k)
	s.ResetNoSample()
	after := s.Threshold(k)
	// ResetNoSample forces a fresh draw for k, and that draw must still be
	// truncated to the kept condition's bound, exp(log 0.5) == 0.5.
	assert.NotEqual(t, before, after)
	assert.LessOrEqual(t, math.Exp(before), 0.5+1e-9)
	assert.LessOrEqual(t, math.Exp(after), 0.5+1e-9)
}

func TestWeightReturnsZeroWhenLogPDoesNotClearThreshold(t *testing.T) {
	rng.Seed(1)
	s := NewStore(1, 1)
	k := Key{Name: "NP", I: 0, J: 2}

	u := s.Threshold(k)
	got := s.Weight(k, u-10)
	assert.Equal(t, semiring.Zero, got)
}

func TestWeightReturnsNegativeLogBetaPDFWhenAdmitted(t *testing.T) {
	rng.Seed(1)
	s := NewStore(2, 2)
	k := Key{Name: "NP", I: 0, J: 2}

	u := s.Threshold(k)
	got := s.Weight(k, u+5)
	require.NotEqual(t, semiring.Zero, got)
	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, -logBetaPDF(math.Exp(u), 2, 2), got, 1e-9)
}

func TestBetaSampleStaysInUnitInterval(t *testing.T) {
	rng.Seed(99)
	for i := 0; i < 1000; i++ {
		x := betaSample(0.5, 3.0)
		assert.Greater(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}

func TestBetaSampleTruncatedRespectsUpperBound(t *testing.T) {
	rng.Seed(11)
	for i := 0; i < 500; i++ {
		x := betaSampleTruncated(2, 2, 0.3)
		assert.LessOrEqual(t, x, 0.3)
	}
}

func TestBetaSampleTruncatedAboveOnePassesThrough(t *testing.T) {
	rng.Seed(11)
	x := betaSampleTruncated(2, 2, 1.5)
	assert.Greater(t, x, 0.0)
	assert.Less(t, x, 1.0)
}
