package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedMakesDrawsReproducible(t *testing.T) {
	Seed(123)
	a := []float64{Float64(), Float64(), NormFloat64(), ExpFloat64()}

	Seed(123)
	b := []float64{Float64(), Float64(), NormFloat64(), ExpFloat64()}

	assert.Equal(t, a, b)
}

func TestFloat64InUnitInterval(t *testing.T) {
	Seed(1)
	for i := 0; i < 1000; i++ {
		x := Float64()
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}
