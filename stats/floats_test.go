package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloats_BasicStatistics(t *testing.T) {
	x := Floats{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, x.Min())
	assert.Equal(t, 5.0, x.Max())
	assert.Equal(t, 15.0, x.Sum())
	assert.Equal(t, 3.0, x.Mean())
	assert.Equal(t, 3.0, x.Median())
}

func TestFloats_QuantilesSortUnorderedInput(t *testing.T) {
	x := Floats{5, 1, 3, 4, 2}
	assert.Equal(t, 3.0, x.Median())
	assert.Equal(t, 1.0, x.Min())
	assert.Equal(t, 5.0, x.Max())
	// Min/Max/Sum/Mean must not be affected by quantile's internal sort.
	assert.Equal(t, Floats{5, 1, 3, 4, 2}, x)
}

func TestFloats_EmptyReturnsNaN(t *testing.T) {
	var x Floats
	assert.True(t, math.IsNaN(x.Mean()))
	assert.True(t, math.IsNaN(x.StdDev()))
	mv := x.MeanVariance()
	assert.True(t, math.IsNaN(mv[0]))
	assert.True(t, math.IsNaN(mv[1]))
}
