package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEngine_CountersAreIndependentPerInstance(t *testing.T) {
	e1 := New(1)
	e2 := New(2)

	assert.Equal(t, uint16(1), e1.NextFieldID())
	assert.Equal(t, uint16(2), e1.NextFieldID())
	assert.Equal(t, uint16(1), e2.NextFieldID())
}

func TestInnovations_ReuseWithinGeneration(t *testing.T) {
	e := New(1)
	tuple := ConnectionTuple{InFieldID: 2, OutFieldID: 5}

	first := e.Innovations().NumberFor(tuple)
	second := e.Innovations().NumberFor(tuple)
	assert.Equal(t, first, second, "same tuple within one generation must share an innovation number")

	e.Innovations().ClearGeneration()
	assert.Equal(t, 0, e.Innovations().PendingCount())

	third := e.Innovations().NumberFor(tuple)
	assert.NotEqual(t, first, third, "same tuple in a later generation must get a fresh innovation number")
}

func TestInnovations_DistinctTuplesGetDistinctNumbers(t *testing.T) {
	e := New(1)
	a := e.Innovations().NumberFor(ConnectionTuple{InFieldID: 1, OutFieldID: 2})
	b := e.Innovations().NumberFor(ConnectionTuple{InFieldID: 1, OutFieldID: 3})
	assert.NotEqual(t, a, b)
}
