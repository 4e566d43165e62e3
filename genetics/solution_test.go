package genetics

import (
	"testing"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolution_Initialize_CreatesConfiguredTopology(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.NumInput, opts.NumOutput = 3, 2
	eng := engine.New(5)

	s := NewSolution()
	s.Initialize(opts, eng)

	var inputs, outputs int
	for _, fg := range s.Genome.FieldGenes {
		switch fg.Type {
		case Input:
			inputs++
		case Output:
			outputs++
		}
	}
	assert.Equal(t, 3, inputs)
	assert.Equal(t, 2, outputs)
	assert.Equal(t, 3, s.Initial.NumInput)
	assert.Equal(t, 2, s.Initial.NumOutput)
}

func TestSolution_Initialize_NoInitialConnectionsWhenProbabilityZero(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PInitialConnection = 0
	eng := engine.New(1)

	s := NewSolution()
	s.Initialize(opts, eng)
	assert.Empty(t, s.Genome.ConnectionGenes)
}

func TestSolution_Initialize_AllInitialConnectionsWhenProbabilityOne(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.NumInput, opts.NumOutput = 2, 3
	opts.PInitialConnection = 1
	eng := engine.New(1)

	s := NewSolution()
	s.Initialize(opts, eng)
	assert.Len(t, s.Genome.ConnectionGenes, 6)
}

func TestSolution_Crossover_OffspringInheritsMoreFitFieldGenes(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(42)

	a := NewSolution()
	a.Initialize(opts, eng)
	a.Parameters.Fitness = 1.0

	b := NewSolution()
	b.Initialize(opts, eng)
	b.Parameters.Fitness = 0.2
	require.NoError(t, b.Mutate(opts, eng))

	child := a.Crossover(b, eng)
	assert.Len(t, child.Genome.FieldGenes, len(a.Genome.FieldGenes))
}

func TestSolution_Crossover_MatchingGenesComeFromEitherParent(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(3)

	a := NewSolution()
	a.Initialize(opts, eng)
	a.Parameters.Fitness = 0.5
	b := a.Clone()
	b.Parameters.Fitness = 0.5

	child := a.Crossover(b, eng)
	for _, cg := range child.Genome.ConnectionGenes {
		_, ok := a.Genome.ConnectionByInnovation(cg.InnovationNum)
		assert.True(t, ok, "child connection gene must trace to a parent innovation")
	}
}

func TestSolution_Clone_IsIndependent(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(1)
	s := NewSolution()
	s.Initialize(opts, eng)
	s.Parameters.Fitness = 0.7

	clone := s.Clone()
	clone.Parameters.Fitness = 0.1
	assert.Equal(t, 0.7, s.Parameters.Fitness)
	assert.True(t, s.Genome.IsEqual(clone.Genome))
}
