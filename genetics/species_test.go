package genetics

import (
	"testing"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/stretchr/testify/assert"
)

func TestSpecies_CalculateAdjustedFitness_SharesAcrossMembers(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(1)
	a, b := NewSolution(), NewSolution()
	a.Initialize(opts, eng)
	b.Initialize(opts, eng)
	a.Parameters.Fitness, b.Parameters.Fitness = 1.0, 0.5

	sp := NewSpecies(1, a)
	sp.AddSolution(b)
	sp.CalculateAdjustedFitness()

	assert.Equal(t, 0.5, a.Parameters.AdjustedFitness)
	assert.Equal(t, 0.25, b.Parameters.AdjustedFitness)
	assert.Equal(t, 0.75, sp.TotalAdjustedFitness())
}

func TestSpecies_UpdateRepresentative_PicksHighestFitness(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(1)
	a, b := NewSolution(), NewSolution()
	a.Initialize(opts, eng)
	b.Initialize(opts, eng)
	a.Parameters.Fitness, b.Parameters.Fitness = 0.2, 0.9

	sp := NewSpecies(1, a)
	sp.AddSolution(b)
	sp.UpdateRepresentative()
	assert.Same(t, b, sp.Representative)
}

func TestSpecies_KillLeastFit_DropsTheTail(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(1)
	sols := make([]*Solution, 4)
	for i := range sols {
		sols[i] = NewSolution()
		sols[i].Initialize(opts, eng)
	}
	sols[0].Parameters.Fitness = 0.9
	sols[1].Parameters.Fitness = 0.7
	sols[2].Parameters.Fitness = 0.5
	sols[3].Parameters.Fitness = 0.1

	sp := NewSpecies(1, sols[0])
	sp.AddSolution(sols[1])
	sp.AddSolution(sols[2])
	sp.AddSolution(sols[3])

	removed := sp.KillLeastFit(2)
	assert.Len(t, removed, 2)
	assert.Len(t, sp.Members, 2)
	for _, m := range sp.Members {
		assert.True(t, m.Parameters.Fitness >= 0.5)
	}
}

func TestSpecies_KillLeastFit_ZeroIsNoOp(t *testing.T) {
	opts := config.NewDefaultOptions()
	eng := engine.New(1)
	a := NewSolution()
	a.Initialize(opts, eng)
	sp := NewSpecies(1, a)
	assert.Empty(t, sp.KillLeastFit(0))
	assert.Len(t, sp.Members, 1)
}

func TestSpeciate_CreatesNewSpeciesWhenNoneCompatible(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.CompatThreshold = 0.0001
	eng := engine.New(7)

	a := NewSolution()
	a.Initialize(opts, eng)
	species := []*Species{NewSpecies(eng.NextSpeciesID(), a)}

	b := NewSolution()
	b.Initialize(opts, eng)
	for i := 0; i < 5; i++ {
		_ = b.Mutate(opts, eng)
	}

	species = speciate(b, species, opts, eng)
	assert.Len(t, species, 2)
}

func TestSpeciate_CompatibleSolutionJoinsExistingSpecies(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.CompatThreshold = 1000
	eng := engine.New(7)

	a := NewSolution()
	a.Initialize(opts, eng)
	species := []*Species{NewSpecies(eng.NextSpeciesID(), a)}

	b := a.Clone()
	species = speciate(b, species, opts, eng)
	assert.Len(t, species, 1)
	assert.Len(t, species[0].Members, 2)
}
