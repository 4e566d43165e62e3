package genetics

import (
	"context"
	"testing"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSimulation struct{}

func (fakeSimulation) AddElement(name string, spec ElementSpec) error      { return nil }
func (fakeSimulation) RemoveElement(name string) error                    { return nil }
func (fakeSimulation) CreateInteraction(source, port, target string) error { return nil }
func (fakeSimulation) Field(name string) (NeuralField, error)             { return nil, nil }
func (fakeSimulation) Init() error                                       { return nil }
func (fakeSimulation) Step(ctx context.Context) error                    { return nil }
func (fakeSimulation) Close() error                                      { return nil }

type fakeBuilder struct{}

func (fakeBuilder) Build(genome *Genome) (Simulation, error) { return fakeSimulation{}, nil }

// fakeEvaluator rewards genomes with more enabled connection genes, so the
// population has a real fitness gradient to select on.
type fakeEvaluator struct{}

func (fakeEvaluator) Evaluate(ctx context.Context, sol *Solution, phenotype Simulation) (float64, error) {
	enabled := 0
	for _, cg := range sol.Genome.ConnectionGenes {
		if cg.Enabled {
			enabled++
		}
	}
	return float64(enabled) / 10.0, nil
}

func TestPopulation_Initialize_CreatesConfiguredSize(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PopulationSize = 12
	eng := engine.New(1)
	p := NewPopulation(opts, fakeBuilder{})
	p.Initialize(eng)
	assert.Len(t, p.allSolutions(), 12)
}

func TestPopulation_Evolve_StopsAtGenerationLimit(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PopulationSize = 6
	opts.NumGenerations = 2
	opts.TargetFitness = 1e9 // unreachable, so the generation cap is what stops it
	eng := engine.New(11)
	p := NewPopulation(opts, fakeBuilder{})

	err := p.Evolve(context.Background(), eng, fakeEvaluator{})
	require.NoError(t, err)
	assert.Greater(t, p.Generation, opts.NumGenerations)
	assert.NotNil(t, p.Best)
}

func TestPopulation_Evolve_HonorsContextCancellation(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PopulationSize = 4
	opts.NumGenerations = 1000
	opts.TargetFitness = 1e9
	eng := engine.New(3)
	p := NewPopulation(opts, fakeBuilder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Evolve(ctx, eng, fakeEvaluator{})
	assert.Error(t, err)
}

func TestPopulation_Evolve_StopFlagEndsAtNextBoundary(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PopulationSize = 4
	opts.NumGenerations = 1000
	opts.TargetFitness = 1e9
	eng := engine.New(9)
	p := NewPopulation(opts, fakeBuilder{})
	p.Control.Stop()

	err := p.Evolve(context.Background(), eng, fakeEvaluator{})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Generation)
}

type countingObserver struct {
	calls       int
	generations []int
}

func (o *countingObserver) GenerationEvaluated(p *Population) {
	o.calls++
	o.generations = append(o.generations, p.Generation)
}

func TestPopulation_Evolve_ObserverFiresPerGenerationAndStatsReset(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PopulationSize = 6
	opts.NumGenerations = 3
	opts.TargetFitness = 1e9
	eng := engine.New(5)
	p := NewPopulation(opts, fakeBuilder{})
	obs := &countingObserver{}
	p.Observer = obs

	require.NoError(t, p.Evolve(context.Background(), eng, fakeEvaluator{}))

	assert.Equal(t, p.Generation, obs.calls)
	assert.Equal(t, []int{1, 2, 3, 4}, obs.generations)
	for _, sol := range p.allSolutions() {
		stats := sol.Genome.Stats()
		assert.Zero(t, stats.AddField+stats.MutateField+stats.AddConn+stats.MutateConn+stats.ToggleConn)
	}
}

func TestPopulation_Evolve_UsesOptionsFromContext(t *testing.T) {
	fieldOpts := config.NewDefaultOptions()
	fieldOpts.PopulationSize = 4
	fieldOpts.NumGenerations = 1000
	fieldOpts.TargetFitness = 1e9

	ctxOpts := config.NewDefaultOptions()
	ctxOpts.PopulationSize = 5
	ctxOpts.NumGenerations = 1
	ctxOpts.TargetFitness = 1e9

	eng := engine.New(7)
	p := NewPopulation(fieldOpts, fakeBuilder{})

	ctx := config.NewContext(context.Background(), ctxOpts)
	require.NoError(t, p.Evolve(ctx, eng, fakeEvaluator{}))
	assert.Len(t, p.allSolutions(), 5)
}

func TestPopulation_Evolve_NoOptionsAnywhereFails(t *testing.T) {
	eng := engine.New(1)
	p := NewPopulation(nil, fakeBuilder{})
	err := p.Evolve(context.Background(), eng, fakeEvaluator{})
	assert.ErrorIs(t, err, config.ErrOptionsNotFound)
}

func TestPopulation_InnovationsClearedEachGeneration(t *testing.T) {
	opts := config.NewDefaultOptions()
	opts.PopulationSize = 6
	opts.NumGenerations = 1
	opts.TargetFitness = 1e9
	eng := engine.New(21)
	p := NewPopulation(opts, fakeBuilder{})

	require.NoError(t, p.Evolve(context.Background(), eng, fakeEvaluator{}))
	assert.Equal(t, 0, eng.Innovations().PendingCount())
}
