package phenotype

import (
	"context"
	"testing"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/dnfneat/dnfneat/genetics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingField struct{}

func (recordingField) GetBumps() []genetics.Bump    { return nil }
func (recordingField) GetHighestActivation() float64 { return 0 }

type recordingSimulation struct {
	elements     map[string]genetics.ElementSpec
	interactions [][3]string
	initCalled   bool
	closed       bool
}

func newRecordingSimulation() *recordingSimulation {
	return &recordingSimulation{elements: make(map[string]genetics.ElementSpec)}
}

func (s *recordingSimulation) AddElement(name string, spec genetics.ElementSpec) error {
	s.elements[name] = spec
	return nil
}

func (s *recordingSimulation) RemoveElement(name string) error {
	delete(s.elements, name)
	return nil
}

func (s *recordingSimulation) CreateInteraction(source, port, target string) error {
	s.interactions = append(s.interactions, [3]string{source, port, target})
	return nil
}

func (s *recordingSimulation) Field(name string) (genetics.NeuralField, error) {
	return recordingField{}, nil
}

func (s *recordingSimulation) Init() error                  { s.initCalled = true; return nil }
func (s *recordingSimulation) Step(ctx context.Context) error { return nil }
func (s *recordingSimulation) Close() error                  { s.closed = true; return nil }

func buildTestGenome(t *testing.T) *genetics.Genome {
	t.Helper()
	opts := config.NewDefaultOptions()
	opts.PInitialConnection = 1
	eng := engine.New(1)
	sol := genetics.NewSolution()
	sol.Initialize(opts, eng)
	require.NoError(t, sol.Mutate(opts, eng))
	return sol.Genome
}

func TestBuilder_Build_AddsOneElementPairPerFieldGene(t *testing.T) {
	genome := buildTestGenome(t)
	var sim *recordingSimulation
	b := NewBuilder(func() genetics.Simulation {
		sim = newRecordingSimulation()
		return sim
	})

	_, err := b.Build(genome)
	require.NoError(t, err)
	assert.True(t, sim.initCalled)

	for _, fg := range genome.FieldGenes {
		assert.Contains(t, sim.elements, fieldName(fg.ID))
		assert.Contains(t, sim.elements, kernelName(fg.ID))
	}
}

func TestBuilder_Build_SkipsDisabledConnections(t *testing.T) {
	genome := buildTestGenome(t)
	require.NotEmpty(t, genome.ConnectionGenes)
	genome.ConnectionGenes[0].Disable()

	var sim *recordingSimulation
	b := NewBuilder(func() genetics.Simulation {
		sim = newRecordingSimulation()
		return sim
	})
	_, err := b.Build(genome)
	require.NoError(t, err)

	disabledKernel := connKernelName(genome.ConnectionGenes[0].InnovationNum)
	assert.NotContains(t, sim.elements, disabledKernel)
}

func TestBuilder_Build_FailsWithoutConstructor(t *testing.T) {
	b := &Builder{}
	_, err := b.Build(genetics.NewGenome())
	assert.Error(t, err)
}
