package genetics

import (
	"math/rand"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/dnfneat/dnfneat/kernel"
)

// FieldType distinguishes the three roles a FieldGene can play in a genome.
type FieldType int

const (
	Input FieldType = iota
	Output
	Hidden
)

func (t FieldType) String() string {
	switch t {
	case Input:
		return "input"
	case Output:
		return "output"
	case Hidden:
		return "hidden"
	default:
		return "unknown"
	}
}

// ActivationFunction names the field's activation nonlinearity. Kept as a
// bounded, config-driven enum rather than an injected callback so a gene
// stays plain data (no function values inside a genome that must be
// cloned/compared/serialized).
type ActivationFunction int

const (
	Heaviside ActivationFunction = iota
	Sigmoid
)

// NeuralFieldParams are the per-field dynamics parameters: the membrane
// time constant, resting level, and activation nonlinearity.
type NeuralFieldParams struct {
	Tau                float64
	RestingLevel       float64
	ActivationFunction ActivationFunction
}

// FieldGene is a neural-field node: its own dynamics parameters, a
// self-excitatory kernel, and a noise term. Field genes are value-owned:
// no pointer to a live simulation element is ever stored in a gene (see
// SPEC_FULL.md §9, "shared ownership... re-architect as value-owned").
type FieldGene struct {
	ID         uint16
	Type       FieldType
	Params     NeuralFieldParams
	SelfKernel kernel.Kernel
	Noise      Noise
}

// NewFieldGene creates a FieldGene of the given type with a fresh id drawn
// from eng, sampled self-kernel, and sampled dynamics/noise parameters.
func NewFieldGene(fieldType FieldType, opts *config.Options, eng *engine.Engine) FieldGene {
	rng := eng.Rand()
	return FieldGene{
		ID:   eng.NextFieldID(),
		Type: fieldType,
		Params: NeuralFieldParams{
			Tau:                sampleParamRange(rng, opts.Ranges.Tau),
			RestingLevel:       sampleParamRange(rng, opts.Ranges.RestingLevel),
			ActivationFunction: Heaviside,
		},
		SelfKernel: kernel.New(opts, rng),
		Noise:      NewNoise(opts, rng),
	}
}

// Clone returns a deep, independent copy of g.
func (g FieldGene) Clone() FieldGene {
	g.SelfKernel = g.SelfKernel.Clone()
	g.Noise = g.Noise.Clone()
	return g
}

// Mutate performs the three-way field-gene mutation choice from
// SPEC_FULL.md §4.1: mutate kernel parameters, mutate neural-field
// parameters (step tau, step resting level, or redraw both within their
// bounds), or switch kernel type.
func (g *FieldGene) Mutate(opts *config.Options, rng *rand.Rand) error {
	roll := rng.Float64()
	switch {
	case roll < opts.FieldPMutateKernel:
		return g.SelfKernel.Mutate(opts, rng, 1, 0, 0)
	case roll < opts.FieldPMutateKernel+opts.FieldPMutateNeuralField:
		g.mutateNeuralFieldParams(opts, rng)
		return nil
	default:
		return g.SelfKernel.Mutate(opts, rng, 0, 0, 1)
	}
}

func (g *FieldGene) mutateNeuralFieldParams(opts *config.Options, rng *rand.Rand) {
	switch rng.Intn(3) {
	case 0:
		step := opts.Ranges.Tau.Step
		if rng.Intn(2) == 0 {
			step = -step
		}
		g.Params.Tau = opts.Ranges.Tau.Clamp(g.Params.Tau + step)
	case 1:
		step := opts.Ranges.RestingLevel.Step
		if rng.Intn(2) == 0 {
			step = -step
		}
		g.Params.RestingLevel = opts.Ranges.RestingLevel.Clamp(g.Params.RestingLevel + step)
	default:
		g.Params.Tau = sampleParamRange(rng, opts.Ranges.Tau)
		g.Params.RestingLevel = sampleParamRange(rng, opts.Ranges.RestingLevel)
	}
}
