package genetics

import (
	"math/rand"

	"github.com/dnfneat/dnfneat/config"
)

// Noise is a FieldGene's noise parameters. It is modeled after this
// lineage's Trait type (a small learned parameter vector) rather than the
// richer NEAT trait system, which has no counterpart in a DNF genome: a
// field's noise here is just its own sampled amplitude, not a shared,
// indexed trait pool. Never itself mutated after sampling: FieldGene's
// three mutation actions (kernel params / neural-field params / kernel
// type switch) never touch it, matching original_source's field_gene.cpp.
type Noise struct {
	Amplitude float64
}

// NewNoise samples a noise amplitude within the configured bounds.
func NewNoise(opts *config.Options, rng *rand.Rand) Noise {
	return Noise{Amplitude: sampleParamRange(rng, opts.Ranges.NoiseAmplitude)}
}

// Clone returns an independent copy.
func (n Noise) Clone() Noise { return n }

func sampleParamRange(rng *rand.Rand, r config.ParamRange) float64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}
