package genetics

import (
	"math/rand"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/dnfneat/dnfneat/kernel"
)

// ConnectionGene is a directed, innovation-numbered kernel link between two
// field genes. At most one connection gene may exist per (in, out) pair in
// a genome, enabled or disabled (SPEC_FULL.md §3).
type ConnectionGene struct {
	Tuple         engine.ConnectionTuple
	InnovationNum uint16
	Enabled       bool
	Kernel        kernel.Kernel
}

// NewConnectionGene creates a connection gene for tuple, sampling a kernel
// variant and assigning the next innovation number via eng's registry.
func NewConnectionGene(tuple engine.ConnectionTuple, opts *config.Options, eng *engine.Engine) ConnectionGene {
	return ConnectionGene{
		Tuple:         tuple,
		InnovationNum: eng.Innovations().NumberFor(tuple),
		Enabled:       true,
		Kernel:        kernel.New(opts, eng.Rand()),
	}
}

// Clone returns a deep, independent copy preserving the innovation number.
func (c ConnectionGene) Clone() ConnectionGene {
	c.Kernel = c.Kernel.Clone()
	return c
}

// Disable sets Enabled to false.
func (c *ConnectionGene) Disable() { c.Enabled = false }

// Toggle flips Enabled.
func (c *ConnectionGene) Toggle() { c.Enabled = !c.Enabled }

// Mutate performs the three-way connection-gene mutation choice from
// SPEC_FULL.md §4.1: mutate kernel parameters, flip connection sign, or
// switch kernel type.
func (c *ConnectionGene) Mutate(opts *config.Options, rng *rand.Rand) error {
	return c.Kernel.Mutate(opts, rng,
		opts.ConnPMutateKernel, opts.ConnPMutateSignal, opts.ConnPMutateKernelType)
}
