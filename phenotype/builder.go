// Package phenotype translates a genome into a running simulation by
// calling the external Simulation interface's element/interaction methods,
// the way original_source's Solution::buildPhenotype walks a genome's
// genes and calls architecture->addElement/createInteraction.
package phenotype

import (
	"fmt"

	"github.com/dnfneat/dnfneat/genetics"
	"github.com/pkg/errors"
)

// FieldName, KernelName and ConnectionKernelName are the element-naming
// convention the builder uses, exported so an Evaluator can look up a
// specific field by the id it already knows from the genome (the builder
// owns the naming, since it owns the Simulation element namespace).
func FieldName(id uint16) string  { return fmt.Sprintf("nf-%d", id) }
func KernelName(id uint16) string { return fmt.Sprintf("kernel-%d", id) }
func ConnectionKernelName(innovation uint16) string {
	return fmt.Sprintf("conn-kernel-%d", innovation)
}

func fieldName(id uint16) string              { return FieldName(id) }
func kernelName(id uint16) string             { return KernelName(id) }
func connKernelName(innovation uint16) string { return ConnectionKernelName(innovation) }

// Builder assembles a genetics.Simulation from a genome. It holds no state
// of its own: New constructs a fresh, empty Simulation for every call to
// Build, since a phenotype is never reused across generations
// (SPEC_FULL.md §3).
type Builder struct {
	// New constructs an empty Simulation ready to receive elements. Supplied
	// by the task (examples/bump, or any other Evaluator implementation),
	// since the concrete simulator lives outside this module.
	New func() genetics.Simulation
}

// NewBuilder returns a Builder that creates simulations via newFn.
func NewBuilder(newFn func() genetics.Simulation) *Builder {
	return &Builder{New: newFn}
}

// Build implements genetics.PhenotypeBuilder: for every field gene, add its
// neural field and self-kernel with a bidirectional interaction; for every
// enabled connection gene, add its kernel and wire source->kernel->target.
// Disabled connections are omitted (SPEC_FULL.md §4.7).
func (b *Builder) Build(genome *genetics.Genome) (genetics.Simulation, error) {
	if b.New == nil {
		return nil, errors.New("phenotype: Builder.New is nil, no simulation constructor configured")
	}
	sim := b.New()

	for _, fg := range genome.FieldGenes {
		name, selfKernel := fieldName(fg.ID), kernelName(fg.ID)
		if err := sim.AddElement(name, genetics.ElementSpec{
			Kind:  genetics.FieldElement,
			Field: fg.Params,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to add field element %s", name)
		}
		if err := sim.AddElement(selfKernel, genetics.ElementSpec{
			Kind:   genetics.KernelElement,
			Kernel: fg.SelfKernel,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to add self-kernel element %s", selfKernel)
		}
		if err := sim.CreateInteraction(name, "output", selfKernel); err != nil {
			return nil, err
		}
		if err := sim.CreateInteraction(selfKernel, "output", name); err != nil {
			return nil, err
		}
	}

	for _, cg := range genome.ConnectionGenes {
		if !cg.Enabled {
			continue
		}
		kName := connKernelName(cg.InnovationNum)
		if err := sim.AddElement(kName, genetics.ElementSpec{
			Kind:   genetics.KernelElement,
			Kernel: cg.Kernel,
		}); err != nil {
			return nil, errors.Wrapf(err, "failed to add connection kernel element %s", kName)
		}
		source := fieldName(cg.Tuple.InFieldID)
		target := fieldName(cg.Tuple.OutFieldID)
		if err := sim.CreateInteraction(source, "output", kName); err != nil {
			return nil, err
		}
		if err := sim.CreateInteraction(kName, "output", target); err != nil {
			return nil, err
		}
	}

	if err := sim.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize simulation")
	}
	return sim, nil
}
