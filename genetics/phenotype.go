package genetics

import (
	"context"

	"github.com/dnfneat/dnfneat/kernel"
)

// Bump is one localized activation region reported by a NeuralField,
// matching the bump-detection data SPEC_FULL.md §6 expects from the
// external simulator.
type Bump struct {
	Centroid  float64
	Amplitude float64
	Width     float64
}

// NeuralField is the read side of one simulated field element: the shape
// of its activation. Implemented by the external simulator, not by this
// module.
type NeuralField interface {
	GetBumps() []Bump
	GetHighestActivation() float64
}

// ElementKind distinguishes the two kinds of named elements a phenotype is
// built from: neural fields (one per FieldGene) and kernels (one per
// self-kernel or enabled connection gene).
type ElementKind int

const (
	FieldElement ElementKind = iota
	KernelElement
)

// ElementSpec describes one element to add to a Simulation. Exactly one of
// Field/Kernel is meaningful, selected by Kind — mirrors original_source's
// Element base class with NeuralField/Kernel subclasses, flattened to a
// tagged struct the way this module represents KernelVariant.
type ElementSpec struct {
	Kind   ElementKind
	Field  NeuralFieldParams
	Kernel kernel.Kernel
}

// Simulation is the external collaborator a phenotype is built against: an
// arena of named elements and the interactions wired between them, stepped
// forward in time. The neural-field integration itself lives entirely
// outside this module (SPEC_FULL.md §1, "simulator is an external
// collaborator"); this interface is the seam.
type Simulation interface {
	AddElement(name string, spec ElementSpec) error
	RemoveElement(name string) error
	CreateInteraction(sourceName, sourcePort, targetName string) error
	Field(name string) (NeuralField, error)
	Init() error
	Step(ctx context.Context) error
	Close() error
}

// Evaluator is the single hook a task implements: given a built phenotype,
// run it and report a fitness in [0, max_fitness].
type Evaluator interface {
	Evaluate(ctx context.Context, solution *Solution, phenotype Simulation) (float64, error)
}
