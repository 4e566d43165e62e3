package genetics

import (
	"context"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
)

// Topology records the initial shape a Solution was built with
// (SPEC_FULL.md §3, Solution.initial_topology). Purely observational after
// Initialize runs; mutation/crossover may grow the genome well past it.
type Topology struct {
	NumInput              int
	NumOutput             int
	NumHidden             int
	NumInitialConnections int
}

// Parameters is a Solution's fitness bookkeeping.
type Parameters struct {
	Fitness                 float64
	AdjustedFitness         float64
	ReproductionProbability float64
	Age                     uint32
}

// Solution pairs a Genome with the fitness state and initial-topology
// record a population needs to run selection over it. The phenotype is
// never cached on a Solution: the population control loop builds a fresh
// one for every evaluation and closes it afterwards, per SPEC_FULL.md §3
// ("phenotype_handle ... never cached across generations").
type Solution struct {
	Genome     *Genome
	Initial    Topology
	Parameters Parameters
	speciesID  uint16
	hasSpecies bool
}

// NewSolution wraps an empty genome in a fresh Solution. Call Initialize to
// populate its input/output genes.
func NewSolution() *Solution {
	return &Solution{Genome: NewGenome()}
}

// Initialize creates opts.NumInput input genes and opts.NumOutput output
// genes, then considers every (input, output) pair as a candidate initial
// connection, adding each independently with probability
// opts.PInitialConnection (SPEC_FULL.md §4.4).
func (s *Solution) Initialize(opts *config.Options, eng *engine.Engine) {
	inputs := make([]FieldGene, 0, opts.NumInput)
	for i := 0; i < opts.NumInput; i++ {
		inputs = append(inputs, s.Genome.AddInputGene(opts, eng))
	}
	outputs := make([]FieldGene, 0, opts.NumOutput)
	for i := 0; i < opts.NumOutput; i++ {
		outputs = append(outputs, s.Genome.AddOutputGene(opts, eng))
	}

	numConns := 0
	for _, in := range inputs {
		for _, out := range outputs {
			if eng.Rand().Float64() >= opts.PInitialConnection {
				continue
			}
			tuple := engine.ConnectionTuple{InFieldID: in.ID, OutFieldID: out.ID}
			s.Genome.addConnectionGene(NewConnectionGene(tuple, opts, eng))
			numConns++
		}
	}

	s.Initial = Topology{
		NumInput:              opts.NumInput,
		NumOutput:             opts.NumOutput,
		NumInitialConnections: numConns,
	}
}

// Evaluate runs evaluator against phenotype, a simulation the caller has
// already built from this solution's genome (the population control loop
// owns phenotype construction, via its PhenotypeBuilder, so genetics need
// not import the phenotype package), and records the resulting fitness.
func (s *Solution) Evaluate(ctx context.Context, evaluator Evaluator, phenotype Simulation) error {
	fitness, err := evaluator.Evaluate(ctx, s, phenotype)
	if err != nil {
		return err
	}
	s.Parameters.Fitness = fitness
	return nil
}

// Mutate forwards to the underlying genome.
func (s *Solution) Mutate(opts *config.Options, eng *engine.Engine) error {
	return s.Genome.Mutate(opts, eng)
}

// Clone returns a deep, independent copy of s including its fitness state
// and initial topology record (but not its species assignment, which is
// re-established by the next Speciate pass).
func (s *Solution) Clone() *Solution {
	return &Solution{
		Genome:     s.Genome.Clone(),
		Initial:    s.Initial,
		Parameters: s.Parameters,
	}
}

// Crossover produces a new offspring Solution from s and other, per
// SPEC_FULL.md §4.4: the offspring inherits every field gene of the
// more-fit parent; for each of the more-fit parent's connection genes, a
// matching gene is inherited from either parent uniformly at random, while
// a disjoint/excess gene is inherited from the more-fit parent outright
// (or, on a fitness tie, included with probability 0.5). On a tie, the
// less-fit parent's own non-matching genes are additionally considered,
// each included with probability 0.5, pulling in any field genes they
// reference that the offspring doesn't have yet.
func (s *Solution) Crossover(other *Solution, eng *engine.Engine) *Solution {
	moreFit, lessFit := s, other
	tie := absDiff(s.Parameters.Fitness, other.Parameters.Fitness) < 1e-6
	if !tie && other.Parameters.Fitness > s.Parameters.Fitness {
		moreFit, lessFit = other, s
	}

	child := NewGenome()
	for _, fg := range moreFit.Genome.FieldGenes {
		child.addFieldGene(fg.Clone())
	}

	rng := eng.Rand()
	for _, cg := range moreFit.Genome.ConnectionGenes {
		if matching, ok := lessFit.Genome.ConnectionByInnovation(cg.InnovationNum); ok {
			if rng.Intn(2) == 0 {
				child.addConnectionGene(cg.Clone())
			} else {
				child.addConnectionGene(matching.Clone())
			}
			continue
		}
		if !tie || rng.Float64() < 0.5 {
			child.addConnectionGene(cg.Clone())
		}
	}

	if tie {
		for _, cg := range lessFit.Genome.ConnectionGenes {
			if _, ok := moreFit.Genome.ConnectionByInnovation(cg.InnovationNum); ok {
				continue
			}
			if rng.Float64() >= 0.5 {
				continue
			}
			if !child.HasField(cg.Tuple.InFieldID) {
				if fg, ok := lessFit.Genome.FieldByID(cg.Tuple.InFieldID); ok {
					child.addFieldGene(fg.Clone())
				}
			}
			if !child.HasField(cg.Tuple.OutFieldID) {
				if fg, ok := lessFit.Genome.FieldByID(cg.Tuple.OutFieldID); ok {
					child.addFieldGene(fg.Clone())
				}
			}
			child.addConnectionGene(cg.Clone())
		}
	}

	return &Solution{
		Genome: child,
		Initial: Topology{
			NumInput:  moreFit.Initial.NumInput,
			NumOutput: moreFit.Initial.NumOutput,
		},
	}
}
