package genetics

import (
	"context"
	"sync"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/pkg/errors"
)

// PhenotypeBuilder builds a Simulation from a genome; implemented by the
// phenotype package. Population depends only on this narrow interface, not
// on the phenotype package itself, so genetics stays import-cycle-free
// (phenotype imports genetics, not the reverse).
type PhenotypeBuilder interface {
	Build(genome *Genome) (Simulation, error)
}

// PopulationControl is the pause/stop flag pair checked between
// generations (SPEC_FULL.md §4.6, §5).
type PopulationControl struct {
	mu      sync.Mutex
	paused  bool
	stopped bool
}

func (c *PopulationControl) Pause()  { c.mu.Lock(); c.paused = true; c.mu.Unlock() }
func (c *PopulationControl) Resume() { c.mu.Lock(); c.paused = false; c.mu.Unlock() }
func (c *PopulationControl) Stop()   { c.mu.Lock(); c.stopped = true; c.mu.Unlock() }
func (c *PopulationControl) Start()  { c.mu.Lock(); c.stopped = false; c.mu.Unlock() }

func (c *PopulationControl) isStopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}

func (c *PopulationControl) isPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Population owns the full set of species for one run, plus the
// generation counter and best-solution tracking the control loop reports.
type Population struct {
	Control    PopulationControl
	Species    []*Species
	Generation int
	Best       *Solution

	// Observer, if set, is notified at the end of every generation; see
	// GenerationObserver.
	Observer GenerationObserver

	opts    *config.Options
	builder PhenotypeBuilder
}

// NewPopulation creates a Population ready to Evolve.
func NewPopulation(opts *config.Options, builder PhenotypeBuilder) *Population {
	return &Population{opts: opts, builder: builder}
}

// Initialize clones seed into opts.PopulationSize independent solutions
// (each separately Initialize()d, so each draws its own field ids), placed
// into a single starting species (SPEC_FULL.md §4.6).
func (p *Population) Initialize(eng *engine.Engine) {
	seed := NewSolution()
	seed.Initialize(p.opts, eng)
	first := NewSpecies(eng.NextSpeciesID(), seed)
	for i := 1; i < p.opts.PopulationSize; i++ {
		sol := NewSolution()
		sol.Initialize(p.opts, eng)
		first.AddSolution(sol)
	}
	first.UpdateRepresentative()
	p.Species = []*Species{first}
}

// GenerationObserver is notified once per generation, after selection and
// aging but before per-generation mutation counters reset and innovation
// numbers clear for the next generation. Optional; Evolve runs the same way
// with no observer attached. Grounded on the teacher's
// experiment.TrialRunObserver (EpochEvaluated hook).
type GenerationObserver interface {
	GenerationEvaluated(p *Population)
}

// Evolve runs the population control loop until endCondition holds, ctx is
// cancelled, or Control is stopped (SPEC_FULL.md §4.6). If ctx carries
// *config.Options (config.NewContext), those options govern the run;
// otherwise the Options supplied to NewPopulation are used.
func (p *Population) Evolve(ctx context.Context, eng *engine.Engine, evaluator Evaluator) error {
	if opts, ok := config.FromContext(ctx); ok {
		p.opts = opts
	}
	if p.opts == nil {
		return config.ErrOptionsNotFound
	}

	p.Initialize(eng)

	for {
		if p.Control.isStopped() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if p.Control.isPaused() {
			continue
		}

		if err := p.evaluateAll(ctx, evaluator); err != nil {
			return errors.Wrap(err, "evaluate phase failed")
		}
		p.speciateAll(eng)
		if err := p.reproduceAndSelect(eng); err != nil {
			return errors.Wrap(err, "reproduce_and_select phase failed")
		}
		p.trackBestSolution()
		p.Generation++
		p.ageMembers()

		if p.Observer != nil {
			p.Observer.GenerationEvaluated(p)
		}
		for _, sol := range p.allSolutions() {
			sol.Genome.ResetGenerationStats()
		}
		eng.Innovations().ClearGeneration()

		if p.endCondition() {
			return nil
		}
		if p.Control.isStopped() {
			return nil
		}
	}
}

// evaluateAll runs Evaluate on every solution. When opts.ParallelEvaluate is
// set, solutions are evaluated concurrently across a bounded worker pool,
// since each owns its own phenotype and shares no mutable state with its
// siblings (SPEC_FULL.md §5).
func (p *Population) evaluateAll(ctx context.Context, evaluator Evaluator) error {
	solutions := p.allSolutions()
	if !p.opts.ParallelEvaluate {
		for _, sol := range solutions {
			if err := p.evaluateOne(ctx, evaluator, sol); err != nil {
				return err
			}
		}
		return nil
	}

	workers := p.opts.EvaluateWorkers
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan *Solution)
	errs := make(chan error, len(solutions))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sol := range jobs {
				errs <- p.evaluateOne(ctx, evaluator, sol)
			}
		}()
	}
	for _, sol := range solutions {
		jobs <- sol
	}
	close(jobs)
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *Population) evaluateOne(ctx context.Context, evaluator Evaluator, sol *Solution) error {
	phenotype, err := p.builder.Build(sol.Genome)
	if err != nil {
		return errors.Wrap(err, "failed to build phenotype")
	}
	defer phenotype.Close()
	return sol.Evaluate(ctx, evaluator, phenotype)
}

func (p *Population) allSolutions() []*Solution {
	var all []*Solution
	for _, sp := range p.Species {
		all = append(all, sp.Members...)
	}
	return all
}

// speciateAll reassigns every solution to a species, per opts.
func (p *Population) speciateAll(eng *engine.Engine) {
	for _, sol := range p.allSolutions() {
		p.Species = speciate(sol, p.Species, p.opts, eng)
	}
	p.Species = removeEmpty(p.Species)
}

// speciateOffspring assigns only the newly produced solutions to a
// species, per SPEC_FULL.md §4.6's resolved open question: existing
// members keep the assignment from the last full speciateAll pass.
func (p *Population) speciateOffspring(offspring []*Solution, eng *engine.Engine) {
	for _, sol := range offspring {
		p.Species = speciate(sol, p.Species, p.opts, eng)
	}
	p.Species = removeEmpty(p.Species)
}

// reproduceAndSelect implements SPEC_FULL.md §4.6 ReproduceAndSelect: adjusted
// fitness, proportional parent sampling, crossover + mutation of
// offspring, culling, and re-speciation of offspring only.
func (p *Population) reproduceAndSelect(eng *engine.Engine) error {
	for _, sp := range p.Species {
		sp.CalculateAdjustedFitness()
	}

	all := p.allSolutions()
	total := 0.0
	for _, sol := range all {
		total += sol.Parameters.AdjustedFitness
	}
	cumulative := make([]float64, len(all))
	running := 0.0
	for i, sol := range all {
		if total > 0 {
			sol.Parameters.ReproductionProbability = sol.Parameters.AdjustedFitness / total
		}
		running += sol.Parameters.ReproductionProbability
		cumulative[i] = running
	}

	// With no fitness signal at all, reproduction probability is undefined
	// and killing the population would only drive it to extinction with no
	// way to replace the dead; skip selection entirely for this generation.
	if total <= 0 {
		return nil
	}

	numToKill := 0
	killPerSpecies := make([]int, len(p.Species))
	for i, sp := range p.Species {
		n := int(float64(len(sp.Members)) * p.opts.KillRatio)
		killPerSpecies[i] = n
		numToKill += n
	}

	var offspring []*Solution
	for i := 0; i < numToKill; i++ {
		parentA := sampleByCumulative(all, cumulative, eng)
		parentB := sampleByCumulative(all, cumulative, eng)
		for parentB == parentA && len(all) > 1 {
			parentB = sampleByCumulative(all, cumulative, eng)
		}
		child := parentA.Crossover(parentB, eng)
		if err := child.Mutate(p.opts, eng); err != nil {
			return err
		}
		offspring = append(offspring, child)
	}

	for i, sp := range p.Species {
		sp.KillLeastFit(killPerSpecies[i])
	}
	p.Species = removeEmpty(p.Species)

	for _, sp := range p.Species {
		sp.OffspringCount = 0
	}
	p.speciateOffspring(offspring, eng)
	return nil
}

func sampleByCumulative(all []*Solution, cumulative []float64, eng *engine.Engine) *Solution {
	if len(all) == 0 {
		return nil
	}
	r := eng.Rand().Float64()
	for i, c := range cumulative {
		if r <= c {
			return all[i]
		}
	}
	return all[len(all)-1]
}

// trackBestSolution keeps a reference to the highest-fitness solution seen
// across the whole run so far; never regresses.
func (p *Population) trackBestSolution() {
	for _, sol := range p.allSolutions() {
		if p.Best == nil || sol.Parameters.Fitness > p.Best.Parameters.Fitness {
			p.Best = sol
		}
	}
}

func (p *Population) ageMembers() {
	for _, sol := range p.allSolutions() {
		sol.Parameters.Age++
	}
}

func (p *Population) endCondition() bool {
	if p.Best != nil && p.Best.Parameters.Fitness > p.opts.TargetFitness {
		return true
	}
	return p.Generation > p.opts.NumGenerations
}
