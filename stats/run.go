package stats

import (
	"fmt"
	"io"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// RunStatistics accumulates Generation snapshots across one evolutionary
// run and can persist them either as a simple text log or, for downstream
// plotting/analysis, as an NPZ archive. Adapted from the teacher's
// Experiment/WriteNPZ (per-trial statistics), collapsed to a single run
// since this module has no multi-trial concept.
type RunStatistics struct {
	Generations Generations
}

// Record appends g to the run's history.
func (r *RunStatistics) Record(g Generation) {
	r.Generations = append(r.Generations, g)
}

// BestFitnessPerGeneration returns the run-wide best fitness recorded at
// each generation, in order.
func (r *RunStatistics) BestFitnessPerGeneration() Floats {
	out := make(Floats, len(r.Generations))
	for i, g := range r.Generations {
		out[i] = g.BestFitness
	}
	return out
}

// DiversityPerGeneration returns the species count recorded at each
// generation, in order.
func (r *RunStatistics) DiversityPerGeneration() Floats {
	out := make(Floats, len(r.Generations))
	for i, g := range r.Generations {
		out[i] = float64(g.Diversity)
	}
	return out
}

// WriteText appends one "key: value, ..." line per generation to w, the
// plain persisted-state format named in SPEC_FULL.md §6.
func (r *RunStatistics) WriteText(w io.Writer) error {
	for _, g := range r.Generations {
		fitness, age, complexity := g.Average()
		_, err := fmt.Fprintf(w, "generation: %d, best_fitness: %f, mean_fitness: %f, mean_age: %f, mean_complexity: %f, diversity: %d, mutations: add_field=%d mutate_field=%d add_conn=%d mutate_conn=%d toggle_conn=%d\n",
			g.ID, g.BestFitness, fitness, age, complexity, g.Diversity,
			g.Mutations.AddField, g.Mutations.MutateField, g.Mutations.AddConn, g.Mutations.MutateConn, g.Mutations.ToggleConn)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteNPZ dumps the run's per-generation statistics to an NPZ archive:
// - best_fitness: best fitness per generation
// - mean_fitness, mean_age, mean_complexity: per-generation species-champion
//   averages
// - diversity: species count per generation
// Grounded on the teacher's Experiment.WriteNPZ (gonum mat.Dense rows +
// sbinet/npyio/npz), collapsed from per-trial matrices to per-generation
// vectors since a run here has no trial dimension.
func (r *RunStatistics) WriteNPZ(w io.Writer) error {
	n := len(r.Generations)
	meanFitness := make([]float64, n)
	meanAge := make([]float64, n)
	meanComplexity := make([]float64, n)
	for i, g := range r.Generations {
		f, a, c := g.Average()
		meanFitness[i], meanAge[i], meanComplexity[i] = f, a, c
	}

	out := npz.NewWriter(w)
	if err := out.Write("best_fitness", mat.NewVecDense(n, r.BestFitnessPerGeneration())); err != nil {
		return err
	}
	if err := out.Write("mean_fitness", mat.NewVecDense(n, meanFitness)); err != nil {
		return err
	}
	if err := out.Write("mean_age", mat.NewVecDense(n, meanAge)); err != nil {
		return err
	}
	if err := out.Write("mean_complexity", mat.NewVecDense(n, meanComplexity)); err != nil {
		return err
	}
	if err := out.Write("diversity", mat.NewVecDense(n, r.DiversityPerGeneration())); err != nil {
		return err
	}
	return out.Close()
}
