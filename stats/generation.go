package stats

import (
	"time"

	"github.com/dnfneat/dnfneat/genetics"
)

// Generation captures one generation's worth of population statistics:
// fitness/age/complexity distributions across species champions, species
// count, and the run-wide best solution seen so far. Adapted from the
// teacher's experiment.Generation (genetics.Organism/Species) to this
// module's genetics.Solution/Species, and purely observational — never
// drives control flow in Population.Evolve.
type Generation struct {
	ID       int
	Executed time.Time
	Duration time.Duration

	// Fitness/Age/Complexity hold one value per species: its best member's
	// fitness, that member's age, and its genome size.
	Fitness    Floats
	Age        Floats
	Complexity Floats

	Diversity int

	BestFitness float64

	// Mutations totals how many times each mutation kind fired across the
	// whole population this generation (genetics.Genome.Stats(), summed
	// over every member and reset by Population.Evolve at the generation
	// boundary).
	Mutations genetics.MutationStats
}

// FillFromPopulation collects per-species statistics from pop, the way
// Generation.FillPopulationStatistics walked pop.Species in the teacher.
func (g *Generation) FillFromPopulation(pop *genetics.Population) {
	g.Diversity = len(pop.Species)
	g.Fitness = make(Floats, g.Diversity)
	g.Age = make(Floats, g.Diversity)
	g.Complexity = make(Floats, g.Diversity)

	for i, sp := range pop.Species {
		champion := sp.Members[0]
		for _, m := range sp.Members[1:] {
			if m.Parameters.Fitness > champion.Parameters.Fitness {
				champion = m
			}
		}
		g.Fitness[i] = champion.Parameters.Fitness
		g.Age[i] = float64(champion.Parameters.Age)
		g.Complexity[i] = float64(champion.Genome.Size())
	}

	if pop.Best != nil {
		g.BestFitness = pop.Best.Parameters.Fitness
	}

	for _, sp := range pop.Species {
		for _, m := range sp.Members {
			ms := m.Genome.Stats()
			g.Mutations.AddField += ms.AddField
			g.Mutations.MutateField += ms.MutateField
			g.Mutations.AddConn += ms.AddConn
			g.Mutations.MutateConn += ms.MutateConn
			g.Mutations.ToggleConn += ms.ToggleConn
			g.Mutations.AddFieldTotal += ms.AddFieldTotal
			g.Mutations.MutateFieldTotal += ms.MutateFieldTotal
			g.Mutations.AddConnTotal += ms.AddConnTotal
			g.Mutations.MutateConnTotal += ms.MutateConnTotal
			g.Mutations.ToggleConnTotal += ms.ToggleConnTotal
		}
	}
}

// Average returns the mean fitness, age, and complexity across species
// champions in this generation.
func (g *Generation) Average() (fitness, age, complexity float64) {
	return g.Fitness.Mean(), g.Age.Mean(), g.Complexity.Mean()
}

// Generations is a time-ordered collection of per-generation snapshots for
// one run.
type Generations []Generation
