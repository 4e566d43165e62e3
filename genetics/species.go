package genetics

import (
	"sort"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
)

// Species groups solutions whose genetic distance is below the
// compatibility threshold, and carries the fitness-sharing and
// reproduction bookkeeping the population control loop needs per
// generation (SPEC_FULL.md §4.5).
type Species struct {
	ID             uint16
	Representative *Solution
	Members        []*Solution
	OffspringCount int
}

// NewSpecies creates a species with sol as both its sole member and its
// initial representative.
func NewSpecies(id uint16, sol *Solution) *Species {
	sp := &Species{ID: id, Representative: sol}
	sp.Members = append(sp.Members, sol)
	sol.speciesID, sol.hasSpecies = id, true
	return sp
}

// IsCompatible reports whether sol belongs in sp, per the genetic-distance
// formula in genome_compatibility.go.
func (sp *Species) IsCompatible(sol *Solution, opts *config.Options) bool {
	if sp.Representative == nil {
		return true
	}
	return Distance(sp.Representative.Genome, sol.Genome, opts) < opts.CompatThreshold
}

// AddSolution adds sol to sp and marks sol's species assignment, by
// identity (a solution is never added twice).
func (sp *Species) AddSolution(sol *Solution) {
	for _, m := range sp.Members {
		if m == sol {
			return
		}
	}
	sp.Members = append(sp.Members, sol)
	sol.speciesID, sol.hasSpecies = sp.ID, true
}

// RemoveSolution removes sol from sp by identity, if present.
func (sp *Species) RemoveSolution(sol *Solution) {
	for i, m := range sp.Members {
		if m == sol {
			sp.Members = append(sp.Members[:i], sp.Members[i+1:]...)
			return
		}
	}
}

// CalculateAdjustedFitness applies fitness sharing: each member's
// AdjustedFitness is its raw Fitness divided by the species size.
func (sp *Species) CalculateAdjustedFitness() {
	n := float64(len(sp.Members))
	if n == 0 {
		return
	}
	for _, m := range sp.Members {
		m.Parameters.AdjustedFitness = m.Parameters.Fitness / n
	}
}

// UpdateRepresentative sets the representative to the member with the
// highest fitness.
func (sp *Species) UpdateRepresentative() {
	if len(sp.Members) == 0 {
		sp.Representative = nil
		return
	}
	best := sp.Members[0]
	for _, m := range sp.Members[1:] {
		if m.Parameters.Fitness > best.Parameters.Fitness {
			best = m
		}
	}
	sp.Representative = best
}

// TotalAdjustedFitness sums AdjustedFitness over all members.
func (sp *Species) TotalAdjustedFitness() float64 {
	var total float64
	for _, m := range sp.Members {
		total += m.Parameters.AdjustedFitness
	}
	return total
}

// KillLeastFit sorts members by descending fitness and drops the least-fit
// n, returning the removed solutions. n==0 is a no-op; n beyond the
// member count kills everyone.
func (sp *Species) KillLeastFit(n int) []*Solution {
	if n <= 0 || len(sp.Members) == 0 {
		return nil
	}
	sort.SliceStable(sp.Members, func(i, j int) bool {
		return sp.Members[i].Parameters.Fitness > sp.Members[j].Parameters.Fitness
	})
	if n > len(sp.Members) {
		n = len(sp.Members)
	}
	cut := len(sp.Members) - n
	removed := append([]*Solution(nil), sp.Members[cut:]...)
	for _, dead := range removed {
		dead.hasSpecies = false
	}
	sp.Members = sp.Members[:cut]
	return removed
}

// speciate assigns sol to the first species in species that accepts it
// (moving it if its current assignment differs), or creates a new one with
// a fresh id from eng (SPEC_FULL.md §4.6, open question 3: unconditional,
// no population-size check).
func speciate(sol *Solution, species []*Species, opts *config.Options, eng *engine.Engine) []*Species {
	for _, sp := range species {
		if sp.IsCompatible(sol, opts) {
			if sol.hasSpecies && sol.speciesID == sp.ID {
				return species
			}
			removeFromCurrentSpecies(sol, species)
			sp.AddSolution(sol)
			return species
		}
	}
	removeFromCurrentSpecies(sol, species)
	return append(species, NewSpecies(eng.NextSpeciesID(), sol))
}

func removeFromCurrentSpecies(sol *Solution, species []*Species) {
	if !sol.hasSpecies {
		return
	}
	for _, sp := range species {
		if sp.ID == sol.speciesID {
			sp.RemoveSolution(sol)
			return
		}
	}
}

// removeEmpty drops every species with no members.
func removeEmpty(species []*Species) []*Species {
	out := species[:0]
	for _, sp := range species {
		if len(sp.Members) > 0 {
			out = append(out, sp)
		}
	}
	return out
}
