package genetics

import "github.com/dnfneat/dnfneat/config"

// Excess counts innovation numbers present in one genome that strictly
// exceed the other genome's maximum innovation number. When either genome
// has no connection genes at all, there is nothing to position the other
// side's genes against, so they are counted as Disjoint instead (matching
// SPEC_FULL.md's own worked example: one empty genome against one with 5
// connection genes is a distance-2.0 disjoint case, not an excess one).
func Excess(a, b *Genome) int {
	if len(a.ConnectionGenes) == 0 || len(b.ConnectionGenes) == 0 {
		return 0
	}
	maxA, maxB := a.MaxInnovation(), b.MaxInnovation()
	count := 0
	switch {
	case maxA > maxB:
		for _, cg := range a.ConnectionGenes {
			if cg.InnovationNum > maxB {
				count++
			}
		}
	case maxB > maxA:
		for _, cg := range b.ConnectionGenes {
			if cg.InnovationNum > maxA {
				count++
			}
		}
	}
	return count
}

// Disjoint counts innovation numbers present in exactly one genome and no
// greater than min(max(a), max(b)); see Excess for the empty-genome case.
func Disjoint(a, b *Genome) int {
	if len(a.ConnectionGenes) == 0 {
		return len(b.ConnectionGenes)
	}
	if len(b.ConnectionGenes) == 0 {
		return len(a.ConnectionGenes)
	}
	minMax := a.MaxInnovation()
	if b.MaxInnovation() < minMax {
		minMax = b.MaxInnovation()
	}
	count := 0
	for _, cg := range a.ConnectionGenes {
		if cg.InnovationNum <= minMax {
			if _, ok := b.ConnectionByInnovation(cg.InnovationNum); !ok {
				count++
			}
		}
	}
	for _, cg := range b.ConnectionGenes {
		if cg.InnovationNum <= minMax {
			if _, ok := a.ConnectionByInnovation(cg.InnovationNum); !ok {
				count++
			}
		}
	}
	return count
}

// AvgConnectionDiff is the mean weighted parameter difference over
// matching (same innovation number) connection genes between a and b; 0 if
// there are no matches.
func AvgConnectionDiff(a, b *Genome, opts *config.Options) float64 {
	var total float64
	var matches int
	for _, cg := range a.ConnectionGenes {
		other, ok := b.ConnectionByInnovation(cg.InnovationNum)
		if !ok {
			continue
		}
		matches++
		total += opts.DistanceAmpCoeff*absDiff(cg.Kernel.Amplitude, other.Kernel.Amplitude) +
			opts.DistanceWidthCoeff*absDiff(cg.Kernel.Width, other.Kernel.Width)
	}
	if matches == 0 {
		return 0
	}
	return total / float64(matches)
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// Distance computes the genetic distance between a and b used for
// speciation: (c1*excess + c2*disjoint + c3*avgConnDiff) / N, with N
// forced to 1 when the larger genome's size is below SmallGenomeCutoff
// (SPEC_FULL.md §4.5).
func Distance(a, b *Genome, opts *config.Options) float64 {
	n := a.Size()
	if b.Size() > n {
		n = b.Size()
	}
	if n < opts.SmallGenomeCutoff {
		n = 1
	}
	excess := float64(Excess(a, b))
	disjoint := float64(Disjoint(a, b))
	weightDiff := AvgConnectionDiff(a, b, opts)
	return (opts.CompatC1*excess + opts.CompatC2*disjoint + opts.CompatC3*weightDiff) / float64(n)
}
