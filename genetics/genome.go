package genetics

import (
	"sort"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
)

// Genome is the ordered collection of field genes and connection genes
// that encodes one candidate DNF architecture. Connection genes are kept
// ordered by innovation number (geneInsert discipline).
type Genome struct {
	FieldGenes      []FieldGene
	ConnectionGenes []ConnectionGene

	stats MutationStats
}

// MutationStats counts how many times each mutation kind has fired,
// per-generation and over the genome's lifetime. Purely observational: it
// never drives control flow. Supplements the distilled spec with the
// genome-level statistics original_source tracks (GenomeStatistics).
type MutationStats struct {
	AddField, MutateField, AddConn, MutateConn, ToggleConn                          int
	AddFieldTotal, MutateFieldTotal, AddConnTotal, MutateConnTotal, ToggleConnTotal int
}

// NewGenome returns an empty genome with no genes.
func NewGenome() *Genome {
	return &Genome{}
}

// AddInputGene appends a new Input FieldGene with a fresh id.
func (g *Genome) AddInputGene(opts *config.Options, eng *engine.Engine) FieldGene {
	fg := NewFieldGene(Input, opts, eng)
	g.FieldGenes = append(g.FieldGenes, fg)
	return fg
}

// AddOutputGene appends a new Output FieldGene with a fresh id.
func (g *Genome) AddOutputGene(opts *config.Options, eng *engine.Engine) FieldGene {
	fg := NewFieldGene(Output, opts, eng)
	g.FieldGenes = append(g.FieldGenes, fg)
	return fg
}

// AddHiddenGene appends a new Hidden FieldGene with a fresh id.
func (g *Genome) AddHiddenGene(opts *config.Options, eng *engine.Engine) FieldGene {
	fg := NewFieldGene(Hidden, opts, eng)
	g.FieldGenes = append(g.FieldGenes, fg)
	return fg
}

// addFieldGene inserts an already-built field gene (used by mutation and
// crossover, which clone genes from existing parents rather than sampling
// fresh ones).
func (g *Genome) addFieldGene(fg FieldGene) {
	g.FieldGenes = append(g.FieldGenes, fg)
}

// addConnectionGene inserts cg keeping ConnectionGenes ordered by
// innovation number (geneInsert discipline).
func (g *Genome) addConnectionGene(cg ConnectionGene) {
	i := sort.Search(len(g.ConnectionGenes), func(i int) bool {
		return g.ConnectionGenes[i].InnovationNum >= cg.InnovationNum
	})
	g.ConnectionGenes = append(g.ConnectionGenes, ConnectionGene{})
	copy(g.ConnectionGenes[i+1:], g.ConnectionGenes[i:])
	g.ConnectionGenes[i] = cg
}

// ContainsConnection reports whether g has a connection gene with the same
// innovation number as cg.
func (g *Genome) ContainsConnection(cg ConnectionGene) bool {
	for _, existing := range g.ConnectionGenes {
		if existing.InnovationNum == cg.InnovationNum {
			return true
		}
	}
	return false
}

// ContainsTuple reports whether g already has a connection gene (enabled or
// disabled) for tuple.
func (g *Genome) ContainsTuple(tuple engine.ConnectionTuple) bool {
	for _, cg := range g.ConnectionGenes {
		if cg.Tuple == tuple {
			return true
		}
	}
	return false
}

// HasField reports whether g has a field gene with the given id.
func (g *Genome) HasField(id uint16) bool {
	_, ok := g.FieldByID(id)
	return ok
}

// FieldByID returns the field gene with the given id, if present.
func (g *Genome) FieldByID(id uint16) (FieldGene, bool) {
	for _, fg := range g.FieldGenes {
		if fg.ID == id {
			return fg, true
		}
	}
	return FieldGene{}, false
}

// ConnectionByInnovation returns the connection gene with the given
// innovation number, if present.
func (g *Genome) ConnectionByInnovation(num uint16) (ConnectionGene, bool) {
	for _, cg := range g.ConnectionGenes {
		if cg.InnovationNum == num {
			return cg, true
		}
	}
	return ConnectionGene{}, false
}

// MaxInnovation returns the largest innovation number present, or 0 if the
// genome has no connection genes.
func (g *Genome) MaxInnovation() uint16 {
	var max uint16
	for _, cg := range g.ConnectionGenes {
		if cg.InnovationNum > max {
			max = cg.InnovationNum
		}
	}
	return max
}

// Size is the total gene count, used by the compatibility N normalization.
func (g *Genome) Size() int {
	return len(g.FieldGenes) + len(g.ConnectionGenes)
}

// Clone returns a deep, independent copy of g.
func (g *Genome) Clone() *Genome {
	clone := &Genome{
		FieldGenes:      make([]FieldGene, len(g.FieldGenes)),
		ConnectionGenes: make([]ConnectionGene, len(g.ConnectionGenes)),
		stats:           g.stats,
	}
	for i, fg := range g.FieldGenes {
		clone.FieldGenes[i] = fg.Clone()
	}
	for i, cg := range g.ConnectionGenes {
		clone.ConnectionGenes[i] = cg.Clone()
	}
	return clone
}

// IsEqual reports whether g and other have element-wise equal field-gene
// and connection-gene sequences, including innovation numbers and
// parameter values (the round-trip property from SPEC_FULL.md §8).
func (g *Genome) IsEqual(other *Genome) bool {
	if len(g.FieldGenes) != len(other.FieldGenes) || len(g.ConnectionGenes) != len(other.ConnectionGenes) {
		return false
	}
	for i := range g.FieldGenes {
		if g.FieldGenes[i] != other.FieldGenes[i] {
			return false
		}
	}
	for i := range g.ConnectionGenes {
		if g.ConnectionGenes[i] != other.ConnectionGenes[i] {
			return false
		}
	}
	return true
}

// Stats returns the genome's mutation statistics.
func (g *Genome) Stats() MutationStats { return g.stats }

// ResetGenerationStats zeroes the per-generation mutation counters, keeping
// the lifetime totals.
func (g *Genome) ResetGenerationStats() {
	g.stats.AddField, g.stats.MutateField, g.stats.AddConn = 0, 0, 0
	g.stats.MutateConn, g.stats.ToggleConn = 0, 0
}
