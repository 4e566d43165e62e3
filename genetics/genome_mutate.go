package genetics

import (
	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/pkg/errors"
)

// Mutate performs exactly one of the five genome-level mutation actions,
// chosen by the configured probabilities (SPEC_FULL.md §4.2). Probability
// groups are validated by config.Options.Validate before a run starts;
// Mutate defensively re-checks the sum since a mismatch here is a
// programming error and must be fatal (spec.md §4.1 "Failure semantics").
func (g *Genome) Mutate(opts *config.Options, eng *engine.Engine) error {
	sum := opts.PAddField + opts.PMutateField + opts.PAddConn + opts.PMutateConn + opts.PToggleConn
	if diff := sum - 1.0; diff < -1e-6 || diff > 1e-6 {
		return errors.Errorf("genome mutation probabilities must sum to 1, got %f", sum)
	}

	roll := eng.Rand().Float64()
	var err error
	switch {
	case roll < opts.PAddField:
		err = g.mutateAddField(opts, eng)
		g.stats.AddField++
		g.stats.AddFieldTotal++
	case roll < opts.PAddField+opts.PMutateField:
		err = g.mutateField(opts, eng)
		g.stats.MutateField++
		g.stats.MutateFieldTotal++
	case roll < opts.PAddField+opts.PMutateField+opts.PAddConn:
		err = g.mutateAddConnection(opts, eng)
		g.stats.AddConn++
		g.stats.AddConnTotal++
	case roll < opts.PAddField+opts.PMutateField+opts.PAddConn+opts.PMutateConn:
		err = g.mutateConnection(opts, eng)
		g.stats.MutateConn++
		g.stats.MutateConnTotal++
	default:
		err = g.toggleConnection(eng)
		g.stats.ToggleConn++
		g.stats.ToggleConnTotal++
	}
	if err != nil {
		return err
	}

	if dup := g.findDuplicateTuple(); dup {
		config.Warn("mutation produced offspring with duplicate connection genes")
	}
	return nil
}

// mutateAddField implements action 1: pick a random enabled connection,
// disable it, insert a new hidden field gene between its endpoints, and add
// two new connection genes inheriting the disabled connection's kernel.
func (g *Genome) mutateAddField(opts *config.Options, eng *engine.Engine) error {
	idx, ok := g.randomEnabledConnectionIndex(eng)
	if !ok {
		config.Debug("mutateAddField: no enabled connection gene to split, no-op")
		return nil
	}
	split := &g.ConnectionGenes[idx]
	split.Disable()

	hidden := NewFieldGene(Hidden, opts, eng)
	g.addFieldGene(hidden)

	inTuple := engine.ConnectionTuple{InFieldID: split.Tuple.InFieldID, OutFieldID: hidden.ID}
	outTuple := engine.ConnectionTuple{InFieldID: hidden.ID, OutFieldID: split.Tuple.OutFieldID}

	inGene := ConnectionGene{
		Tuple:         inTuple,
		InnovationNum: eng.Innovations().NumberFor(inTuple),
		Enabled:       true,
		Kernel:        split.Kernel.Clone(),
	}
	outGene := ConnectionGene{
		Tuple:         outTuple,
		InnovationNum: eng.Innovations().NumberFor(outTuple),
		Enabled:       true,
		Kernel:        split.Kernel.Clone(),
	}
	g.addConnectionGene(inGene)
	g.addConnectionGene(outGene)
	return nil
}

// mutateField implements action 2: mutate a uniformly random field gene.
func (g *Genome) mutateField(opts *config.Options, eng *engine.Engine) error {
	if len(g.FieldGenes) == 0 {
		return nil
	}
	i := eng.Rand().Intn(len(g.FieldGenes))
	return g.FieldGenes[i].Mutate(opts, eng.Rand())
}

// mutateAddConnection implements action 3: select a random (source,
// target) pair with source in {Input, Hidden} and target in {Hidden,
// Output}; reject duplicates and self-loops; otherwise add a new
// connection gene, reusing this generation's innovation number if the
// tuple was already seen.
func (g *Genome) mutateAddConnection(opts *config.Options, eng *engine.Engine) error {
	tuple, ok := g.randomCandidateTuple(eng)
	if !ok {
		config.Debug("mutateAddConnection: no legal unconnected pair available, no-op")
		return nil
	}
	g.addConnectionGene(NewConnectionGene(tuple, opts, eng))
	return nil
}

// mutateConnection implements action 4: mutate a uniformly random
// connection gene.
func (g *Genome) mutateConnection(opts *config.Options, eng *engine.Engine) error {
	if len(g.ConnectionGenes) == 0 {
		return nil
	}
	i := eng.Rand().Intn(len(g.ConnectionGenes))
	return g.ConnectionGenes[i].Mutate(opts, eng.Rand())
}

// toggleConnection implements action 5: flip Enabled on a uniformly random
// connection gene.
func (g *Genome) toggleConnection(eng *engine.Engine) error {
	if len(g.ConnectionGenes) == 0 {
		return nil
	}
	i := eng.Rand().Intn(len(g.ConnectionGenes))
	g.ConnectionGenes[i].Toggle()
	return nil
}

func (g *Genome) randomEnabledConnectionIndex(eng *engine.Engine) (int, bool) {
	var enabled []int
	for i, cg := range g.ConnectionGenes {
		if cg.Enabled {
			enabled = append(enabled, i)
		}
	}
	if len(enabled) == 0 {
		return 0, false
	}
	return enabled[eng.Rand().Intn(len(enabled))], true
}

// randomCandidateTuple draws a (source, target) pair with source in
// {Input, Hidden} and target in {Hidden, Output}, source != target, that
// is not already connected in g. Returns ok=false if no such pair exists
// (SPEC_FULL.md §8 boundary: "every legal pair already connected: no-op").
func (g *Genome) randomCandidateTuple(eng *engine.Engine) (engine.ConnectionTuple, bool) {
	var sources, targets []FieldGene
	for _, fg := range g.FieldGenes {
		if fg.Type == Input || fg.Type == Hidden {
			sources = append(sources, fg)
		}
		if fg.Type == Hidden || fg.Type == Output {
			targets = append(targets, fg)
		}
	}
	if len(sources) == 0 || len(targets) == 0 {
		return engine.ConnectionTuple{}, false
	}

	const maxAttempts = 50
	for attempt := 0; attempt < maxAttempts; attempt++ {
		src := sources[eng.Rand().Intn(len(sources))]
		dst := targets[eng.Rand().Intn(len(targets))]
		if src.ID == dst.ID {
			continue
		}
		tuple := engine.ConnectionTuple{InFieldID: src.ID, OutFieldID: dst.ID}
		if g.ContainsTuple(tuple) {
			continue
		}
		return tuple, true
	}

	// exhaustively search once the random probes are exhausted, so a
	// nearly-fully-connected genome still gets a definitive answer.
	for _, src := range sources {
		for _, dst := range targets {
			if src.ID == dst.ID {
				continue
			}
			tuple := engine.ConnectionTuple{InFieldID: src.ID, OutFieldID: dst.ID}
			if !g.ContainsTuple(tuple) {
				return tuple, true
			}
		}
	}
	return engine.ConnectionTuple{}, false
}

func (g *Genome) findDuplicateTuple() bool {
	seen := make(map[engine.ConnectionTuple]bool, len(g.ConnectionGenes))
	for _, cg := range g.ConnectionGenes {
		if seen[cg.Tuple] {
			return true
		}
		seen[cg.Tuple] = true
	}
	return false
}
