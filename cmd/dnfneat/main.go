package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dnfneat/dnfneat/config"
	"github.com/dnfneat/dnfneat/engine"
	"github.com/dnfneat/dnfneat/examples/bump"
	"github.com/dnfneat/dnfneat/genetics"
	"github.com/dnfneat/dnfneat/phenotype"
	"github.com/dnfneat/dnfneat/stats"
)

// The experiment runner boilerplate: load configuration, wire an
// experiment's Evaluator and Simulation constructor, run Evolve, and
// persist per-generation statistics. Grounded on the teacher's root
// executor.go (flag-driven config path, named experiment dispatch).
func main() {
	contextPath := flag.String("context", "./data/dnfneat.yml", "The run configuration file.")
	experimentName := flag.String("experiment", "bump", "The name of the experiment to run. [bump]")
	outDirPath := flag.String("out", "./out", "The output directory to store run statistics.")
	logLevel := flag.String("log_level", "", "Overrides the configured log level.")
	randomSeed := flag.Int64("seed", 0, "Overrides the configured random seed.")
	flag.Parse()

	opts, err := config.ReadOptionsFromFile(*contextPath)
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}
	if *logLevel != "" {
		if err := config.InitLogger(*logLevel); err != nil {
			log.Fatal("failed to apply log_level override: ", err)
		}
	}
	if *randomSeed != 0 {
		opts.RandomSeed = *randomSeed
	}
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if err := os.MkdirAll(*outDirPath, os.ModePerm); err != nil {
		log.Fatal("failed to create output directory: ", err)
	}

	builder, evaluator, err := buildExperiment(*experimentName)
	if err != nil {
		log.Fatal(err)
	}

	eng := engine.New(seed)
	pop := genetics.NewPopulation(opts, builder)

	run := &stats.RunStatistics{}
	pop.Observer = &runRecorder{run: run}

	ctx, cancel := context.WithCancel(config.NewContext(context.Background(), opts))
	defer cancel()
	trapSignals(pop, cancel)

	config.Info(fmt.Sprintf("starting %s experiment, population size %d, seed %d", *experimentName, opts.PopulationSize, seed))
	if err := pop.Evolve(ctx, eng, evaluator); err != nil {
		log.Fatal("evolve failed: ", err)
	}

	logPath := *outDirPath + "/run.log"
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatal("failed to create run log: ", err)
	}
	defer logFile.Close()
	if err := run.WriteText(logFile); err != nil {
		log.Fatal("failed to write run log: ", err)
	}

	if pop.Best != nil {
		config.Info(fmt.Sprintf("best fitness: %f after %d generations", pop.Best.Parameters.Fitness, pop.Generation))
	}
}

// buildExperiment resolves a named experiment to its PhenotypeBuilder and
// Evaluator. The bump task is this module's only bundled example; new
// tasks register themselves here the same way the teacher's executor
// switches on *experimentName.
func buildExperiment(name string) (genetics.PhenotypeBuilder, genetics.Evaluator, error) {
	switch name {
	case "bump":
		b := phenotype.NewBuilder(func() genetics.Simulation { return bump.NewSimulation(0.1) })
		return b, bump.Evaluator{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown experiment: %s", name)
	}
}

// runRecorder implements genetics.GenerationObserver, turning each
// generation boundary into a stats.Generation snapshot appended to run.
type runRecorder struct {
	run *stats.RunStatistics
}

func (r *runRecorder) GenerationEvaluated(p *genetics.Population) {
	var g stats.Generation
	g.ID = p.Generation
	g.FillFromPopulation(p)
	r.run.Record(g)
}

// trapSignals stops pop gracefully (at the next generation boundary, per
// PopulationControl semantics) on SIGINT/SIGTERM, and cancels ctx so a
// stuck evaluate phase unblocks too.
func trapSignals(pop *genetics.Population, cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		config.Warn("received shutdown signal, stopping at next generation boundary")
		pop.Control.Stop()
		cancel()
	}()
}
