// Package main provides the entry point for PipeSim.
// PipeSim is a cycle-by-cycle 5-stage pipeline simulator with data-hazard
// stalling and branch misprediction recovery.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazardlab/pipesim/program"
	"github.com/hazardlab/pipesim/timing/pipeline"
)

var (
	predictorMode = flag.String("predictor", "nottaken",
		"Branch predictor: taken, nottaken, random, or bimodal")
	seed    = flag.Int64("seed", 0, "Seed for predictor randomness")
	delay   = flag.Duration("delay", 0, "Pause between cycles (e.g. 600ms)")
	verbose = flag.Bool("v", false, "Print per-cycle pipeline state")
)

func main() {
	flag.Parse()

	predictor, err := newPredictor(*predictorMode, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.PrintDefaults()
		os.Exit(1)
	}

	var opts []pipeline.EngineOption
	if *verbose {
		opts = append(opts, pipeline.WithObserver(printCycle))
	}

	engine, err := pipeline.NewEngine(
		program.DefaultStages(), program.Sample(), predictor, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for !engine.IsDone() {
		engine.AdvanceCycle()
		if *delay > 0 {
			time.Sleep(*delay)
		}
	}

	fmt.Print(engine.Timeline())

	stats := engine.Stats()
	fmt.Printf("\nCycles:  %d\n", stats.Cycles)
	fmt.Printf("Stalls:  %d\n", stats.Stalls)
	fmt.Printf("Flushes: %d\n", stats.Flushes)
	fmt.Printf("Retired: %d  Squashed: %d\n", stats.Retired, stats.Squashed)
	if stats.Predictions > 0 {
		fmt.Printf("Branch accuracy: %.1f%% (%d/%d)\n",
			stats.Accuracy(), stats.Correct, stats.Predictions)
	}
	fmt.Printf("CPI: %.2f\n", stats.CPI())
}

// newPredictor builds the predictor selected on the command line.
func newPredictor(mode string, seed int64) (pipeline.Predictor, error) {
	switch mode {
	case "taken":
		return pipeline.NewStaticTaken(seed), nil
	case "nottaken":
		return pipeline.NewStaticNotTaken(seed), nil
	case "random":
		return pipeline.NewRandom(seed), nil
	case "bimodal":
		return pipeline.NewBimodal(pipeline.BimodalConfig{Seed: seed}), nil
	default:
		return nil, fmt.Errorf("unknown predictor %q", mode)
	}
}

// printCycle is the per-cycle observer. It pulls fresh state from the engine
// after each fully applied cycle.
func printCycle(e *pipeline.Engine) {
	fmt.Printf("Cycle %d:", e.Cycle())
	stages := e.Stages()
	for i, entry := range e.Slots() {
		name := "-"
		if entry != nil {
			name = entry.Inst.Name
		}
		fmt.Printf("  %s=%s", stages[i], name)
	}
	fmt.Println()
}
