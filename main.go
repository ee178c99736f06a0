// Package main provides the entry point for PipeSim.
// PipeSim is a cycle-by-cycle in-order pipeline simulator.
//
// For the full CLI, use: go run ./cmd/pipesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("PipeSim - In-Order Pipeline Simulator")
	fmt.Println("")
	fmt.Println("Usage: pipesim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -predictor  Branch predictor (taken, nottaken, random, bimodal)")
	fmt.Println("  -seed       Seed for predictor randomness")
	fmt.Println("  -delay      Pause between cycles")
	fmt.Println("  -v          Print per-cycle pipeline state")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/pipesim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/pipesim' instead.")
	}
}
