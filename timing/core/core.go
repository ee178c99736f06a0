// Package core provides a high-level façade over the pipeline engine so
// embedding applications depend on one type instead of the engine internals.
package core

import (
	"github.com/hazardlab/pipesim/insts"
	"github.com/hazardlab/pipesim/timing/pipeline"
)

// Core wraps a pipeline engine behind a small driving interface.
type Core struct {
	// Engine is the underlying pipeline engine.
	Engine *pipeline.Engine
}

// NewCore creates a Core simulating prog on a pipeline with the given stage
// names and branch predictor.
func NewCore(
	stages []string,
	prog []*insts.Instruction,
	predictor pipeline.Predictor,
	opts ...pipeline.EngineOption,
) (*Core, error) {
	engine, err := pipeline.NewEngine(stages, prog, predictor, opts...)
	if err != nil {
		return nil, err
	}
	return &Core{Engine: engine}, nil
}

// Tick advances the simulation by one cycle.
func (c *Core) Tick() {
	c.Engine.AdvanceCycle()
}

// Done returns true when the simulation has drained.
func (c *Core) Done() bool {
	return c.Engine.IsDone()
}

// Run advances the simulation until it drains.
func (c *Core) Run() {
	c.Engine.Run()
}

// Stats returns pipeline statistics.
func (c *Core) Stats() pipeline.Statistics {
	return c.Engine.Stats()
}

// Timeline returns the full per-cycle event trace.
func (c *Core) Timeline() pipeline.Timeline {
	return c.Engine.Timeline()
}
