// Package pipeline implements a cycle-by-cycle model of a classic in-order
// instruction pipeline with data-hazard stalling and branch misprediction
// recovery.
//
// The engine owns a backlog of not-yet-fetched instructions, one occupancy
// slot per stage, and a branch predictor. Each AdvanceCycle call applies one
// full state transition: hazard check, branch prediction, stage shift (with
// stall bubbling when a RAW hazard is detected), branch resolution with
// wrong-path squash, and a per-cycle snapshot appended to the timeline.
package pipeline

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/hazardlab/pipesim/insts"
)

// Stage indices with architectural meaning. The engine requires at least
// three stages so that both exist.
const (
	slotDecode  = 1
	slotExecute = 2
)

// SlotEntry ties a fetched instruction to its program-order index. The index
// is assigned once, at fetch time, from the timeline's length at that moment;
// squashed instructions leave a permanent gap in the index sequence.
type SlotEntry struct {
	Index int
	Inst  *insts.Instruction
}

// Statistics holds pipeline performance statistics.
type Statistics struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Fetched is the number of instructions fetched from the backlog.
	Fetched uint64
	// Retired is the number of instructions that completed the final stage.
	Retired uint64
	// Squashed is the number of wrong-path instructions discarded.
	Squashed uint64
	// Stalls is the number of data-hazard stall cycles.
	Stalls uint64
	// Flushes is the number of pipeline flushes due to mispredictions.
	Flushes uint64
	// Predictions is the total number of branch predictions made.
	Predictions uint64
	// Correct is the number of correct branch predictions.
	Correct uint64
	// Mispredictions is the number of branch mispredictions.
	Mispredictions uint64
}

// CPI returns the cycles per retired instruction.
func (s Statistics) CPI() float64 {
	if s.Retired == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Retired)
}

// Accuracy returns the branch prediction accuracy as a percentage.
func (s Statistics) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// EngineOption is a functional option for configuring the Engine.
type EngineOption func(*Engine)

// Engine is the pipeline simulation engine. It is single-threaded and
// step-driven: AdvanceCycle must run to completion before observers read
// state or the next call is made.
type Engine struct {
	sim.HookableBase

	stages    []string
	slots     []*SlotEntry
	backlog   []*insts.Instruction
	predictor Predictor

	hazardUnit *HazardUnit
	timeline   Timeline

	cycle uint64
	stats Statistics
}

// NewEngine creates an engine for the given stage names, instruction
// sequence, and branch predictor. At least three stages are required: the
// hazard check and branch logic assume a decode slot at index 1 and an
// execute slot at index 2.
func NewEngine(
	stages []string,
	prog []*insts.Instruction,
	predictor Predictor,
	opts ...EngineOption,
) (*Engine, error) {
	if len(stages) < 3 {
		return nil, fmt.Errorf(
			"pipeline: need at least 3 stages, got %d", len(stages))
	}
	if predictor == nil {
		return nil, fmt.Errorf("pipeline: predictor must not be nil")
	}

	e := &Engine{
		stages:     append([]string(nil), stages...),
		slots:      make([]*SlotEntry, len(stages)),
		backlog:    append([]*insts.Instruction(nil), prog...),
		predictor:  predictor,
		hazardUnit: NewHazardUnit(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Cycle returns the current cycle number.
func (e *Engine) Cycle() uint64 {
	return e.cycle
}

// Stalls returns the number of stall cycles so far.
func (e *Engine) Stalls() uint64 {
	return e.stats.Stalls
}

// Flushes returns the number of misprediction flushes so far.
func (e *Engine) Flushes() uint64 {
	return e.stats.Flushes
}

// Stages returns the stage name list.
func (e *Engine) Stages() []string {
	return append([]string(nil), e.stages...)
}

// Slots returns the current slot occupancy, stage 0 first. Empty slots are
// nil.
func (e *Engine) Slots() []*SlotEntry {
	return append([]*SlotEntry(nil), e.slots...)
}

// BacklogLen returns the number of instructions not yet fetched.
func (e *Engine) BacklogLen() int {
	return len(e.backlog)
}

// Timeline returns the full per-cycle event trace.
func (e *Engine) Timeline() Timeline {
	return append(Timeline(nil), e.timeline...)
}

// Stats returns pipeline statistics.
func (e *Engine) Stats() Statistics {
	return e.stats
}

// IsDone returns true when the backlog is empty and every slot is empty.
func (e *Engine) IsDone() bool {
	if len(e.backlog) > 0 {
		return false
	}
	for _, entry := range e.slots {
		if entry != nil {
			return false
		}
	}
	return true
}

// Run advances the engine until IsDone reports true.
func (e *Engine) Run() {
	for !e.IsDone() {
		e.AdvanceCycle()
	}
}

// RunCycles advances the engine for up to n cycles. Returns true if the
// simulation is still running, false if it completed.
func (e *Engine) RunCycles(n uint64) bool {
	for i := uint64(0); i < n && !e.IsDone(); i++ {
		e.AdvanceCycle()
	}
	return !e.IsDone()
}

// AdvanceCycle applies one full cycle transition and appends the cycle's
// record to the timeline.
//
// The hazard check and branch prediction examine the pre-shift decode and
// execute occupants; branch resolution examines the post-shift execute
// occupant. The ordering is load-bearing: a stall and a misprediction can
// both fire in the same cycle because they check different occupants.
//
// Calling AdvanceCycle after IsDone is safe: the cycle counter advances and
// an all-empty record is appended, but backlog and slots are unchanged.
func (e *Engine) AdvanceCycle() {
	e.cycle++
	e.stats.Cycles++
	rec := CycleRecord{Cycle: e.cycle}

	last := len(e.slots) - 1

	// RAW hazard between the decode and execute occupants requires a stall.
	stall := e.slots[slotDecode] != nil && e.slots[slotExecute] != nil &&
		e.hazardUnit.DetectRAW(
			e.slots[slotDecode].Inst, e.slots[slotExecute].Inst)

	// Predict on the pre-shift decode occupant.
	if d := e.slots[slotDecode]; d != nil &&
		d.Inst.IsBranch && !d.Inst.Predicted.Known() {
		taken := e.predictor.Predict(d.Inst)
		d.Inst.Predicted.Set(taken)
		e.stats.Predictions++

		status := StatusPredNotTaken
		if taken {
			status = StatusPredTaken
		}
		rec.Events = append(rec.Events, Event{
			Kind:   EventPrediction,
			Index:  d.Index,
			Slot:   slotDecode,
			Status: status,
		})
	}

	if e.slots[last] != nil {
		e.stats.Retired++
	}

	if stall {
		e.stats.Stalls++
		rec.Events = append(rec.Events, Event{
			Kind:   EventStall,
			Status: StatusDataStall,
		})

		// Shift execute and later stages only; the execute slot becomes a
		// bubble while fetch and decode stay frozen. No fetch happens, so no
		// program-order index is consumed.
		for i := last; i > slotExecute; i-- {
			e.slots[i] = e.slots[i-1]
		}
		e.slots[slotExecute] = nil
	} else {
		for i := last; i > 0; i-- {
			e.slots[i] = e.slots[i-1]
		}

		if len(e.backlog) > 0 {
			inst := e.backlog[0]
			e.backlog = e.backlog[1:]
			e.slots[0] = &SlotEntry{Index: len(e.timeline), Inst: inst}
			e.stats.Fetched++
		} else {
			e.slots[0] = nil
		}
	}

	// Resolve the post-shift execute occupant.
	if x := e.slots[slotExecute]; x != nil && x.Inst.IsBranch {
		taken := e.predictor.Resolve(x.Inst)
		x.Inst.Actual.Set(taken)

		if x.Inst.Predicted.Known() && x.Inst.Predicted.Taken() == taken {
			e.stats.Correct++
			rec.Events = append(rec.Events, Event{
				Kind:   EventBranchOutcome,
				Index:  x.Index,
				Status: StatusPredCorrect,
			})
		} else {
			e.stats.Mispredictions++
			e.stats.Flushes++
			rec.Events = append(rec.Events, Event{
				Kind:   EventBranchOutcome,
				Index:  x.Index,
				Status: StatusMispredict,
			})

			// Squash the wrong-path instructions fetched after the branch.
			// They are permanently discarded; their indices are never reused.
			for i := 0; i < slotExecute; i++ {
				if e.slots[i] != nil {
					e.stats.Squashed++
				}
				e.slots[i] = nil
			}
		}
	}

	rec.Stages = make([]string, len(e.slots))
	for i, entry := range e.slots {
		if entry != nil {
			rec.Stages[i] = entry.Inst.Name
		}
	}
	e.timeline = append(e.timeline, rec)

	e.InvokeHook(sim.HookCtx{
		Domain: e,
		Pos:    HookPosCycleEnd,
		Item:   rec,
	})
}
