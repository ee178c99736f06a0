package pipeline

import (
	"fmt"
	"strings"
)

// Event status strings recorded on the timeline.
const (
	StatusPredTaken    = "PRED:T"
	StatusPredNotTaken = "PRED:N"
	StatusDataStall    = "DATA_STALL"
	StatusMispredict   = "MISPREDICT"
	StatusPredCorrect  = "PRED_CORRECT"
)

// EventKind classifies a timeline event.
type EventKind int

const (
	// EventPrediction records a branch prediction made in the decode slot.
	EventPrediction EventKind = iota
	// EventStall records a data-hazard stall cycle.
	EventStall
	// EventBranchOutcome records a branch resolution (correct or mispredicted).
	EventBranchOutcome
)

// Event is one cycle-local event. Index is the program-order index of the
// instruction the event refers to (unused for stalls). Slot is the stage slot
// the event occurred in (predictions only).
type Event struct {
	Kind   EventKind
	Index  int
	Slot   int
	Status string
}

// CycleRecord is the complete event record for one cycle: the per-stage
// occupancy snapshot (instruction name or "" for an empty slot) plus any
// prediction, stall, and branch-outcome events that fired this cycle.
type CycleRecord struct {
	Cycle  uint64
	Stages []string
	Events []Event
}

// Timeline is the append-only sequence of per-cycle records. It is the sole
// externally observable history of a simulation: replaying the same program
// with a deterministic predictor yields an identical timeline.
type Timeline []CycleRecord

// String renders the timeline as a text table, one line per cycle. Two
// timelines are equal iff their renderings are byte-identical.
func (t Timeline) String() string {
	var b strings.Builder
	for _, rec := range t {
		fmt.Fprintf(&b, "C%d:", rec.Cycle)
		for _, name := range rec.Stages {
			fmt.Fprintf(&b, " [%s]", name)
		}
		for _, ev := range rec.Events {
			switch ev.Kind {
			case EventPrediction:
				fmt.Fprintf(&b, " (i%d@%d %s)", ev.Index, ev.Slot, ev.Status)
			case EventStall:
				fmt.Fprintf(&b, " (%s)", ev.Status)
			case EventBranchOutcome:
				fmt.Fprintf(&b, " (i%d %s)", ev.Index, ev.Status)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
