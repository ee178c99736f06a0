package pipeline

import "github.com/hazardlab/pipesim/insts"

// HazardUnit detects read-after-write data hazards between pipeline stages.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// DetectRAW reports whether consumer reads a register that producer writes.
// A nil producer or consumer means the corresponding stage is empty and no
// hazard exists. The empty register name never matches.
func (h *HazardUnit) DetectRAW(consumer, producer *insts.Instruction) bool {
	if consumer == nil || producer == nil {
		return false
	}
	for _, r := range consumer.Reads {
		if producer.WritesReg(r) {
			return true
		}
	}
	return false
}
