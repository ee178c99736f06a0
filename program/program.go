// Package program constructs instruction sequences for the simulator.
package program

import "github.com/hazardlab/pipesim/insts"

// DefaultStages returns the classic 5-stage name list.
func DefaultStages() []string {
	return []string{"IF", "ID", "EX", "MEM", "WB"}
}

// Sample returns a small program exercising both hazard paths: a load-use
// RAW dependency (I1/I2) and a conditional branch (I3) followed by two
// independent ALU instructions that get squashed on a misprediction.
func Sample() []*insts.Instruction {
	return []*insts.Instruction{
		insts.NewLoad("I1: LOAD R1", "R1"),
		insts.NewALU("I2: ADD R2,R1", []insts.Reg{"R1"}, []insts.Reg{"R2"}),
		insts.NewBranch("I3: BEQ R2,0 -> LABEL", "R2"),
		insts.NewALU("I4: ADD R3,R5", []insts.Reg{"R5"}, []insts.Reg{"R3"}),
		insts.NewALU("I5: SUB R6,R7", []insts.Reg{"R7"}, []insts.Reg{"R6"}),
	}
}
