// Package insts provides the instruction model for the pipeline simulator.
//
// Instructions are opaque labeled records of register reads and writes plus a
// branch flag. The engine never interprets the label; hazard detection works
// purely on the read/write register sets. Branch instructions additionally
// carry two prediction-outcome fields that are filled in exactly once during
// simulation, when the instruction passes through decode and execute.
//
// Usage:
//
//	load := insts.NewLoad("I1: LOAD R1", "R1")
//	add := insts.NewALU("I2: ADD R2,R1", []insts.Reg{"R1"}, []insts.Reg{"R2"})
//	beq := insts.NewBranch("I3: BEQ R2,0 -> LABEL", "R2")
package insts

// Reg identifies an architectural register by name (e.g. "R1").
// The empty Reg is never considered a hazard match.
type Reg string

// Outcome is a branch outcome that starts unknown and is set exactly once.
// The zero value is the unknown state.
type Outcome struct {
	known bool
	taken bool
}

// Known reports whether the outcome has been set.
func (o Outcome) Known() bool {
	return o.known
}

// Taken returns the recorded outcome. It panics if the outcome is unknown.
func (o Outcome) Taken() bool {
	if !o.known {
		panic("insts: outcome read before being set")
	}
	return o.taken
}

// Set records the outcome. It panics if the outcome is already known, so a
// double prediction or double resolution fails loudly instead of silently
// overwriting.
func (o *Outcome) Set(taken bool) {
	if o.known {
		panic("insts: outcome set twice")
	}
	o.known = true
	o.taken = taken
}

// Instruction is one program instruction. Name, Reads, Writes, and IsBranch
// are fixed at creation; Predicted and Actual are set once each by the engine
// during simulation and remain unset forever for non-branch instructions.
type Instruction struct {
	// Name is the display label. The engine does not interpret it.
	Name string
	// Reads is the set of registers this instruction consumes.
	Reads []Reg
	// Writes is the set of registers this instruction produces.
	Writes []Reg
	// IsBranch indicates a branch instruction.
	IsBranch bool

	// Predicted is the branch prediction, set when the instruction first
	// occupies the decode slot.
	Predicted Outcome
	// Actual is the resolved branch outcome, set when the instruction first
	// occupies the execute slot.
	Actual Outcome
}

// NewLoad creates a load instruction writing target, optionally reading an
// address source register.
func NewLoad(name string, target Reg, source ...Reg) *Instruction {
	return &Instruction{
		Name:   name,
		Reads:  append([]Reg(nil), source...),
		Writes: []Reg{target},
	}
}

// NewALU creates an ALU instruction with the given read and write sets.
func NewALU(name string, reads, writes []Reg) *Instruction {
	return &Instruction{
		Name:   name,
		Reads:  append([]Reg(nil), reads...),
		Writes: append([]Reg(nil), writes...),
	}
}

// NewBranch creates a branch instruction reading the given registers.
func NewBranch(name string, reads ...Reg) *Instruction {
	return &Instruction{
		Name:     name,
		Reads:    append([]Reg(nil), reads...),
		IsBranch: true,
	}
}

// ReadsReg reports whether the instruction reads r. The empty Reg never
// matches.
func (i *Instruction) ReadsReg(r Reg) bool {
	if r == "" {
		return false
	}
	for _, read := range i.Reads {
		if read == r {
			return true
		}
	}
	return false
}

// WritesReg reports whether the instruction writes r. The empty Reg never
// matches.
func (i *Instruction) WritesReg(r Reg) bool {
	if r == "" {
		return false
	}
	for _, write := range i.Writes {
		if write == r {
			return true
		}
	}
	return false
}
