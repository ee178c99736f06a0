package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hazardlab/pipesim/insts"
)

var _ = Describe("Instruction", func() {
	Describe("factory constructors", func() {
		It("should create a load writing its target", func() {
			load := insts.NewLoad("I1: LOAD R1", "R1")

			Expect(load.IsBranch).To(BeFalse())
			Expect(load.Reads).To(BeEmpty())
			Expect(load.Writes).To(Equal([]insts.Reg{"R1"}))
		})

		It("should create a load reading its address source", func() {
			load := insts.NewLoad("LOAD R1, [R2]", "R1", "R2")

			Expect(load.Reads).To(Equal([]insts.Reg{"R2"}))
			Expect(load.Writes).To(Equal([]insts.Reg{"R1"}))
		})

		It("should create an ALU instruction", func() {
			add := insts.NewALU("ADD R2,R1",
				[]insts.Reg{"R1"}, []insts.Reg{"R2"})

			Expect(add.IsBranch).To(BeFalse())
			Expect(add.Reads).To(Equal([]insts.Reg{"R1"}))
			Expect(add.Writes).To(Equal([]insts.Reg{"R2"}))
		})

		It("should create a branch with no writes", func() {
			beq := insts.NewBranch("BEQ R2", "R2")

			Expect(beq.IsBranch).To(BeTrue())
			Expect(beq.Reads).To(Equal([]insts.Reg{"R2"}))
			Expect(beq.Writes).To(BeEmpty())
		})
	})

	Describe("register set queries", func() {
		var add *insts.Instruction

		BeforeEach(func() {
			add = insts.NewALU("ADD R3,R1,R2",
				[]insts.Reg{"R1", "R2"}, []insts.Reg{"R3"})
		})

		It("should report read registers", func() {
			Expect(add.ReadsReg("R1")).To(BeTrue())
			Expect(add.ReadsReg("R2")).To(BeTrue())
			Expect(add.ReadsReg("R3")).To(BeFalse())
		})

		It("should report written registers", func() {
			Expect(add.WritesReg("R3")).To(BeTrue())
			Expect(add.WritesReg("R1")).To(BeFalse())
		})

		It("should never match the empty register", func() {
			blank := insts.NewALU("NOP", []insts.Reg{""}, []insts.Reg{""})

			Expect(blank.ReadsReg("")).To(BeFalse())
			Expect(blank.WritesReg("")).To(BeFalse())
		})
	})

	Describe("Outcome", func() {
		It("should start unknown", func() {
			beq := insts.NewBranch("BEQ R2", "R2")

			Expect(beq.Predicted.Known()).To(BeFalse())
			Expect(beq.Actual.Known()).To(BeFalse())
		})

		It("should record the value set", func() {
			var o insts.Outcome
			o.Set(true)

			Expect(o.Known()).To(BeTrue())
			Expect(o.Taken()).To(BeTrue())
		})

		It("should panic when set twice", func() {
			var o insts.Outcome
			o.Set(false)

			Expect(func() { o.Set(false) }).To(Panic())
		})

		It("should panic when read before being set", func() {
			var o insts.Outcome

			Expect(func() { o.Taken() }).To(Panic())
		})
	})
})
