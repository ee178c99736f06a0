package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hazardlab/pipesim/insts"
	"github.com/hazardlab/pipesim/timing/pipeline"
)

var _ = Describe("Predictors", func() {
	var branch *insts.Instruction

	BeforeEach(func() {
		branch = insts.NewBranch("BEQ R2", "R2")
	})

	Describe("StaticTaken", func() {
		It("should always predict taken", func() {
			p := pipeline.NewStaticTaken(0)
			for i := 0; i < 5; i++ {
				Expect(p.Predict(branch)).To(BeTrue())
			}
		})

		It("should resolve identically for the same seed", func() {
			a := pipeline.NewStaticTaken(42)
			b := pipeline.NewStaticTaken(42)

			for i := 0; i < 20; i++ {
				Expect(a.Resolve(branch)).To(Equal(b.Resolve(branch)))
			}
		})

		It("should not touch the instruction's own fields", func() {
			p := pipeline.NewStaticTaken(0)
			p.Predict(branch)
			p.Resolve(branch)

			Expect(branch.Predicted.Known()).To(BeFalse())
			Expect(branch.Actual.Known()).To(BeFalse())
		})
	})

	Describe("StaticNotTaken", func() {
		It("should always predict not taken", func() {
			p := pipeline.NewStaticNotTaken(0)
			for i := 0; i < 5; i++ {
				Expect(p.Predict(branch)).To(BeFalse())
			}
		})
	})

	Describe("Random", func() {
		It("should predict identically for the same seed", func() {
			a := pipeline.NewRandom(7)
			b := pipeline.NewRandom(7)

			for i := 0; i < 50; i++ {
				Expect(a.Predict(branch)).To(Equal(b.Predict(branch)))
			}
		})

		It("should eventually predict both ways", func() {
			p := pipeline.NewRandom(1)

			seenTaken := false
			seenNotTaken := false
			for i := 0; i < 100; i++ {
				if p.Predict(branch) {
					seenTaken = true
				} else {
					seenNotTaken = true
				}
			}

			Expect(seenTaken).To(BeTrue())
			Expect(seenNotTaken).To(BeTrue())
		})
	})

	Describe("Bimodal", func() {
		var bp *pipeline.Bimodal

		BeforeEach(func() {
			bp = pipeline.NewBimodal(pipeline.BimodalConfig{
				TableSize: 16,
			})
		})

		It("should initially predict taken (biased)", func() {
			Expect(bp.Predict(branch)).To(BeTrue())
		})

		It("should default the table size", func() {
			p := pipeline.NewBimodal(pipeline.BimodalConfig{})
			Expect(p.Predict(branch)).To(BeTrue())
		})

		It("should count predictions", func() {
			bp.Predict(branch)
			bp.Predict(branch)

			Expect(bp.Stats().Predictions).To(Equal(uint64(2)))
		})

		It("should score each resolution against the stored prediction", func() {
			branch.Predicted.Set(true)
			bp.Resolve(branch)

			stats := bp.Stats()
			Expect(stats.Correct + stats.Mispredictions).To(Equal(uint64(1)))
		})

		It("should resolve identically for the same seed", func() {
			a := pipeline.NewBimodal(pipeline.BimodalConfig{Seed: 9})
			b := pipeline.NewBimodal(pipeline.BimodalConfig{Seed: 9})

			for i := 0; i < 20; i++ {
				Expect(a.Resolve(branch)).To(Equal(b.Resolve(branch)))
			}
		})

		It("should clear state on Reset", func() {
			bp.Predict(branch)
			bp.Reset()

			Expect(bp.Stats()).To(BeZero())
			Expect(bp.Predict(branch)).To(BeTrue())
		})
	})

	Describe("PredictorStats", func() {
		It("should compute accuracy percentages", func() {
			stats := pipeline.PredictorStats{
				Predictions:    10,
				Correct:        7,
				Mispredictions: 3,
			}

			Expect(stats.Accuracy()).To(BeNumerically("~", 70.0, 0.01))
			Expect(stats.MispredictionRate()).To(BeNumerically("~", 30.0, 0.01))
		})

		It("should report zero with no predictions", func() {
			Expect(pipeline.PredictorStats{}.Accuracy()).To(BeZero())
		})
	})

	Describe("ForcedOutcome", func() {
		It("should pin resolutions for forced labels", func() {
			p := pipeline.NewForcedOutcome(pipeline.NewStaticNotTaken(0))
			p.Force(branch.Name, true)

			for i := 0; i < 5; i++ {
				Expect(p.Resolve(branch)).To(BeTrue())
			}
		})

		It("should delegate unforced labels", func() {
			inner := pipeline.NewStaticNotTaken(3)
			reference := pipeline.NewStaticNotTaken(3)
			p := pipeline.NewForcedOutcome(inner)
			p.Force("some other label", true)

			for i := 0; i < 20; i++ {
				Expect(p.Resolve(branch)).To(Equal(reference.Resolve(branch)))
			}
		})

		It("should leave prediction policy intact", func() {
			p := pipeline.NewForcedOutcome(pipeline.NewStaticNotTaken(0))
			p.Force(branch.Name, true)

			Expect(p.Predict(branch)).To(BeFalse())
		})
	})
})
