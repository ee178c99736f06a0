package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/hazardlab/pipesim/timing/pipeline"
)

var _ = Describe("Timeline", func() {
	It("should render stage snapshots one line per cycle", func() {
		timeline := pipeline.Timeline{
			{Cycle: 1, Stages: []string{"I1", "", ""}},
			{Cycle: 2, Stages: []string{"I2", "I1", ""}},
		}

		Expect(timeline.String()).To(Equal(
			"C1: [I1] [] []\nC2: [I2] [I1] []\n"))
	})

	It("should render stall events", func() {
		timeline := pipeline.Timeline{
			{
				Cycle:  1,
				Stages: []string{"A", "", ""},
				Events: []pipeline.Event{
					{
						Kind:   pipeline.EventStall,
						Status: pipeline.StatusDataStall,
					},
				},
			},
		}

		Expect(timeline.String()).To(Equal("C1: [A] [] [] (DATA_STALL)\n"))
	})

	It("should render prediction and branch-outcome events", func() {
		timeline := pipeline.Timeline{
			{
				Cycle:  3,
				Stages: []string{"", "B", ""},
				Events: []pipeline.Event{
					{
						Kind:   pipeline.EventPrediction,
						Index:  2,
						Slot:   1,
						Status: pipeline.StatusPredNotTaken,
					},
					{
						Kind:   pipeline.EventBranchOutcome,
						Index:  2,
						Status: pipeline.StatusMispredict,
					},
				},
			},
		}

		Expect(timeline.String()).To(Equal(
			"C3: [] [B] [] (i2@1 PRED:N) (i2 MISPREDICT)\n"))
	})

	It("should render an empty timeline as an empty string", func() {
		Expect(pipeline.Timeline{}.String()).To(BeEmpty())
	})
})
