package pipeline

import (
	"hash/fnv"
	"math/rand"

	"github.com/hazardlab/pipesim/insts"
)

// defaultTakenRate is the probability that a branch is actually taken.
// The ground truth is sampled independently of the prediction, so any
// predictor can mispredict in both directions.
const defaultTakenRate = 0.4

// Predictor is the two-operation branch predictor contract consumed by the
// engine. Predict is called exactly once per branch, when it first occupies
// the decode slot; Resolve is called exactly once per branch, when it first
// occupies the execute slot, and returns the ground-truth outcome. Neither
// operation writes the instruction's own fields; the engine stores both
// results.
type Predictor interface {
	Predict(inst *insts.Instruction) bool
	Resolve(inst *insts.Instruction) bool
}

// outcomeModel samples ground-truth branch outcomes from a seeded source.
type outcomeModel struct {
	rng       *rand.Rand
	takenRate float64
}

func newOutcomeModel(seed int64) outcomeModel {
	return outcomeModel{
		rng:       rand.New(rand.NewSource(seed)),
		takenRate: defaultTakenRate,
	}
}

func (m outcomeModel) sample() bool {
	return m.rng.Float64() < m.takenRate
}

// StaticTaken always predicts taken.
type StaticTaken struct {
	outcome outcomeModel
}

// NewStaticTaken creates a static-taken predictor whose ground-truth
// outcomes are drawn from a source seeded with seed.
func NewStaticTaken(seed int64) *StaticTaken {
	return &StaticTaken{outcome: newOutcomeModel(seed)}
}

// Predict always returns taken.
func (p *StaticTaken) Predict(_ *insts.Instruction) bool {
	return true
}

// Resolve samples the actual branch outcome.
func (p *StaticTaken) Resolve(_ *insts.Instruction) bool {
	return p.outcome.sample()
}

// StaticNotTaken always predicts not taken.
type StaticNotTaken struct {
	outcome outcomeModel
}

// NewStaticNotTaken creates a static-not-taken predictor whose ground-truth
// outcomes are drawn from a source seeded with seed.
func NewStaticNotTaken(seed int64) *StaticNotTaken {
	return &StaticNotTaken{outcome: newOutcomeModel(seed)}
}

// Predict always returns not taken.
func (p *StaticNotTaken) Predict(_ *insts.Instruction) bool {
	return false
}

// Resolve samples the actual branch outcome.
func (p *StaticNotTaken) Resolve(_ *insts.Instruction) bool {
	return p.outcome.sample()
}

// Random predicts with a uniform coin flip from its own seeded source.
// Predictions and outcomes use separate sources so the two stay uncorrelated.
type Random struct {
	rng     *rand.Rand
	outcome outcomeModel
}

// NewRandom creates a randomized predictor seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{
		rng:     rand.New(rand.NewSource(seed)),
		outcome: newOutcomeModel(seed + 1),
	}
}

// Predict flips a coin.
func (p *Random) Predict(_ *insts.Instruction) bool {
	return p.rng.Intn(2) == 1
}

// Resolve samples the actual branch outcome.
func (p *Random) Resolve(_ *insts.Instruction) bool {
	return p.outcome.sample()
}

// BimodalConfig holds configuration for the bimodal predictor.
type BimodalConfig struct {
	// TableSize is the number of 2-bit counters. Must be a power of 2.
	// Default is 64.
	TableSize uint32
	// Seed seeds the ground-truth outcome source.
	Seed int64
}

// DefaultBimodalConfig returns a default configuration.
func DefaultBimodalConfig() BimodalConfig {
	return BimodalConfig{TableSize: 64}
}

// PredictorStats holds prediction accuracy statistics.
type PredictorStats struct {
	// Predictions is the total number of predictions made.
	Predictions uint64
	// Correct is the number of correct predictions.
	Correct uint64
	// Mispredictions is the number of incorrect predictions.
	Mispredictions uint64
}

// Accuracy returns the prediction accuracy as a percentage.
func (s PredictorStats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// MispredictionRate returns the misprediction rate as a percentage.
func (s PredictorStats) MispredictionRate() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Mispredictions) / float64(s.Predictions) * 100
}

// Bimodal is a 2-bit saturating counter predictor. Counters are indexed by a
// hash of the instruction label since this model has no program counter.
// States: 0=strongly not taken, 1=weakly not taken, 2=weakly taken,
// 3=strongly taken. Counters start at weakly taken.
type Bimodal struct {
	counters  []uint8
	tableSize uint32
	outcome   outcomeModel
	stats     PredictorStats
}

// NewBimodal creates a bimodal predictor with the given configuration.
func NewBimodal(config BimodalConfig) *Bimodal {
	tableSize := config.TableSize
	if tableSize == 0 {
		tableSize = 64
	}

	b := &Bimodal{
		counters:  make([]uint8, tableSize),
		tableSize: tableSize,
		outcome:   newOutcomeModel(config.Seed),
	}
	for i := range b.counters {
		b.counters[i] = 2
	}
	return b
}

func (b *Bimodal) index(inst *insts.Instruction) uint32 {
	h := fnv.New32a()
	h.Write([]byte(inst.Name))
	return h.Sum32() & (b.tableSize - 1)
}

// Predict returns taken when the instruction's counter is in a taken state.
func (b *Bimodal) Predict(inst *insts.Instruction) bool {
	b.stats.Predictions++
	return b.counters[b.index(inst)] >= 2
}

// Resolve samples the actual outcome and trains the counter toward it. The
// engine has already stored the prediction on the instruction by resolution
// time, which is what the accuracy statistics compare against.
func (b *Bimodal) Resolve(inst *insts.Instruction) bool {
	taken := b.outcome.sample()

	if inst.Predicted.Known() {
		if inst.Predicted.Taken() == taken {
			b.stats.Correct++
		} else {
			b.stats.Mispredictions++
		}
	}

	idx := b.index(inst)
	if taken {
		if b.counters[idx] < 3 {
			b.counters[idx]++
		}
	} else {
		if b.counters[idx] > 0 {
			b.counters[idx]--
		}
	}
	return taken
}

// Stats returns the predictor's accuracy statistics.
func (b *Bimodal) Stats() PredictorStats {
	return b.stats
}

// Reset clears all counters and statistics.
func (b *Bimodal) Reset() {
	for i := range b.counters {
		b.counters[i] = 2
	}
	b.stats = PredictorStats{}
}

// ForcedOutcome wraps a predictor and overrides Resolve for selected
// instructions, keyed by label. Predictions pass through unchanged. Intended
// for tests that need a deterministic ground truth.
type ForcedOutcome struct {
	Predictor
	forced map[string]bool
}

// NewForcedOutcome wraps inner with an empty override table.
func NewForcedOutcome(inner Predictor) *ForcedOutcome {
	return &ForcedOutcome{
		Predictor: inner,
		forced:    make(map[string]bool),
	}
}

// Force pins the resolved outcome for the instruction labeled name.
func (f *ForcedOutcome) Force(name string, taken bool) {
	f.forced[name] = taken
}

// Resolve returns the pinned outcome if one exists, otherwise delegates.
func (f *ForcedOutcome) Resolve(inst *insts.Instruction) bool {
	if taken, ok := f.forced[inst.Name]; ok {
		return taken
	}
	return f.Predictor.Resolve(inst)
}
