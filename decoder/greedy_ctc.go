// Package decoder implements batched greedy decoders that drive the
// hypothesis accumulators frame by frame.
package decoder

import (
	"fmt"
	"math"

	"github.com/ethanhe42/NeMo/hypothesis"
	"github.com/ethanhe42/NeMo/internal/mathutil"
)

// Config holds greedy decoding parameters.
type Config struct {
	BlankID           int32 // label id treated as blank
	MaxSymbolsPerStep int   // cap on same-frame emissions in label-loop decoding; <= 0 disables the cap
	InitLength        int   // initial accumulator capacity per item
	Alignments        bool  // record the full step-by-step trace
	Confidence        bool  // record per-step confidence (implies Alignments)
}

// DefaultConfig returns reasonable default parameters.
func DefaultConfig() Config {
	return Config{
		BlankID:           0,
		MaxSymbolsPerStep: 10,
		InitLength:        16,
	}
}

func (c Config) initLength() int {
	if c.InitLength > 0 {
		return c.InitLength
	}
	return DefaultConfig().InitLength
}

func (c Config) wantTrace() bool {
	return c.Alignments || c.Confidence
}

// GreedyCTC decodes a batch of per-frame logit sequences with greedy CTC:
// per frame the argmax label is taken, consecutive repeats are collapsed
// and blanks are dropped. logits[b][t] is the vocabulary-sized output row
// of item b at frame t; items may have different frame counts. The score
// of each emitted label is its log-softmax probability.
func GreedyCTC(logits [][][]float64, cfg Config) ([]*hypothesis.Hypothesis, error) {
	batchSize := len(logits)
	if batchSize == 0 {
		return nil, fmt.Errorf("%w: empty batch", hypothesis.ErrInvalidArgument)
	}
	vocab := 0
	maxFrames := 0
	for _, item := range logits {
		if len(item) > maxFrames {
			maxFrames = len(item)
		}
		if vocab == 0 && len(item) > 0 {
			vocab = len(item[0])
		}
	}

	hyps, err := hypothesis.NewBatchedHyps(batchSize, cfg.initLength())
	if err != nil {
		return nil, err
	}
	var aligns *hypothesis.BatchedAlignments
	if cfg.wantTrace() && vocab > 0 {
		aligns, err = hypothesis.NewBatchedAlignments(batchSize, vocab, cfg.initLength(), cfg.Confidence)
		if err != nil {
			return nil, err
		}
	}

	// Previous argmax per item, for collapsing consecutive repeats.
	prev := make([]int32, batchSize)
	for b := range prev {
		prev[b] = -1
	}

	var (
		active, emitIdx       []int
		emitLabels, emitTimes []int32
		emitScores, stepConf  []float64
		stepLabels            []int32
		stepLogits            [][]float64
	)
	for t := 0; t < maxFrames; t++ {
		active = active[:0]
		for b := range logits {
			if t < len(logits[b]) {
				active = append(active, b)
			}
		}
		emitIdx, emitLabels, emitTimes, emitScores = emitIdx[:0], emitLabels[:0], emitTimes[:0], emitScores[:0]
		stepLabels, stepLogits, stepConf = stepLabels[:0], stepLogits[:0], stepConf[:0]

		for _, b := range active {
			row := logits[b][t]
			if len(row) != vocab {
				return nil, fmt.Errorf("%w: item %d frame %d has %d logits, want %d",
					hypothesis.ErrContractViolation, b, t, len(row), vocab)
			}
			k, maxLP := mathutil.ArgMax(row)
			logProb := maxLP - mathutil.LogSumExp(row)
			label := int32(k)

			if aligns != nil {
				stepLogits = append(stepLogits, row)
				stepLabels = append(stepLabels, label)
				if cfg.Confidence {
					stepConf = append(stepConf, math.Exp(logProb))
				}
			}
			if label != cfg.BlankID && label != prev[b] {
				emitIdx = append(emitIdx, b)
				emitLabels = append(emitLabels, label)
				emitTimes = append(emitTimes, int32(t))
				emitScores = append(emitScores, logProb)
			}
			prev[b] = label
		}

		if err := hyps.Append(emitIdx, emitLabels, emitTimes, emitScores); err != nil {
			return nil, err
		}
		if aligns != nil {
			if err := aligns.Append(active, stepLogits, stepLabels, stepConf); err != nil {
				return nil, err
			}
		}
	}

	return hypothesis.ToHypotheses(hyps, aligns)
}
