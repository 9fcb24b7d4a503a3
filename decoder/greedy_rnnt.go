package decoder

import (
	"fmt"
	"math"

	"github.com/ethanhe42/NeMo/hypothesis"
	"github.com/ethanhe42/NeMo/internal/mathutil"
)

// Joint scores one decoding step. Given the active batch items, their
// current frame indices and last emitted labels (blank before the first
// emission), it returns one logits row per active item covering the
// vocabulary plus blank. Implementations wrap the model forward pass,
// which stays outside this package.
type Joint interface {
	Step(active []int, frames, lastLabels []int32) [][]float64
}

// JointFunc adapts a plain function to the Joint interface.
type JointFunc func(active []int, frames, lastLabels []int32) [][]float64

// Step calls f.
func (f JointFunc) Step(active []int, frames, lastLabels []int32) [][]float64 {
	return f(active, frames, lastLabels)
}

// GreedyRNNT decodes a batch with label-loop greedy search: each frame is
// rescored until the joint predicts blank, emitting one label per
// iteration. An item that keeps emitting non-blank labels at one frame is
// force-advanced to the next frame once its trailing same-frame emission
// count reaches cfg.MaxSymbolsPerStep, so a stuck joint cannot loop
// forever. frameLengths gives the number of frames per item.
func GreedyRNNT(joint Joint, frameLengths []int, cfg Config) ([]*hypothesis.Hypothesis, error) {
	if joint == nil {
		return nil, fmt.Errorf("%w: nil joint", hypothesis.ErrInvalidArgument)
	}
	batchSize := len(frameLengths)
	if batchSize == 0 {
		return nil, fmt.Errorf("%w: empty batch", hypothesis.ErrInvalidArgument)
	}
	for b, n := range frameLengths {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative frame count %d for item %d", hypothesis.ErrInvalidArgument, n, b)
		}
	}

	hyps, err := hypothesis.NewBatchedHyps(batchSize, cfg.initLength())
	if err != nil {
		return nil, err
	}
	// The trace accumulator is created on the first joint call, once the
	// logits width is known.
	var aligns *hypothesis.BatchedAlignments

	curFrame := make([]int32, batchSize)
	lastLabel := make([]int32, batchSize)
	for b := range lastLabel {
		lastLabel[b] = cfg.BlankID
	}

	var (
		active, emitIdx       []int
		frames, emitLabels    []int32
		stepLast, emitTimes   []int32
		emitScores, stepConf  []float64
		stepLabels            []int32
	)
	for {
		active = active[:0]
		for b, n := range frameLengths {
			if int(curFrame[b]) < n {
				active = append(active, b)
			}
		}
		if len(active) == 0 {
			break
		}
		frames, stepLast = frames[:0], stepLast[:0]
		for _, b := range active {
			frames = append(frames, curFrame[b])
			stepLast = append(stepLast, lastLabel[b])
		}

		rows := joint.Step(active, frames, stepLast)
		if len(rows) != len(active) {
			return nil, fmt.Errorf("%w: joint returned %d rows for %d active items",
				hypothesis.ErrContractViolation, len(rows), len(active))
		}
		if aligns == nil && cfg.wantTrace() && len(rows) > 0 {
			aligns, err = hypothesis.NewBatchedAlignments(batchSize, len(rows[0]), cfg.initLength(), cfg.Confidence)
			if err != nil {
				return nil, err
			}
		}

		emitIdx, emitLabels, emitTimes, emitScores = emitIdx[:0], emitLabels[:0], emitTimes[:0], emitScores[:0]
		stepLabels, stepConf = stepLabels[:0], stepConf[:0]
		for i, b := range active {
			row := rows[i]
			k, maxLP := mathutil.ArgMax(row)
			if k < 0 {
				return nil, fmt.Errorf("%w: joint returned empty logits row for item %d",
					hypothesis.ErrContractViolation, b)
			}
			logProb := maxLP - mathutil.LogSumExp(row)
			label := int32(k)

			if aligns != nil {
				stepLabels = append(stepLabels, label)
				if cfg.Confidence {
					stepConf = append(stepConf, math.Exp(logProb))
				}
			}
			if label == cfg.BlankID {
				curFrame[b]++
				continue
			}
			emitIdx = append(emitIdx, b)
			emitLabels = append(emitLabels, label)
			emitTimes = append(emitTimes, curFrame[b])
			emitScores = append(emitScores, logProb)
			lastLabel[b] = label
		}

		if err := hyps.Append(emitIdx, emitLabels, emitTimes, emitScores); err != nil {
			return nil, err
		}
		if aligns != nil {
			if err := aligns.Append(active, rows, stepLabels, stepConf); err != nil {
				return nil, err
			}
		}

		// Stall guard: force-advance items that hit the same-frame cap.
		if cfg.MaxSymbolsPerStep > 0 {
			for _, b := range emitIdx {
				if hyps.LastTimestep(b) == curFrame[b] && int(hyps.RepeatCount(b)) >= cfg.MaxSymbolsPerStep {
					curFrame[b]++
				}
			}
		}
	}

	return hypothesis.ToHypotheses(hyps, aligns)
}
