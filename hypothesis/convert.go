package hypothesis

import "fmt"

func cloneInt32(src []int32) []int32 {
	dst := make([]int32, len(src))
	copy(dst, src)
	return dst
}

func cloneFloat64(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

// ToHypotheses materializes batched accumulators into one Hypothesis per
// batch index, each trimmed to its own valid length. aligns may be nil.
// The accumulators are not modified, and the returned records own all of
// their payloads: mutating the accumulators afterwards cannot alter them.
// DecState is left unset; the decoding loop attaches it if needed.
func ToHypotheses(hyps *BatchedHyps, aligns *BatchedAlignments) ([]*Hypothesis, error) {
	if hyps == nil {
		return nil, fmt.Errorf("%w: nil batched hypotheses", ErrInvalidArgument)
	}
	if aligns != nil && aligns.BatchSize() != hyps.BatchSize() {
		return nil, fmt.Errorf("%w: batch size mismatch: %d hypotheses, %d alignments",
			ErrContractViolation, hyps.BatchSize(), aligns.BatchSize())
	}
	out := make([]*Hypothesis, hyps.BatchSize())
	for b := range out {
		h := &Hypothesis{
			Score:     hyps.Score(b),
			YSequence: cloneInt32(hyps.Labels(b)),
			Timesteps: cloneInt32(hyps.Timesteps(b)),
		}
		if aligns != nil {
			n := aligns.Length(b)
			labels := aligns.Labels(b)
			steps := make([]AlignmentStep, n)
			for j := 0; j < n; j++ {
				steps[j] = AlignmentStep{
					Label:  labels[j],
					Logits: cloneFloat64(aligns.Logits(b, j)),
				}
			}
			h.Alignments = steps
			if aligns.TracksFrameConfidence() {
				h.FrameConfidence = [][]float64{cloneFloat64(aligns.FrameConfidence(b))}
			}
		}
		out[b] = h
	}
	return out, nil
}
