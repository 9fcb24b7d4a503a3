// Package hypothesis holds decoding results and the batched accumulators
// that frame-synchronous decoders write them into.
package hypothesis

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument reports an invalid construction parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrContractViolation reports a malformed scatter-write call
	// (mismatched parallel arrays, out-of-range or duplicate indices).
	ErrContractViolation = errors.New("contract violation")
)

// AlignmentStep is one recorded decoding step: the chosen label (blank
// included) and the raw model output vector at that step.
type AlignmentStep struct {
	Label  int32
	Logits []float64
}

// Hypothesis is a single per-utterance decoding result.
type Hypothesis struct {
	Score     float64
	YSequence []int32 // emitted non-blank label ids
	Timesteps []int32 // frame index at which each label was emitted

	Text string // decoded text, filled by an external tokenizer

	// Alignments holds the full step-by-step trace including blank steps.
	// Nil when the decoding session did not record alignments.
	Alignments []AlignmentStep

	// FrameConfidence holds per-step confidence. A single inner sequence
	// means one confidence per frame; multiple inner sequences mean
	// per-frame, per-emitted-symbol confidence (label-loop decoding).
	FrameConfidence [][]float64

	TokenConfidence []float64
	WordConfidence  []float64

	// DecState is decoder-internal state, attached by the decoding loop.
	DecState any
}

// Words splits the decoded text on whitespace.
func (h *Hypothesis) Words() []string {
	return strings.Fields(h.Text)
}

// NonBlankFrameConfidence returns one confidence value per emitted label,
// looked up in FrameConfidence via Timesteps. Repeated timesteps walk
// through the per-symbol entries of the corresponding frame.
func (h *Hypothesis) NonBlankFrameConfidence() []float64 {
	if len(h.Timesteps) == 0 || len(h.FrameConfidence) == 0 {
		return nil
	}
	out := make([]float64, 0, len(h.Timesteps))
	if len(h.FrameConfidence) == 1 {
		// one confidence per frame
		flat := h.FrameConfidence[0]
		for _, t := range h.Timesteps {
			if int(t) < len(flat) {
				out = append(out, flat[t])
			}
		}
		return out
	}
	// per-frame, per-symbol confidence
	tPrev := int32(-1)
	offset := 0
	for _, t := range h.Timesteps {
		if t != tPrev {
			tPrev = t
			offset = 0
		} else {
			offset++
		}
		if int(t) < len(h.FrameConfidence) {
			if row := h.FrameConfidence[t]; offset < len(row) {
				out = append(out, row[offset])
			}
		}
	}
	return out
}

// NBest holds ranked alternative hypotheses for one utterance.
type NBest []*Hypothesis

// Best returns the top hypothesis, or nil for an empty list.
func (n NBest) Best() *Hypothesis {
	if len(n) == 0 {
		return nil
	}
	return n[0]
}
