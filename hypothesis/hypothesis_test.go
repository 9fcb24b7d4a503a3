package hypothesis

import "testing"

func TestHypothesis_Words(t *testing.T) {
	h := &Hypothesis{Text: "the quick fox"}
	words := h.Words()
	if len(words) != 3 || words[0] != "the" || words[2] != "fox" {
		t.Errorf("Words() = %v", words)
	}
	empty := &Hypothesis{}
	if got := empty.Words(); len(got) != 0 {
		t.Errorf("Words() on empty text = %v, want empty", got)
	}
}

func TestNonBlankFrameConfidence_PerFrame(t *testing.T) {
	// Single inner sequence: one confidence per frame, indexed by timestep.
	h := &Hypothesis{
		Timesteps:       []int32{0, 2, 3},
		FrameConfidence: [][]float64{{0.9, 0.1, 0.8, 0.7, 0.2}},
	}
	got := h.NonBlankFrameConfidence()
	want := []float64{0.9, 0.8, 0.7}
	if !equalF64(got, want) {
		t.Errorf("NonBlankFrameConfidence = %v, want %v", got, want)
	}
}

func TestNonBlankFrameConfidence_PerSymbol(t *testing.T) {
	// Nested shape: repeated timesteps walk the per-symbol entries.
	h := &Hypothesis{
		Timesteps: []int32{0, 0, 1, 2, 2, 2},
		FrameConfidence: [][]float64{
			{0.9, 0.8},
			{0.7},
			{0.6, 0.5, 0.4},
		},
	}
	got := h.NonBlankFrameConfidence()
	want := []float64{0.9, 0.8, 0.7, 0.6, 0.5, 0.4}
	if !equalF64(got, want) {
		t.Errorf("NonBlankFrameConfidence = %v, want %v", got, want)
	}
}

func TestNonBlankFrameConfidence_Absent(t *testing.T) {
	h := &Hypothesis{Timesteps: []int32{0, 1}}
	if got := h.NonBlankFrameConfidence(); got != nil {
		t.Errorf("NonBlankFrameConfidence without trace = %v, want nil", got)
	}
	h = &Hypothesis{FrameConfidence: [][]float64{{0.5}}}
	if got := h.NonBlankFrameConfidence(); got != nil {
		t.Errorf("NonBlankFrameConfidence without emissions = %v, want nil", got)
	}
}

func TestNBest_Best(t *testing.T) {
	a := &Hypothesis{Score: -1.0}
	b := &Hypothesis{Score: -2.0}
	n := NBest{a, b}
	if n.Best() != a {
		t.Errorf("Best() = %v, want first entry", n.Best())
	}
	if (NBest{}).Best() != nil {
		t.Error("Best() on empty NBest should be nil")
	}
}
