package hypothesis

import (
	"errors"
	"sort"
	"testing"
)

func TestIsPrefix(t *testing.T) {
	cases := []struct {
		name string
		x    []int32
		pref []int32
		want bool
	}{
		{"strict prefix", []int32{1, 2, 3}, []int32{1, 2}, true},
		{"empty prefix", []int32{1}, nil, true},
		{"equal is not a prefix", []int32{1, 2}, []int32{1, 2}, false},
		{"longer than x", []int32{1}, []int32{1, 2}, false},
		{"mismatch", []int32{1, 2, 3}, []int32{1, 3}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsPrefix(c.x, c.pref); got != c.want {
				t.Errorf("IsPrefix(%v, %v) = %v, want %v", c.x, c.pref, got, c.want)
			}
		})
	}
}

func TestSelectKExpansions(t *testing.T) {
	hyps := []*Hypothesis{
		{Score: 0.0},
		{Score: -1.0},
	}
	labels := [][]int32{
		{3, 7, 9},
		{1, 2},
	}
	logProbs := [][]float64{
		{-0.1, -0.5, -3.0},
		{-0.2, -0.3},
	}
	out, err := SelectKExpansions(hyps, labels, logProbs, 1.0)
	if err != nil {
		t.Fatalf("SelectKExpansions: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d expansion lists, want 2", len(out))
	}
	// Hypothesis 0: best is -0.1; -3.0 falls outside gamma=1.0.
	if len(out[0]) != 2 {
		t.Fatalf("out[0] has %d expansions, want 2: %v", len(out[0]), out[0])
	}
	if !sort.SliceIsSorted(out[0], func(a, b int) bool { return out[0][a].Score < out[0][b].Score }) {
		t.Errorf("out[0] not sorted ascending: %v", out[0])
	}
	if out[0][len(out[0])-1].Label != 3 {
		t.Errorf("best expansion label = %d, want 3", out[0][len(out[0])-1].Label)
	}
	// Hypothesis 1: both candidates within gamma, shifted by hyp score.
	if len(out[1]) != 2 {
		t.Fatalf("out[1] has %d expansions, want 2: %v", len(out[1]), out[1])
	}
	if !approx(out[1][1].Score, -1.2) {
		t.Errorf("best expansion score = %f, want -1.2", out[1][1].Score)
	}
}

func TestSelectKExpansions_FallbackToBest(t *testing.T) {
	hyps := []*Hypothesis{{Score: 0.0}}
	out, err := SelectKExpansions(hyps, [][]int32{{4, 6}}, [][]float64{{-0.5, -0.6}}, -1.0)
	if err != nil {
		t.Fatalf("SelectKExpansions: %v", err)
	}
	if len(out[0]) != 1 || out[0][0].Label != 4 {
		t.Errorf("fallback = %v, want single best expansion with label 4", out[0])
	}
}

func TestSelectKExpansions_Errors(t *testing.T) {
	hyps := []*Hypothesis{{Score: 0.0}}
	if _, err := SelectKExpansions(hyps, nil, nil, 1.0); !errors.Is(err, ErrContractViolation) {
		t.Errorf("row count mismatch err = %v, want ErrContractViolation", err)
	}
	_, err := SelectKExpansions(hyps, [][]int32{{1, 2}}, [][]float64{{-0.5}}, 1.0)
	if !errors.Is(err, ErrContractViolation) {
		t.Errorf("row length mismatch err = %v, want ErrContractViolation", err)
	}
	_, err = SelectKExpansions(hyps, [][]int32{{}}, [][]float64{{}}, 1.0)
	if !errors.Is(err, ErrContractViolation) {
		t.Errorf("empty row err = %v, want ErrContractViolation", err)
	}
}
