package hypothesis

import (
	"fmt"
	"sort"
)

// IsPrefix reports whether pref is a strict prefix of x.
func IsPrefix(x, pref []int32) bool {
	if len(pref) >= len(x) {
		return false
	}
	for i := range pref {
		if pref[i] != x[i] {
			return false
		}
	}
	return true
}

// Expansion is a candidate continuation of a hypothesis: a label and the
// hypothesis score extended by that label's log-probability.
type Expansion struct {
	Label int32
	Score float64
}

// SelectKExpansions selects expansion candidates per hypothesis using
// prune-by-value: for each hypothesis, candidates formed from the aligned
// topKLabels/topKLogProbs rows are kept when their extended score is within
// gamma of that hypothesis' best candidate, sorted by ascending score. The
// best candidate alone is returned when the filter would leave nothing.
func SelectKExpansions(hyps []*Hypothesis, topKLabels [][]int32, topKLogProbs [][]float64, gamma float64) ([][]Expansion, error) {
	if len(topKLabels) != len(hyps) || len(topKLogProbs) != len(hyps) {
		return nil, fmt.Errorf("%w: %d hypotheses, %d label rows, %d log-prob rows",
			ErrContractViolation, len(hyps), len(topKLabels), len(topKLogProbs))
	}
	out := make([][]Expansion, len(hyps))
	for i, hyp := range hyps {
		labels := topKLabels[i]
		logProbs := topKLogProbs[i]
		if len(labels) != len(logProbs) || len(labels) == 0 {
			return nil, fmt.Errorf("%w: hypothesis %d has %d labels and %d log-probs",
				ErrContractViolation, i, len(labels), len(logProbs))
		}
		candidates := make([]Expansion, len(labels))
		best := Expansion{Label: labels[0], Score: hyp.Score + logProbs[0]}
		for k := range labels {
			candidates[k] = Expansion{Label: labels[k], Score: hyp.Score + logProbs[k]}
			if candidates[k].Score > best.Score {
				best = candidates[k]
			}
		}
		kept := candidates[:0]
		for _, c := range candidates {
			if c.Score >= best.Score-gamma {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			out[i] = []Expansion{best}
			continue
		}
		sort.Slice(kept, func(a, b int) bool { return kept[a].Score < kept[b].Score })
		out[i] = kept
	}
	return out, nil
}
