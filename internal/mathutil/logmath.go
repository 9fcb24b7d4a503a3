package mathutil

import "math"

// LogZero represents log(0), used as negative infinity in log-domain arithmetic.
const LogZero = -1e30

// LogAdd returns log(exp(a) + exp(b)) in a numerically stable way.
// Uses threshold-based early exit to skip expensive exp/log1p when the
// smaller value contributes less than float64 precision (exp(-36) ≈ 2.3e-16).
func LogAdd(a, b float64) float64 {
	if a > b {
		if b == LogZero {
			return a
		}
		d := b - a
		if d < -36.0 {
			return a
		}
		return a + math.Log1p(math.Exp(d))
	}
	if a == LogZero {
		return b
	}
	d := a - b
	if d < -36.0 {
		return b
	}
	return b + math.Log1p(math.Exp(d))
}

// LogSumExp returns log(Σ exp(xs[i])) using the max-shift trick.
// Returns LogZero for an empty or all-LogZero input.
func LogSumExp(xs []float64) float64 {
	maxLP := LogZero
	for _, v := range xs {
		if v > maxLP {
			maxLP = v
		}
	}
	if maxLP <= LogZero {
		return LogZero
	}
	sum := 0.0
	for _, v := range xs {
		d := v - maxLP
		if d > -36.0 {
			sum += math.Exp(d)
		}
	}
	return maxLP + math.Log(sum)
}

// ArgMax returns the index and value of the largest element of xs.
// Returns (-1, LogZero) for an empty slice.
func ArgMax(xs []float64) (int, float64) {
	best := -1
	bestVal := LogZero
	for i, v := range xs {
		if best < 0 || v > bestVal {
			best = i
			bestVal = v
		}
	}
	return best, bestVal
}
