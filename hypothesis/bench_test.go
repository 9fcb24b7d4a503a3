package hypothesis

import "testing"

func benchAppendSession(b *testing.B, batchSize, steps int) {
	active := make([]int, batchSize)
	labels := make([]int32, batchSize)
	times := make([]int32, batchSize)
	scores := make([]float64, batchSize)
	for i := range active {
		active[i] = i
		labels[i] = int32(i % 32)
		scores[i] = -0.5
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, err := NewBatchedHyps(batchSize, 8)
		if err != nil {
			b.Fatal(err)
		}
		for t := 0; t < steps; t++ {
			for i := range times {
				times[i] = int32(t)
			}
			if err := h.Append(active, labels, times, scores); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkBatchedHyps_Append_16x128(b *testing.B) {
	benchAppendSession(b, 16, 128)
}

func BenchmarkBatchedHyps_Append_64x512(b *testing.B) {
	benchAppendSession(b, 64, 512)
}

func BenchmarkBatchedAlignments_Append_16x128(b *testing.B) {
	const batchSize, steps, dim = 16, 128, 32
	active := make([]int, batchSize)
	logits := make([][]float64, batchSize)
	labels := make([]int32, batchSize)
	for i := range active {
		active[i] = i
		logits[i] = make([]float64, dim)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a, err := NewBatchedAlignments(batchSize, dim, 8, false)
		if err != nil {
			b.Fatal(err)
		}
		for t := 0; t < steps; t++ {
			if err := a.Append(active, logits, labels, nil); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkToHypotheses_64x512(b *testing.B) {
	const batchSize, steps = 64, 512
	h, err := NewBatchedHyps(batchSize, 8)
	if err != nil {
		b.Fatal(err)
	}
	active := make([]int, batchSize)
	labels := make([]int32, batchSize)
	times := make([]int32, batchSize)
	scores := make([]float64, batchSize)
	for i := range active {
		active[i] = i
	}
	for t := 0; t < steps; t++ {
		for i := range times {
			times[i] = int32(t)
		}
		if err := h.Append(active, labels, times, scores); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ToHypotheses(h, nil); err != nil {
			b.Fatal(err)
		}
	}
}
