package decoder

import (
	"math/rand"
	"testing"
)

func randomLogits(batchSize, frames, vocab int) [][][]float64 {
	logits := make([][][]float64, batchSize)
	for b := range logits {
		logits[b] = make([][]float64, frames)
		for t := range logits[b] {
			row := make([]float64, vocab)
			for v := range row {
				row[v] = rand.NormFloat64()
			}
			logits[b][t] = row
		}
	}
	return logits
}

func BenchmarkGreedyCTC_8x200x64(b *testing.B) {
	logits := randomLogits(8, 200, 64)
	cfg := DefaultConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GreedyCTC(logits, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGreedyCTC_WithTrace_8x200x64(b *testing.B) {
	logits := randomLogits(8, 200, 64)
	cfg := DefaultConfig()
	cfg.Confidence = true
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := GreedyCTC(logits, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
