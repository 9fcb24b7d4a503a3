// Package nemo provides batched greedy decoding for CTC and
// transducer-style sequence models: growable batched accumulators for
// labels, timings, scores and alignment traces, plus reference decoders
// that drive them frame by frame.
package nemo

import (
	"github.com/ethanhe42/NeMo/decoder"
	"github.com/ethanhe42/NeMo/hypothesis"
)

// Decoder is the top-level decoding facade. One Decoder may serve many
// batches; each decode call builds its own accumulators, so independent
// batches can be decoded concurrently.
type Decoder struct {
	Cfg decoder.Config
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithBlankID sets the label id treated as blank.
func WithBlankID(id int32) Option {
	return func(d *Decoder) {
		d.Cfg.BlankID = id
	}
}

// WithMaxSymbolsPerStep caps same-frame emissions in label-loop decoding.
// n <= 0 disables the cap.
func WithMaxSymbolsPerStep(n int) Option {
	return func(d *Decoder) {
		d.Cfg.MaxSymbolsPerStep = n
	}
}

// WithInitLength sets the initial accumulator capacity per item.
func WithInitLength(n int) Option {
	return func(d *Decoder) {
		d.Cfg.InitLength = n
	}
}

// WithAlignments enables recording of the full step-by-step trace.
func WithAlignments(enabled bool) Option {
	return func(d *Decoder) {
		d.Cfg.Alignments = enabled
	}
}

// WithConfidence enables per-step confidence recording.
func WithConfidence(enabled bool) Option {
	return func(d *Decoder) {
		d.Cfg.Confidence = enabled
	}
}

// New creates a Decoder with default parameters.
func New(opts ...Option) *Decoder {
	d := &Decoder{Cfg: decoder.DefaultConfig()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DecodeCTC runs greedy CTC decoding over per-item logit sequences.
func (d *Decoder) DecodeCTC(logits [][][]float64) ([]*hypothesis.Hypothesis, error) {
	return decoder.GreedyCTC(logits, d.Cfg)
}

// DecodeRNNT runs label-loop greedy decoding against a joint network.
func (d *Decoder) DecodeRNNT(joint decoder.Joint, frameLengths []int) ([]*hypothesis.Hypothesis, error) {
	return decoder.GreedyRNNT(joint, frameLengths, d.Cfg)
}
