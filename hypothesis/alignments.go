package hypothesis

import "fmt"

// BatchedAlignments stores the full step-by-step decoding trace for a batch:
// raw model outputs and chosen labels, blank steps included, one entry per
// processed frame. Lengths here count frames, not emitted labels, so they
// differ from the paired BatchedHyps lengths. The per-frame confidence
// buffer exists only when requested at construction; the choice is fixed
// for the accumulator's lifetime.
type BatchedAlignments struct {
	batchSize int
	maxLength int // column capacity
	logitsDim int

	withFrameConfidence bool

	lengths         []int
	logits          []float64 // flat [batchSize × maxLength × logitsDim]
	labels          []int32   // flat [batchSize × maxLength]
	frameConfidence []float64 // flat [batchSize × maxLength], nil when untracked

	dup dupCheck
}

// NewBatchedAlignments creates a trace accumulator for batchSize items with
// logitsDim-wide output vectors and initLength columns per item.
func NewBatchedAlignments(batchSize, logitsDim, initLength int, withFrameConfidence bool) (*BatchedAlignments, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be > 0, got %d", ErrInvalidArgument, batchSize)
	}
	if logitsDim <= 0 {
		return nil, fmt.Errorf("%w: logits dim must be > 0, got %d", ErrInvalidArgument, logitsDim)
	}
	if initLength <= 0 {
		return nil, fmt.Errorf("%w: init length must be > 0, got %d", ErrInvalidArgument, initLength)
	}
	a := &BatchedAlignments{
		batchSize:           batchSize,
		maxLength:           initLength,
		logitsDim:           logitsDim,
		withFrameConfidence: withFrameConfidence,
		lengths:             make([]int, batchSize),
		logits:              make([]float64, batchSize*initLength*logitsDim),
		labels:              make([]int32, batchSize*initLength),
		dup:                 newDupCheck(batchSize),
	}
	if withFrameConfidence {
		a.frameConfidence = make([]float64, batchSize*initLength)
	}
	return a, nil
}

// BatchSize returns the number of items.
func (a *BatchedAlignments) BatchSize() int { return a.batchSize }

// Capacity returns the current column capacity.
func (a *BatchedAlignments) Capacity() int { return a.maxLength }

// LogitsDim returns the width of recorded output vectors.
func (a *BatchedAlignments) LogitsDim() int { return a.logitsDim }

// TracksFrameConfidence reports whether per-frame confidence is recorded.
func (a *BatchedAlignments) TracksFrameConfidence() bool { return a.withFrameConfidence }

// Length returns the number of frames recorded for item b.
func (a *BatchedAlignments) Length(b int) int { return a.lengths[b] }

// Labels returns the per-frame labels of item b, trimmed to its length.
// The slice aliases internal storage and is valid until the next Append.
func (a *BatchedAlignments) Labels(b int) []int32 {
	return a.labels[b*a.maxLength : b*a.maxLength+a.lengths[b]]
}

// Logits returns the output vector recorded for item b at frame j.
// Valid until the next Append.
func (a *BatchedAlignments) Logits(b, j int) []float64 {
	off := (b*a.maxLength + j) * a.logitsDim
	return a.logits[off : off+a.logitsDim]
}

// FrameConfidence returns the per-frame confidence of item b, trimmed to
// its length, or nil when untracked. Valid until the next Append.
func (a *BatchedAlignments) FrameConfidence(b int) []float64 {
	if !a.withFrameConfidence {
		return nil
	}
	return a.frameConfidence[b*a.maxLength : b*a.maxLength+a.lengths[b]]
}

// allocateMore doubles the column capacity, preserving all rows. All
// buffers are reallocated before any field is replaced.
func (a *BatchedAlignments) allocateMore() {
	logits := growFloat64(a.logits, a.batchSize, a.maxLength*a.logitsDim)
	labels := growInt32(a.labels, a.batchSize, a.maxLength)
	var confidence []float64
	if a.withFrameConfidence {
		confidence = growFloat64(a.frameConfidence, a.batchSize, a.maxLength)
	}
	a.logits = logits
	a.labels = labels
	a.frameConfidence = confidence
	a.maxLength *= 2
}

// Append records one processed frame for the selected batch items. logits
// rows must be logitsDim wide; labels may contain the blank id. confidence
// is required when the accumulator tracks it and ignored otherwise. An
// empty active set is a no-op.
func (a *BatchedAlignments) Append(active []int, logits [][]float64, labels []int32, confidence []float64) error {
	if len(active) == 0 {
		return nil
	}
	if len(logits) != len(active) || len(labels) != len(active) {
		return fmt.Errorf("%w: %d active indices, %d logits rows, %d labels",
			ErrContractViolation, len(active), len(logits), len(labels))
	}
	if a.withFrameConfidence && len(confidence) != len(active) {
		return fmt.Errorf("%w: confidence is tracked but got %d values for %d active indices",
			ErrContractViolation, len(confidence), len(active))
	}
	for i, row := range logits {
		if len(row) != a.logitsDim {
			return fmt.Errorf("%w: logits row %d has width %d, want %d",
				ErrContractViolation, i, len(row), a.logitsDim)
		}
	}
	if err := a.dup.validate(active); err != nil {
		return err
	}
	maxLen := 0
	for _, b := range active {
		if a.lengths[b] > maxLen {
			maxLen = a.lengths[b]
		}
	}
	if maxLen >= a.maxLength {
		a.allocateMore()
	}
	for i, b := range active {
		pos := b*a.maxLength + a.lengths[b]
		copy(a.logits[pos*a.logitsDim:(pos+1)*a.logitsDim], logits[i])
		a.labels[pos] = labels[i]
		if a.withFrameConfidence {
			a.frameConfidence[pos] = confidence[i]
		}
		a.lengths[b]++
	}
	return nil
}
