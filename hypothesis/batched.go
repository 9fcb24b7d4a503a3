package hypothesis

import "fmt"

// noTimestep marks a hypothesis before its first emission.
const noTimestep = -1

// dupCheck validates scatter indices in O(len(active)) without allocating:
// the scratch array is generation-tagged so it never needs clearing.
type dupCheck struct {
	seen []int
	gen  int
}

func newDupCheck(batchSize int) dupCheck {
	return dupCheck{seen: make([]int, batchSize)}
}

func (d *dupCheck) validate(active []int) error {
	d.gen++
	for _, b := range active {
		if b < 0 || b >= len(d.seen) {
			return fmt.Errorf("%w: batch index %d out of range [0, %d)", ErrContractViolation, b, len(d.seen))
		}
		if d.seen[b] == d.gen {
			return fmt.Errorf("%w: duplicate batch index %d in one call", ErrContractViolation, b)
		}
		d.seen[b] = d.gen
	}
	return nil
}

// growInt32 copies a flat [rows × oldCap] buffer into a zero-filled
// [rows × 2*oldCap] buffer, preserving row contents.
func growInt32(src []int32, rows, oldCap int) []int32 {
	dst := make([]int32, rows*oldCap*2)
	for b := 0; b < rows; b++ {
		copy(dst[b*oldCap*2:], src[b*oldCap:(b+1)*oldCap])
	}
	return dst
}

func growFloat64(src []float64, rows, oldCap int) []float64 {
	dst := make([]float64, rows*oldCap*2)
	for b := 0; b < rows; b++ {
		copy(dst[b*oldCap*2:], src[b*oldCap:(b+1)*oldCap])
	}
	return dst
}

// BatchedHyps stores growing label sequences, per-label frame indices and
// running scores for a whole batch of hypotheses. All per-item columns live
// in flat row-major buffers with stride equal to the current capacity, so a
// decoding step is a single batched scatter write with no per-item
// allocation. Capacity doubles on overflow for amortized O(1) appends.
type BatchedHyps struct {
	batchSize int
	maxLength int // column capacity

	lengths    []int     // labels emitted so far per item
	transcript []int32   // flat [batchSize × maxLength]
	timesteps  []int32   // flat [batchSize × maxLength]
	scores     []float64

	// Stall bookkeeping: frame of the most recent emission per item, and
	// how many trailing labels were emitted at that same frame. Decoders
	// use this to cap same-frame emissions and avoid infinite loops.
	lastTimestep      []int32
	lastTimestepLasts []int32

	dup dupCheck
}

// NewBatchedHyps creates an accumulator for batchSize hypotheses with
// initLength columns per item.
func NewBatchedHyps(batchSize, initLength int) (*BatchedHyps, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be > 0, got %d", ErrInvalidArgument, batchSize)
	}
	if initLength <= 0 {
		return nil, fmt.Errorf("%w: init length must be > 0, got %d", ErrInvalidArgument, initLength)
	}
	h := &BatchedHyps{
		batchSize:         batchSize,
		maxLength:         initLength,
		lengths:           make([]int, batchSize),
		transcript:        make([]int32, batchSize*initLength),
		timesteps:         make([]int32, batchSize*initLength),
		scores:            make([]float64, batchSize),
		lastTimestep:      make([]int32, batchSize),
		lastTimestepLasts: make([]int32, batchSize),
		dup:               newDupCheck(batchSize),
	}
	for b := range h.lastTimestep {
		h.lastTimestep[b] = noTimestep
	}
	return h, nil
}

// BatchSize returns the number of hypotheses.
func (h *BatchedHyps) BatchSize() int { return h.batchSize }

// Capacity returns the current column capacity.
func (h *BatchedHyps) Capacity() int { return h.maxLength }

// Length returns the number of labels emitted for item b.
func (h *BatchedHyps) Length(b int) int { return h.lengths[b] }

// Score returns the running score of item b.
func (h *BatchedHyps) Score(b int) float64 { return h.scores[b] }

// Labels returns the emitted labels of item b, trimmed to its length.
// The slice aliases internal storage and is valid until the next Append.
func (h *BatchedHyps) Labels(b int) []int32 {
	return h.transcript[b*h.maxLength : b*h.maxLength+h.lengths[b]]
}

// Timesteps returns the frame index of each emitted label of item b,
// trimmed to its length. Valid until the next Append.
func (h *BatchedHyps) Timesteps(b int) []int32 {
	return h.timesteps[b*h.maxLength : b*h.maxLength+h.lengths[b]]
}

// LastTimestep returns the frame of the most recent emission for item b,
// or -1 before any emission.
func (h *BatchedHyps) LastTimestep(b int) int32 { return h.lastTimestep[b] }

// RepeatCount returns how many trailing labels of item b were emitted at
// LastTimestep(b).
func (h *BatchedHyps) RepeatCount(b int) int32 { return h.lastTimestepLasts[b] }

// allocateMore doubles the column capacity, preserving all rows.
// Both buffers are reallocated before either field is replaced, so a failed
// allocation cannot leave the accumulator half-resized.
func (h *BatchedHyps) allocateMore() {
	transcript := growInt32(h.transcript, h.batchSize, h.maxLength)
	timesteps := growInt32(h.timesteps, h.batchSize, h.maxLength)
	h.transcript = transcript
	h.timesteps = timesteps
	h.maxLength *= 2
}

// Append records one decoding step. active selects the batch items that
// emitted a label this step; labels, timeIndices and scores are aligned
// element-wise with active. An empty active set is a no-op. Labels are
// assumed non-blank: blank steps belong in BatchedAlignments only.
func (h *BatchedHyps) Append(active []int, labels, timeIndices []int32, scores []float64) error {
	if len(active) == 0 {
		return nil
	}
	if len(labels) != len(active) || len(timeIndices) != len(active) || len(scores) != len(active) {
		return fmt.Errorf("%w: %d active indices, %d labels, %d time indices, %d scores",
			ErrContractViolation, len(active), len(labels), len(timeIndices), len(scores))
	}
	if err := h.dup.validate(active); err != nil {
		return err
	}
	maxLen := 0
	for _, b := range active {
		if h.lengths[b] > maxLen {
			maxLen = h.lengths[b]
		}
	}
	if maxLen >= h.maxLength {
		h.allocateMore()
	}
	for i, b := range active {
		pos := b*h.maxLength + h.lengths[b]
		h.scores[b] += scores[i]
		h.transcript[pos] = labels[i]
		h.timesteps[pos] = timeIndices[i]
		if h.lastTimestep[b] == timeIndices[i] {
			h.lastTimestepLasts[b]++
		} else {
			h.lastTimestepLasts[b] = 1
		}
		h.lastTimestep[b] = timeIndices[i]
		h.lengths[b]++
	}
	return nil
}
