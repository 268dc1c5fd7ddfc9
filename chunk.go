package ragged

import "fmt"

// Align controls which part of a sequence is kept when its length is not a
// whole number of chunks.
type Align string

const (
	// AlignStart keeps the beginning of the sequence and discards the
	// remainder at the end.
	AlignStart Align = "start"
	// AlignMiddle discards half of the remainder at each end.
	AlignMiddle Align = "middle"
	// AlignEnd keeps the end of the sequence and discards the remainder at
	// the beginning.
	AlignEnd Align = "end"
)

// ValidAlignments returns all valid alignment policies.
func ValidAlignments() []Align {
	return []Align{AlignStart, AlignMiddle, AlignEnd}
}

// IsValid checks if an alignment is recognized.
func (a Align) IsValid() bool {
	for _, v := range ValidAlignments() {
		if a == v {
			return true
		}
	}
	return false
}

// ChunkOptions contains the optional chunking parameters.
type ChunkOptions struct {
	// Overlap is the number of elements shared by consecutive chunks. It
	// must be strictly less than the chunk length. A negative overlap
	// leaves gaps between chunks.
	Overlap int

	// Align selects which part of the sequence survives when the length
	// does not divide evenly. Empty means AlignStart.
	Align Align
}

// Chunk divides x into windows of the given length, advancing by
// length-overlap each step. The number of chunks is
// (len(x)-length)/(length-overlap) + 1 when len(x) >= length, else zero.
// Every chunk is a copy, not a view.
func Chunk[T any](x []T, length int, opts ChunkOptions) ([][]T, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: chunk length must be positive, got %d", ErrInvalidArgument, length)
	}
	if opts.Overlap >= length {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk length %d", ErrInvalidArgument, opts.Overlap, length)
	}

	align := opts.Align
	if align == "" {
		align = AlignStart
	}

	numChunks := 0
	if len(x) >= length {
		numChunks = (len(x)-length)/(length-opts.Overlap) + 1
	}
	remainder := len(x) - numChunks*length + (numChunks-1)*opts.Overlap

	var start int
	switch align {
	case AlignStart:
		start = 0
	case AlignMiddle:
		start = remainder / 2
	case AlignEnd:
		start = remainder
	default:
		return nil, fmt.Errorf("%w: align must be one of 'start', 'middle', or 'end', got %q", ErrInvalidArgument, align)
	}

	chunks := make([][]T, numChunks)
	for n := range chunks {
		end := start + length
		chunk := make([]T, length)
		copy(chunk, x[start:end])
		chunks[n] = chunk
		start = end - opts.Overlap
	}
	return chunks, nil
}
