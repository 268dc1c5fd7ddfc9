package ragged

import "errors"

// Sentinel errors returned by the ragged array operations. Callers can test
// for them with errors.Is; the wrapped message carries the specifics.
var (
	// ErrRowsizeMismatch reports that the sum of a row-size vector does not
	// equal the length of the flat array it is paired with.
	ErrRowsizeMismatch = errors.New("sum of rowsize does not equal array length")

	// ErrEmptyInput reports an operation invoked with no input arrays or a
	// row selection that produces no rows.
	ErrEmptyInput = errors.New("empty input")

	// ErrIndexOutOfBounds reports an observation or row index outside the
	// valid range.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidArgument reports a malformed parameter such as a
	// non-positive chunk length or an unrecognized alignment.
	ErrInvalidArgument = errors.New("invalid argument")
)
