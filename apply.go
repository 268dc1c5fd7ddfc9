package ragged

import "fmt"

// RowFunc is a row-wise function applied by Apply. It receives one slice per
// input array, zipped positionally, and returns the row's output. A
// transform preserving row length returns one element per observation; a
// reduction returns a single-element slice (see Reduce).
type RowFunc[T, R any] func(rows ...[]T) ([]R, error)

// RowFunc2 is the explicit two-output variant of RowFunc for row functions
// producing a pair of results, applied by Apply2.
type RowFunc2[T, R1, R2 any] func(rows ...[]T) ([]R1, []R2, error)

// Reduce adapts a per-row reduction to a RowFunc by wrapping its scalar
// result in a one-element slice, so Apply yields exactly one output element
// per row.
func Reduce[T, R any](f func(rows ...[]T) (R, error)) RowFunc[T, R] {
	return func(rows ...[]T) ([]R, error) {
		v, err := f(rows...)
		if err != nil {
			var zero []R
			return zero, err
		}
		return []R{v}, nil
	}
}

// ApplyOptions contains the optional parameters of Apply and Apply2.
type ApplyOptions struct {
	// Rows selects which rows to process, order preserved and duplicates
	// allowed. Nil means all rows.
	Rows []int

	// Executor runs the per-row tasks. Nil selects a shared default pool
	// sized from the environment.
	Executor Executor
}

// Apply invokes fn once per row of the zipped input arrays, concurrently on
// the configured executor, and concatenates the per-row outputs in row
// order. Tasks are independent; the collection order is the submission
// order regardless of completion order, and the first error encountered in
// that order aborts the call. Already-submitted tasks are not cancelled.
func Apply[T, R any](fn RowFunc[T, R], arrays [][]T, rowsize []int, opts ApplyOptions) ([]R, error) {
	zipped, err := zipRows(arrays, rowsize, opts.Rows)
	if err != nil {
		return nil, err
	}

	results := make([][]R, len(zipped))
	err = ApplyIndexed(opts.Executor, len(zipped), func(i int) error {
		out, err := fn(zipped[i]...)
		if err != nil {
			return err
		}
		results[i] = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	var flat []R
	for _, r := range results {
		flat = append(flat, r...)
	}
	return flat, nil
}

// Apply2 is Apply for row functions returning two outputs. Each output
// position is reassembled independently across all rows.
func Apply2[T, R1, R2 any](fn RowFunc2[T, R1, R2], arrays [][]T, rowsize []int, opts ApplyOptions) ([]R1, []R2, error) {
	zipped, err := zipRows(arrays, rowsize, opts.Rows)
	if err != nil {
		return nil, nil, err
	}

	first := make([][]R1, len(zipped))
	second := make([][]R2, len(zipped))
	err = ApplyIndexed(opts.Executor, len(zipped), func(i int) error {
		out1, out2, err := fn(zipped[i]...)
		if err != nil {
			return err
		}
		first[i] = out1
		second[i] = out2
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var flat1 []R1
	for _, r := range first {
		flat1 = append(flat1, r...)
	}
	var flat2 []R2
	for _, r := range second {
		flat2 = append(flat2, r...)
	}
	return flat1, flat2, nil
}

// ApplyIndexed is the engine's fan-out primitive: it submits n independent
// tasks to the executor and awaits their results in submission order,
// returning the first error found in that order. It underlies Apply and the
// dataset subsetter's predicate dispatch.
func ApplyIndexed(ex Executor, n int, task func(i int) error) error {
	if ex == nil {
		ex = defaultExecutor()
	}

	errs := make([]error, n)
	done := make([]chan struct{}, n)
	for i := 0; i < n; i++ {
		i := i
		done[i] = make(chan struct{})
		ex.Submit(func() {
			defer close(done[i])
			errs[i] = task(i)
		})
	}

	for i := 0; i < n; i++ {
		<-done[i]
		if errs[i] != nil {
			// Abort as soon as the failed result is awaited. Tasks already
			// submitted keep running; there is no cancellation.
			return errs[i]
		}
	}
	return nil
}

// zipRows validates the arrays against the row-size vector, unpacks each
// array honoring the row selection, and zips the rows positionally into one
// argument tuple per row.
func zipRows[T any](arrays [][]T, rowsize []int, rows []int) ([][][]T, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: no input arrays", ErrEmptyInput)
	}

	total := sumInts(rowsize)
	for k, arr := range arrays {
		if len(arr) != total {
			return nil, fmt.Errorf("%w: rowsize sums to %d, array %d has length %d", ErrRowsizeMismatch, total, k, len(arr))
		}
	}

	unpacked := make([][][]T, len(arrays))
	for k, arr := range arrays {
		u, err := Unpack(arr, rowsize, rows...)
		if err != nil {
			return nil, err
		}
		unpacked[k] = u
	}

	if len(unpacked[0]) == 0 {
		return nil, fmt.Errorf("%w: row selection produced no rows", ErrEmptyInput)
	}

	zipped := make([][][]T, len(unpacked[0]))
	for i := range zipped {
		args := make([][]T, len(arrays))
		for k := range arrays {
			args[k] = unpacked[k][i]
		}
		zipped[i] = args
	}
	return zipped, nil
}
