package ragged

// Prune removes rows shorter than minRowsize from a ragged array, returning
// the contiguously repacked flat array and its row-size vector. It is a thin
// composition of Apply: undersized rows are replaced with empty rows, the
// same filter is applied to the row-size vector itself, and the empty
// placeholders vanish on concatenation.
func Prune[T any](flat []T, rowsize []int, minRowsize int) ([]T, []int, error) {
	pruned, err := Apply(func(rows ...[]T) ([]T, error) {
		if len(rows[0]) >= minRowsize {
			return rows[0], nil
		}
		return nil, nil
	}, [][]T{flat}, rowsize, ApplyOptions{})
	if err != nil {
		return nil, nil, err
	}

	// The row-size vector is itself a ragged array of unit rows.
	ones := make([]int, len(rowsize))
	for i := range ones {
		ones[i] = 1
	}
	prunedSizes, err := Apply(func(rows ...[]int) ([]int, error) {
		if rows[0][0] >= minRowsize {
			return rows[0], nil
		}
		return nil, nil
	}, [][]int{rowsize}, ones, ApplyOptions{})
	if err != nil {
		return nil, nil, err
	}

	return pruned, prunedSizes, nil
}
