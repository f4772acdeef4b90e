package dataset

import (
	"github.com/samber/lo"
)

// Slice is a dataset backed by a plain Go slice.
type Slice[T any] []T

// Len returns the number of items.
func (s Slice[T]) Len() int {
	return len(s)
}

// Subset copies the selected items into a new Slice.
func (s Slice[T]) Subset(indices []int) (Dataset, error) {
	if err := checkIndices(len(s), indices); err != nil {
		return nil, err
	}
	return Slice[T](lo.Map(indices, func(idx, _ int) T {
		return s[idx]
	})), nil
}
