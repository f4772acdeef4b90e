// Package dataset adapts in-memory containers (slices, gonum matrices, gorgonia tensors and
// golearn grids) to the dataset collaborator used by the splitters. Every adapter can report its
// length and extract an ordered subset of its items.
package dataset

import (
	"github.com/pkg/errors"
)

var (
	// ErrIndexOutOfRange is returned when a subset index does not address an item.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrLengthMismatch is returned when datasets that must line up have different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
)

// A Dataset is an ordered collection of items that can be restricted to a list of indices.
type Dataset interface {
	// Len returns the number of items.
	Len() int
	// Subset returns a dataset whose i-th item is the item at indices[i].
	Subset(indices []int) (Dataset, error)
}

func checkIndices(length int, indices []int) error {
	for _, idx := range indices {
		if idx < 0 || idx >= length {
			return errors.Wrapf(ErrIndexOutOfRange, "index %d not in [0, %d)", idx, length)
		}
	}
	return nil
}
