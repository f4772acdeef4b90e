// Package splitters partitions datasets into training, validation and test subsets.
//
// A Splitter only needs the length of a dataset. The helpers in this package can additionally
// turn the computed indices back into subsets, either through the dataset's own Subset method or
// through a caller supplied Converter.
package splitters

import (
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned when split fractions or dataset lengths are unusable.
var ErrInvalidArgument = errors.New("invalid argument")

// fractionTolerance is the absolute tolerance for the fractions summing to one.
const fractionTolerance = 1.5e-7

// A Dataset is anything with a known number of items.
type Dataset interface {
	Len() int
}

// Length is a Dataset of the given size, for callers that only know how many items they have.
type Length int

// Len returns the length itself.
func (l Length) Len() int {
	return int(l)
}

// Fractions are the proportions of a dataset assigned to the train, validation and test subsets.
type Fractions struct {
	Train float64
	Valid float64
	Test  float64
}

// DefaultFractions returns the 80/10/10 train/validation/test split.
func DefaultFractions() Fractions {
	return Fractions{Train: 0.8, Valid: 0.1, Test: 0.1}
}

// Validate checks that every fraction is non-negative and that they sum to one.
func (f Fractions) Validate() error {
	for _, named := range []struct {
		name  string
		value float64
	}{
		{"train", f.Train},
		{"valid", f.Valid},
		{"test", f.Test},
	} {
		if math.IsNaN(named.value) || named.value < 0 {
			return errors.Wrapf(ErrInvalidArgument, "%s fraction must be non-negative, got %v", named.name, named.value)
		}
	}
	sum := f.Train + f.Valid + f.Test
	if !(math.Abs(sum-1) < fractionTolerance) {
		return errors.Wrapf(ErrInvalidArgument,
			"fractions must sum to 1, got %v (train=%v valid=%v test=%v)", sum, f.Train, f.Valid, f.Test)
	}
	return nil
}

// sizes returns the train and validation sizes for a dataset of the given length. Both are
// truncated and the test subset receives the remainder.
func (f Fractions) sizes(length int) (train, valid int) {
	train = int(float64(length) * f.Train)
	valid = int(float64(length) * f.Valid)
	// fractions may exceed one by the tolerance
	if train > length {
		train = length
	}
	if train+valid > length {
		valid = length - train
	}
	return train, valid
}

// A Split holds the ordered indices of each subset. Together they cover [0, length) exactly once.
type Split struct {
	Train []int `json:"train"`
	Valid []int `json:"valid"`
	Test  []int `json:"test"`
}

// Len returns the total number of indices.
func (s *Split) Len() int {
	return len(s.Train) + len(s.Valid) + len(s.Test)
}

// A Splitter computes a Split for a dataset.
type Splitter interface {
	Split(ds Dataset, fracs Fractions, opts ...Option) (*Split, error)
}
