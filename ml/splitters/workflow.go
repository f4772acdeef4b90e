package splitters

import (
	"github.com/pkg/errors"

	"go.viam.com/splitters/ml/dataset"
	"go.viam.com/splitters/utils"
)

// DefaultTrainValidFractions returns the 90/10 train/validation split with no test subset.
func DefaultTrainValidFractions() Fractions {
	return Fractions{Train: 0.9, Valid: 0.1}
}

// A Converter turns a dataset and a list of its indices into a subset.
type Converter[S any] func(ds Dataset, indices []int) (S, error)

// DefaultConverter subsets datasets implementing dataset.Dataset.
func DefaultConverter(ds Dataset, indices []int) (dataset.Dataset, error) {
	subsettable, ok := ds.(dataset.Dataset)
	if !ok {
		return nil, utils.NewUnimplementedInterfaceError("dataset.Dataset", ds)
	}
	return subsettable.Subset(indices)
}

// TrainValidTestSplit splits ds with s and returns the index lists.
func TrainValidTestSplit(s Splitter, ds Dataset, fracs Fractions, opts ...Option) (train, valid, test []int, err error) {
	split, err := s.Split(ds, fracs, opts...)
	if err != nil {
		return nil, nil, nil, err
	}
	return split.Train, split.Valid, split.Test, nil
}

// TrainValidSplit splits ds into training and validation indices only. fracTrain and fracValid
// must sum to one. Because both sizes are truncated, fractions such as 0.85/0.15 can leave items
// over for a test subset; that is reported as an error rather than dropping them, so callers
// should pick fractions that divide the dataset length evenly.
func TrainValidSplit(s Splitter, ds Dataset, fracTrain, fracValid float64, opts ...Option) (train, valid []int, err error) {
	split, err := s.Split(ds, Fractions{Train: fracTrain, Valid: fracValid}, opts...)
	if err != nil {
		return nil, nil, err
	}
	if len(split.Test) != 0 {
		return nil, nil, errors.Errorf("splitter %T left %d items for testing with a test fraction of 0", s, len(split.Test))
	}
	return split.Train, split.Valid, nil
}

// SplitDataset splits ds and returns the three subsets instead of their indices.
func SplitDataset(s Splitter, ds dataset.Dataset, fracs Fractions, opts ...Option) (train, valid, test dataset.Dataset, err error) {
	return SplitDatasetWith[dataset.Dataset](s, ds, fracs, DefaultConverter, opts...)
}

// SplitDatasetWith splits ds and maps each index list to a subset with conv.
func SplitDatasetWith[S any](
	s Splitter, ds Dataset, fracs Fractions, conv Converter[S], opts ...Option,
) (train, valid, test S, err error) {
	var zero S
	split, err := s.Split(ds, fracs, opts...)
	if err != nil {
		return zero, zero, zero, err
	}
	subsets := make([]S, 0, 3)
	for _, named := range []struct {
		name    string
		indices []int
	}{
		{"train", split.Train},
		{"valid", split.Valid},
		{"test", split.Test},
	} {
		subset, err := conv(ds, named.indices)
		if err != nil {
			return zero, zero, zero, errors.Wrapf(err, "converting %s subset", named.name)
		}
		subsets = append(subsets, subset)
	}
	return subsets[0], subsets[1], subsets[2], nil
}
