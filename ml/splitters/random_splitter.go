package splitters

import (
	"github.com/pkg/errors"

	"go.viam.com/splitters/logging"
)

// RandomSplitter assigns items to subsets by slicing a uniform random permutation of the
// dataset's indices. The zero value is ready to use and logs to the global logger.
type RandomSplitter struct {
	logger logging.Logger
}

// NewRandomSplitter returns a RandomSplitter that logs each computed split at debug level.
func NewRandomSplitter(logger logging.Logger) *RandomSplitter {
	return &RandomSplitter{logger: logger}
}

// Split permutes [0, ds.Len()) and cuts the permutation into train, validation and test blocks,
// in that order. The train and validation sizes are floor(n*fraction); test gets the rest.
func (rs *RandomSplitter) Split(ds Dataset, fracs Fractions, opts ...Option) (*Split, error) {
	if ds == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil dataset")
	}
	if err := fracs.Validate(); err != nil {
		return nil, err
	}
	length := ds.Len()
	if length < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "dataset length must be non-negative, got %d", length)
	}

	options := newSplitOptions(opts)
	perm := options.permutation(length)
	trainSize, validSize := fracs.sizes(length)

	split := &Split{
		Train: perm[:trainSize:trainSize],
		Valid: perm[trainSize : trainSize+validSize : trainSize+validSize],
		Test:  perm[trainSize+validSize:],
	}
	rs.log().Debugw("computed random split",
		"length", length,
		"train", len(split.Train),
		"valid", len(split.Valid),
		"test", len(split.Test),
		"seeded", options.seed != nil,
	)
	return split, nil
}

func (rs *RandomSplitter) log() logging.Logger {
	if rs.logger == nil {
		return logging.Global()
	}
	return rs.logger
}
