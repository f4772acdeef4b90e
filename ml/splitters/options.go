package splitters

import (
	"math/rand/v2"
)

type splitOptions struct {
	seed *int64
	rng  *rand.Rand
}

// An Option configures a single call to Split.
type Option func(*splitOptions)

// WithSeed makes the permutation reproducible. It replaces any generator set by WithRand.
func WithSeed(seed int64) Option {
	return func(opts *splitOptions) {
		opts.seed = &seed
		opts.rng = nil
	}
}

// WithRand draws the permutation from rng. The generator is advanced and is not safe for
// concurrent use. It replaces any seed set by WithSeed.
func WithRand(rng *rand.Rand) Option {
	return func(opts *splitOptions) {
		opts.rng = rng
		opts.seed = nil
	}
}

func newSplitOptions(opts []Option) splitOptions {
	var ret splitOptions
	for _, opt := range opts {
		opt(&ret)
	}
	return ret
}

// newSeededRand returns a generator local to one call, so seeded splits never touch shared state.
func newSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// permutation returns a uniform permutation of [0, n) from the configured source. Without a seed
// or generator the process-wide source is used and the result is not reproducible.
func (opts splitOptions) permutation(n int) []int {
	switch {
	case opts.seed != nil:
		return newSeededRand(*opts.seed).Perm(n)
	case opts.rng != nil:
		return opts.rng.Perm(n)
	default:
		return rand.Perm(n)
	}
}
