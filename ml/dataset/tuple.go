package dataset

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Tuple groups datasets of equal length, such as a feature matrix and its labels. Item i of a
// Tuple is item i of every member.
type Tuple struct {
	members []Dataset
}

// NewTuple returns a Tuple over the given members, which must all have the same length.
func NewTuple(members ...Dataset) (*Tuple, error) {
	if len(members) == 0 {
		return nil, errors.New("a tuple needs at least one member")
	}
	lengths := lo.Map(members, func(member Dataset, _ int) int {
		return member.Len()
	})
	if len(lo.Uniq(lengths)) != 1 {
		return nil, errors.Wrapf(ErrLengthMismatch, "tuple member lengths %v", lengths)
	}
	return &Tuple{members: members}, nil
}

// Len returns the shared length of the members.
func (t *Tuple) Len() int {
	return t.members[0].Len()
}

// Members returns the member datasets in order.
func (t *Tuple) Members() []Dataset {
	return t.members
}

// Member returns the i-th member dataset.
func (t *Tuple) Member(i int) Dataset {
	return t.members[i]
}

// Subset applies the same indices to every member.
func (t *Tuple) Subset(indices []int) (Dataset, error) {
	if err := checkIndices(t.Len(), indices); err != nil {
		return nil, err
	}
	subsets := make([]Dataset, 0, len(t.members))
	for i, member := range t.members {
		subset, err := member.Subset(indices)
		if err != nil {
			return nil, errors.Wrapf(err, "tuple member %d", i)
		}
		subsets = append(subsets, subset)
	}
	return &Tuple{members: subsets}, nil
}
