package splitters

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"

	"go.viam.com/splitters/logging"
	"go.viam.com/splitters/ml/dataset"
)

// fixedSplitter returns the same split regardless of its input.
type fixedSplitter struct {
	split *Split
}

func (fs *fixedSplitter) Split(ds Dataset, fracs Fractions, opts ...Option) (*Split, error) {
	return fs.split, nil
}

func TestTrainValidTestSplit(t *testing.T) {
	splitter := NewRandomSplitter(logging.NewTestLogger(t))

	train, valid, testIdx, err := TrainValidTestSplit(splitter, Length(20), DefaultFractions(), WithSeed(5))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, train, test.ShouldHaveLength, 16)
	test.That(t, valid, test.ShouldHaveLength, 2)
	test.That(t, testIdx, test.ShouldHaveLength, 2)

	split, err := splitter.Split(Length(20), DefaultFractions(), WithSeed(5))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, train, test.ShouldResemble, split.Train)
	test.That(t, valid, test.ShouldResemble, split.Valid)
	test.That(t, testIdx, test.ShouldResemble, split.Test)

	_, _, _, err = TrainValidTestSplit(splitter, Length(20), Fractions{0.5, 0.5, 0.5})
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)
}

func TestTrainValidSplit(t *testing.T) {
	splitter := NewRandomSplitter(logging.NewTestLogger(t))

	defaults := DefaultTrainValidFractions()
	train, valid, err := TrainValidSplit(splitter, Length(10), defaults.Train, defaults.Valid, WithSeed(9))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, train, test.ShouldHaveLength, 9)
	test.That(t, valid, test.ShouldHaveLength, 1)
	checkPartition(t, &Split{Train: train, Valid: valid}, 10)

	_, _, err = TrainValidSplit(splitter, Length(10), 0.8, 0.1)
	test.That(t, errors.Is(err, ErrInvalidArgument), test.ShouldBeTrue)

	// 8.5 and 1.5 items truncate to 8 and 1, leaving one item over
	_, _, err = TrainValidSplit(splitter, Length(10), 0.85, 0.15, WithSeed(9))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "left 1 items for testing")

	train, valid, err = TrainValidSplit(splitter, Length(20), 0.85, 0.15, WithSeed(9))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, train, test.ShouldHaveLength, 17)
	test.That(t, valid, test.ShouldHaveLength, 3)

	leaky := &fixedSplitter{&Split{Train: []int{0}, Valid: []int{1}, Test: []int{2}}}
	_, _, err = TrainValidSplit(leaky, Length(3), 0.9, 0.1)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "left 1 items for testing")
}

func TestSplitDataset(t *testing.T) {
	splitter := NewRandomSplitter(logging.NewTestLogger(t))
	items := dataset.Slice[string]{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}

	train, valid, testSet, err := SplitDataset(splitter, items, DefaultFractions(), WithSeed(42))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, train.Len(), test.ShouldEqual, 8)
	test.That(t, valid.Len(), test.ShouldEqual, 1)
	test.That(t, testSet.Len(), test.ShouldEqual, 1)

	split, err := splitter.Split(items, DefaultFractions(), WithSeed(42))
	test.That(t, err, test.ShouldBeNil)
	for i, idx := range split.Train {
		test.That(t, train.(dataset.Slice[string])[i], test.ShouldEqual, items[idx])
	}
	test.That(t, valid.(dataset.Slice[string])[0], test.ShouldEqual, items[split.Valid[0]])
	test.That(t, testSet.(dataset.Slice[string])[0], test.ShouldEqual, items[split.Test[0]])

	t.Run("tuple", func(t *testing.T) {
		features := dataset.NewMatrix(mat.NewDense(10, 1, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}))
		labels := dataset.Slice[float64]{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}
		tuple, err := dataset.NewTuple(features, labels)
		test.That(t, err, test.ShouldBeNil)

		train, _, _, err := SplitDataset(splitter, tuple, DefaultFractions(), WithSeed(1))
		test.That(t, err, test.ShouldBeNil)
		trainTuple := train.(*dataset.Tuple)
		trainFeatures := trainTuple.Member(0).(*dataset.Matrix).Dense()
		trainLabels := trainTuple.Member(1).(dataset.Slice[float64])
		for i := range trainLabels {
			test.That(t, trainLabels[i], test.ShouldEqual, 10*trainFeatures.At(i, 0))
		}
	})
}

func TestSplitDatasetWith(t *testing.T) {
	var splitter RandomSplitter

	_, _, _, err := SplitDatasetWith(&splitter, Length(10), DefaultFractions(), DefaultConverter)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected implementation of dataset.Dataset")

	rows := []string{"r0", "r1", "r2", "r3"}
	byName := func(ds Dataset, indices []int) ([]string, error) {
		out := make([]string, 0, len(indices))
		for _, idx := range indices {
			out = append(out, rows[idx])
		}
		return out, nil
	}
	train, valid, testRows, err := SplitDatasetWith(&splitter, Length(len(rows)), Fractions{0.5, 0.25, 0.25}, byName, WithSeed(11))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, train, test.ShouldHaveLength, 2)
	test.That(t, valid, test.ShouldHaveLength, 1)
	test.That(t, testRows, test.ShouldHaveLength, 1)

	failing := func(ds Dataset, indices []int) (int, error) {
		return 0, errors.New("boom")
	}
	_, _, _, err = SplitDatasetWith(&splitter, Length(4), DefaultFractions(), failing)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "converting train subset: boom")
}

func floatsTo(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func floatIDs(values []float64, stride int) []int {
	ids := make([]int, 0, len(values)/stride)
	for i := 0; i < len(values); i += stride {
		ids = append(ids, int(values[i]))
	}
	return ids
}

// emptied shrinks a one item dataset to zero items, for adapters that cannot hold zero items directly.
func emptied(t *testing.T, ds dataset.Dataset, err error) dataset.Dataset {
	t.Helper()
	test.That(t, err, test.ShouldBeNil)
	empty, err := ds.Subset(nil)
	test.That(t, err, test.ShouldBeNil)
	return empty
}

func TestSplitDatasetAdapters(t *testing.T) {
	newMatrix := func(t *testing.T, n int) dataset.Dataset {
		if n == 0 {
			return dataset.NewMatrix(nil)
		}
		return dataset.NewMatrix(mat.NewDense(n, 1, floatsTo(n)))
	}
	matrixIDs := func(t *testing.T, ds dataset.Dataset) []int {
		dense := ds.(*dataset.Matrix).Dense()
		if dense == nil {
			return []int{}
		}
		return floatIDs(mat.Col(nil, 0, dense), 1)
	}
	newSlice := func(t *testing.T, n int) dataset.Dataset {
		return dataset.Slice[int](lo.Range(n))
	}
	sliceIDs := func(t *testing.T, ds dataset.Dataset) []int {
		return ds.(dataset.Slice[int])
	}

	for _, adapter := range []struct {
		name  string
		build func(t *testing.T, n int) dataset.Dataset
		ids   func(t *testing.T, ds dataset.Dataset) []int
	}{
		{"slice", newSlice, sliceIDs},
		{"matrix", newMatrix, matrixIDs},
		{
			"tensor",
			func(t *testing.T, n int) dataset.Dataset {
				if n == 0 {
					tt, err := dataset.NewTensor(tensor.New(tensor.WithShape(1, 2), tensor.WithBacking([]float64{0, 0})))
					return emptied(t, tt, err)
				}
				backing := make([]float64, 0, 2*n)
				for i := 0; i < n; i++ {
					backing = append(backing, float64(i), float64(-i))
				}
				tt, err := dataset.NewTensor(tensor.New(tensor.WithShape(n, 2), tensor.WithBacking(backing)))
				test.That(t, err, test.ShouldBeNil)
				return tt
			},
			func(t *testing.T, ds dataset.Dataset) []int {
				dense := ds.(*dataset.Tensor).Dense()
				if dense == nil {
					return []int{}
				}
				test.That(t, []int(dense.Shape()), test.ShouldResemble, []int{ds.Len(), 2})
				return floatIDs(dense.Data().([]float64), 2)
			},
		},
		{
			"grid",
			func(t *testing.T, n int) dataset.Dataset {
				if n == 0 {
					g, err := dataset.NewGridFromRows([][]float64{{0}}, []float64{0})
					return emptied(t, g, err)
				}
				rows := lo.Map(floatsTo(n), func(v float64, _ int) []float64 {
					return []float64{v}
				})
				g, err := dataset.NewGridFromRows(rows, floatsTo(n))
				test.That(t, err, test.ShouldBeNil)
				return g
			},
			func(t *testing.T, ds dataset.Dataset) []int {
				values, err := ds.(*dataset.Grid).FloatColumn("v0")
				test.That(t, err, test.ShouldBeNil)
				labels, err := ds.(*dataset.Grid).FloatColumn("label")
				test.That(t, err, test.ShouldBeNil)
				test.That(t, labels, test.ShouldResemble, values)
				return floatIDs(values, 1)
			},
		},
		{
			"tuple",
			func(t *testing.T, n int) dataset.Dataset {
				tuple, err := dataset.NewTuple(newMatrix(t, n), newSlice(t, n))
				test.That(t, err, test.ShouldBeNil)
				return tuple
			},
			func(t *testing.T, ds dataset.Dataset) []int {
				tuple := ds.(*dataset.Tuple)
				ids := sliceIDs(t, tuple.Member(1))
				test.That(t, matrixIDs(t, tuple.Member(0)), test.ShouldResemble, ids)
				return ids
			},
		},
	} {
		for _, n := range []int{0, 1, 4, 10} {
			t.Run(fmt.Sprintf("%s/%d", adapter.name, n), func(t *testing.T) {
				var splitter RandomSplitter
				ds := adapter.build(t, n)
				test.That(t, ds.Len(), test.ShouldEqual, n)

				train, valid, testSet, err := SplitDataset(&splitter, ds, DefaultFractions(), WithSeed(int64(n)))
				test.That(t, err, test.ShouldBeNil)
				test.That(t, train.Len()+valid.Len()+testSet.Len(), test.ShouldEqual, n)

				expected, err := splitter.Split(Length(n), DefaultFractions(), WithSeed(int64(n)))
				test.That(t, err, test.ShouldBeNil)
				got := &Split{
					Train: adapter.ids(t, train),
					Valid: adapter.ids(t, valid),
					Test:  adapter.ids(t, testSet),
				}
				test.That(t, got.Train, test.ShouldHaveLength, train.Len())
				test.That(t, got.Valid, test.ShouldHaveLength, valid.Len())
				test.That(t, got.Test, test.ShouldHaveLength, testSet.Len())
				checkPartition(t, got, n)
				sameIndices(t, got.Train, expected.Train)
				sameIndices(t, got.Valid, expected.Valid)
				sameIndices(t, got.Test, expected.Test)
			})
		}
	}
}

func sameIndices(t *testing.T, got, expected []int) {
	t.Helper()
	test.That(t, got, test.ShouldHaveLength, len(expected))
	for i := range expected {
		test.That(t, got[i], test.ShouldEqual, expected[i])
	}
}
