package dataset

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"go.viam.com/splitters/utils"
)

// Tensor is a dataset whose items lie along the first axis of a dense tensor.
// An empty Tensor keeps the shape of a single item and holds no backing tensor.
type Tensor struct {
	dense     *tensor.Dense
	itemShape tensor.Shape
}

// NewTensor wraps a dense tensor with at least one dimension.
func NewTensor(dense *tensor.Dense) (*Tensor, error) {
	if dense == nil {
		return nil, errors.New("nil tensor")
	}
	shape := dense.Shape()
	if len(shape) == 0 {
		return nil, errors.New("cannot split a scalar tensor")
	}
	return &Tensor{dense: dense, itemShape: shape[1:].Clone()}, nil
}

// Dense returns the underlying tensor, or nil when the dataset is empty.
func (t *Tensor) Dense() *tensor.Dense {
	return t.dense
}

// Len returns the size of the first axis.
func (t *Tensor) Len() int {
	if t.dense == nil {
		return 0
	}
	return t.dense.Shape()[0]
}

// Subset gathers the selected items into a new tensor with the same item shape.
func (t *Tensor) Subset(indices []int) (Dataset, error) {
	if err := checkIndices(t.Len(), indices); err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return &Tensor{itemShape: t.itemShape.Clone()}, nil
	}

	src := t.dense
	// views and thunked transposes keep the storage in its original order
	if src.IsMaterializable() {
		view := src.Materialize()
		materialized, ok := view.(*tensor.Dense)
		if !ok {
			return nil, utils.NewUnexpectedTypeError(materialized, view)
		}
		src = materialized
	}

	itemSize := 1
	for _, dim := range t.itemShape {
		itemSize *= dim
	}

	var backing interface{}
	switch data := src.Data().(type) {
	case []float64:
		backing = gatherItems(data, itemSize, indices)
	case []float32:
		backing = gatherItems(data, itemSize, indices)
	case []int:
		backing = gatherItems(data, itemSize, indices)
	case []int64:
		backing = gatherItems(data, itemSize, indices)
	case []int32:
		backing = gatherItems(data, itemSize, indices)
	case []uint8:
		backing = gatherItems(data, itemSize, indices)
	case []bool:
		backing = gatherItems(data, itemSize, indices)
	default:
		return nil, errors.Errorf("don't know how to subset a tensor backed by %T", data)
	}

	shape := append(tensor.Shape{len(indices)}, t.itemShape...)
	out := tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing))
	return &Tensor{dense: out, itemShape: t.itemShape.Clone()}, nil
}

// gatherItems copies the contiguous blocks of itemSize elements selected by indices.
func gatherItems[T any](data []T, itemSize int, indices []int) []T {
	out := make([]T, 0, len(indices)*itemSize)
	for _, idx := range indices {
		out = append(out, data[idx*itemSize:(idx+1)*itemSize]...)
	}
	return out
}
