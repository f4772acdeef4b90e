package dataset

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dataset whose items are the rows of a dense matrix.
// gonum does not allow zero sized matrices, so an empty Matrix holds a nil Dense.
type Matrix struct {
	dense *mat.Dense
}

// NewMatrix wraps a dense matrix. A nil matrix is an empty dataset.
func NewMatrix(dense *mat.Dense) *Matrix {
	return &Matrix{dense: dense}
}

// Dense returns the underlying matrix, or nil when the dataset is empty.
func (m *Matrix) Dense() *mat.Dense {
	return m.dense
}

// Len returns the number of rows.
func (m *Matrix) Len() int {
	if m.dense == nil {
		return 0
	}
	rows, _ := m.dense.Dims()
	return rows
}

// Subset copies the selected rows into a new matrix.
func (m *Matrix) Subset(indices []int) (Dataset, error) {
	if err := checkIndices(m.Len(), indices); err != nil {
		return nil, err
	}
	if len(indices) == 0 {
		return &Matrix{}, nil
	}

	_, cols := m.dense.Dims()
	out := mat.NewDense(len(indices), cols, nil)
	for i, idx := range indices {
		out.SetRow(i, m.dense.RawRowView(idx))
	}
	return &Matrix{dense: out}, nil
}
