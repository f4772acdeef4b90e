package dataset

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sjwhitworth/golearn/base"

	"go.viam.com/splitters/utils"
)

// Grid is a dataset whose items are the rows of a golearn data grid. Subsets are masked row views
// onto the parent grid and share its storage.
type Grid struct {
	grid base.FixedDataGrid
}

// NewGrid wraps a golearn grid.
func NewGrid(grid base.FixedDataGrid) *Grid {
	return &Grid{grid: grid}
}

// NewGridFromRows builds a grid of float attributes v0..vN with an optional "label" class
// attribute. labels may be nil.
func NewGridFromRows(data [][]float64, labels []float64) (*Grid, error) {
	if len(data) == 0 {
		return nil, errors.New("no data")
	}
	if labels != nil && len(labels) != len(data) {
		return nil, utils.NewLengthMismatchError("labels", len(data), len(labels))
	}

	rawData := base.NewDenseInstances()
	specs := make([]base.AttributeSpec, len(data[0]))
	for x := range data[0] {
		specs[x] = rawData.AddAttribute(base.NewFloatAttribute(fmt.Sprintf("v%d", x)))
	}
	var labelSpec base.AttributeSpec
	if labels != nil {
		ca := base.NewFloatAttribute("label")
		labelSpec = rawData.AddAttribute(ca)
		if err := rawData.AddClassAttribute(ca); err != nil {
			return nil, err
		}
	}

	if err := rawData.Extend(len(data)); err != nil {
		return nil, err
	}
	for x, row := range data {
		if len(row) != len(specs) {
			return nil, utils.NewLengthMismatchError(fmt.Sprintf("row %d", x), len(specs), len(row))
		}
		for y, v := range row {
			rawData.Set(specs[y], x, base.PackFloatToBytes(v))
		}
		if labels != nil {
			rawData.Set(labelSpec, x, base.PackFloatToBytes(labels[x]))
		}
	}

	return &Grid{grid: rawData}, nil
}

// Grid returns the underlying golearn grid.
func (g *Grid) Grid() base.FixedDataGrid {
	return g.grid
}

// Len returns the number of rows.
func (g *Grid) Len() int {
	_, rows := g.grid.Size()
	return rows
}

// Subset returns a view containing the selected rows in order.
func (g *Grid) Subset(indices []int) (Dataset, error) {
	if err := checkIndices(g.Len(), indices); err != nil {
		return nil, err
	}
	// rows outside indices must be masked, otherwise the view keeps the parent's size
	return &Grid{grid: base.NewInstancesViewFromVisible(g.grid, indices, g.grid.AllAttributes())}, nil
}

// FloatColumn reads a float attribute of every row, in row order.
func (g *Grid) FloatColumn(name string) ([]float64, error) {
	for _, attr := range g.grid.AllAttributes() {
		if attr.GetName() != name {
			continue
		}
		spec, err := g.grid.GetAttribute(attr)
		if err != nil {
			return nil, err
		}
		out := make([]float64, g.Len())
		for row := range out {
			out[row] = base.UnpackBytesToFloat(g.grid.Get(spec, row))
		}
		return out, nil
	}
	return nil, errors.Errorf("no attribute named %q", name)
}
