// Package ml provides helpers for inspecting dataset splits.
package ml

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"

	"go.viam.com/splitters/ml/dataset"
	"go.viam.com/splitters/ml/splitters"
	"go.viam.com/splitters/utils"
)

// SubsetSummary describes one subset of a split.
type SubsetSummary struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Fraction float64 `json:"fraction"`

	// Label statistics are only filled in when labels are given and the subset is not empty.
	HasLabels   bool    `json:"has_labels"`
	LabelMean   float64 `json:"label_mean"`
	LabelStdDev float64 `json:"label_stddev"`
	LabelMin    float64 `json:"label_min"`
	LabelMax    float64 `json:"label_max"`
}

// SplitSummary describes the train, validation and test subsets of a split, in that order.
type SplitSummary struct {
	Total   int             `json:"total"`
	Subsets []SubsetSummary `json:"subsets"`
}

// Summarize reports the size of each subset and, when labels is a non-nil numeric slice with one
// entry per item, the distribution of labels within it.
func Summarize(split *splitters.Split, labels interface{}) (*SplitSummary, error) {
	var values []float64
	if labels != nil {
		var err error
		if values, err = convertToFloat64Slice(labels); err != nil {
			return nil, err
		}
		if len(values) != split.Len() {
			return nil, utils.NewLengthMismatchError("labels", split.Len(), len(values))
		}
	}

	summary := &SplitSummary{Total: split.Len()}
	for _, subset := range []struct {
		name    string
		indices []int
	}{
		{"train", split.Train},
		{"valid", split.Valid},
		{"test", split.Test},
	} {
		sub := SubsetSummary{Name: subset.name, Count: len(subset.indices)}
		if summary.Total > 0 {
			sub.Fraction = float64(sub.Count) / float64(summary.Total)
		}
		if values != nil && len(subset.indices) > 0 {
			if err := sub.describeLabels(values, subset.indices); err != nil {
				return nil, errors.Wrapf(err, "summarizing %s labels", subset.name)
			}
		}
		summary.Subsets = append(summary.Subsets, sub)
	}
	return summary, nil
}

func (sub *SubsetSummary) describeLabels(values []float64, indices []int) error {
	data := make(stats.Float64Data, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(values) {
			return errors.Errorf("index %d has no label", idx)
		}
		data = append(data, values[idx])
	}

	var err error
	if sub.LabelMean, err = stats.Mean(data); err != nil {
		return err
	}
	if sub.LabelStdDev, err = stats.StandardDeviation(data); err != nil {
		return err
	}
	if sub.LabelMin, err = stats.Min(data); err != nil {
		return err
	}
	if sub.LabelMax, err = stats.Max(data); err != nil {
		return err
	}
	sub.HasLabels = true
	return nil
}

// String renders the summary as a table.
func (s *SplitSummary) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Subset", "Count", "Fraction", "Label mean", "Label stddev", "Label min", "Label max"})
	for _, sub := range s.Subsets {
		row := table.Row{sub.Name, sub.Count, fmt.Sprintf("%.4f", sub.Fraction), "", "", "", ""}
		if sub.HasLabels {
			row[3] = fmt.Sprintf("%.4f", sub.LabelMean)
			row[4] = fmt.Sprintf("%.4f", sub.LabelStdDev)
			row[5] = fmt.Sprintf("%.4f", sub.LabelMin)
			row[6] = fmt.Sprintf("%.4f", sub.LabelMax)
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"total", s.Total})
	return t.Render()
}

// number interface for converting between numbers.
type number interface {
	constraints.Integer | constraints.Float
}

// convertNumberSlice converts any number slice into another number slice.
func convertNumberSlice[T1, T2 number](t1 []T1) []T2 {
	t2 := make([]T2, len(t1))
	for i := range t1 {
		t2[i] = T2(t1[i])
	}
	return t2
}

// convertToFloat64Slice converts any numeric slice into a []float64.
func convertToFloat64Slice(slice interface{}) ([]float64, error) {
	switch v := slice.(type) {
	case []float64:
		return v, nil
	case dataset.Slice[float64]:
		return v, nil
	case dataset.Slice[int]:
		return convertNumberSlice[int, float64](v), nil
	case []float32:
		return convertNumberSlice[float32, float64](v), nil
	case []int:
		return convertNumberSlice[int, float64](v), nil
	case []uint:
		return convertNumberSlice[uint, float64](v), nil
	case []int8:
		return convertNumberSlice[int8, float64](v), nil
	case []int16:
		return convertNumberSlice[int16, float64](v), nil
	case []int32:
		return convertNumberSlice[int32, float64](v), nil
	case []int64:
		return convertNumberSlice[int64, float64](v), nil
	case []uint8:
		return convertNumberSlice[uint8, float64](v), nil
	case []uint16:
		return convertNumberSlice[uint16, float64](v), nil
	case []uint32:
		return convertNumberSlice[uint32, float64](v), nil
	case []uint64:
		return convertNumberSlice[uint64, float64](v), nil
	default:
		return nil, utils.NewUnexpectedTypeError([]float64{}, slice)
	}
}

