package dataset

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

var ErrShape = errors.New("row width does not match fitted columns")

// Scaler standardizes features to zero mean and unit variance. It mirrors
// scikit-learn's StandardScaler: population standard deviation, and a
// constant column is scaled by 1.
type Scaler struct {
	Columns []string
	Mean    []float64
	Scale   []float64
}

func FitScaler(columns []string, X [][]float64) (*Scaler, error) {
	if len(X) == 0 {
		return nil, ErrEmptyDataset
	}
	c := len(columns)
	s := &Scaler{
		Columns: append([]string(nil), columns...),
		Mean:    make([]float64, c),
		Scale:   make([]float64, c),
	}

	col := make([]float64, len(X))
	for j := 0; j < c; j++ {
		for i, row := range X {
			if len(row) != c {
				return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShape, i, len(row), c)
			}
			col[i] = row[j]
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		s.Mean[j] = mean
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}
	return s, nil
}

func (s *Scaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrShape, len(row), len(s.Mean))
	}
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

func (s *Scaler) TransformBatch(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		y, err := s.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = y
	}
	return out, nil
}
