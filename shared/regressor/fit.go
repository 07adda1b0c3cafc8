package regressor

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var ErrTooFewSamples = errors.New("not enough samples to fit")

// FitLinear solves ordinary least squares with an intercept term.
func FitLinear(X [][]float64, y []float64) (*Linear, error) {
	n := len(X)
	if n == 0 || n != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d targets", ErrTooFewSamples, n, len(y))
	}
	p := len(X[0])
	if n < p+1 {
		return nil, fmt.Errorf("%w: %d rows for %d parameters", ErrTooFewSamples, n, p+1)
	}

	A := mat.NewDense(n, p+1, nil)
	for i, row := range X {
		if len(row) != p {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrFeatureCount, i, len(row), p)
		}
		for j, v := range row {
			A.Set(i, j, v)
		}
		A.Set(i, p, 1)
	}
	b := mat.NewVecDense(n, append([]float64(nil), y...))

	var beta mat.VecDense
	if err := beta.SolveVec(A, b); err != nil {
		return nil, fmt.Errorf("least squares failed: %w", err)
	}

	m := &Linear{Coef: make([]float64, p), Intercept: beta.AtVec(p)}
	for j := 0; j < p; j++ {
		m.Coef[j] = beta.AtVec(j)
	}
	return m, nil
}
