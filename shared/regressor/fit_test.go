package regressor

import (
	"errors"
	"testing"
)

func TestFitLinearRecoversExactRelation(t *testing.T) {
	// y = 2*x0 - 3*x1 + 5
	X := [][]float64{
		{0, 0},
		{1, 0},
		{0, 1},
		{2, 3},
		{-1, 4},
		{3, -2},
	}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 2*row[0] - 3*row[1] + 5
	}

	m, err := FitLinear(X, y)
	if err != nil {
		t.Fatalf("FitLinear failed: %v", err)
	}
	if !approx(m.Coef[0], 2) || !approx(m.Coef[1], -3) || !approx(m.Intercept, 5) {
		t.Errorf("unexpected fit coef=%v intercept=%v", m.Coef, m.Intercept)
	}
}

func TestFitLinearErrors(t *testing.T) {
	if _, err := FitLinear(nil, nil); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("Expected ErrTooFewSamples, got %v", err)
	}
	if _, err := FitLinear([][]float64{{1, 2}}, []float64{1}); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("Expected ErrTooFewSamples for underdetermined fit, got %v", err)
	}
	X := [][]float64{{1, 2}, {1}, {3, 4}, {5, 6}}
	if _, err := FitLinear(X, []float64{1, 2, 3, 4}); !errors.Is(err, ErrFeatureCount) {
		t.Errorf("Expected ErrFeatureCount, got %v", err)
	}
}
