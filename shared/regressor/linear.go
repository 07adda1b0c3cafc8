package regressor

import (
	"context"
	"fmt"
)

// Linear is an ordinary least squares model.
type Linear struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (m *Linear) Predict(_ context.Context, x []float64) (float64, error) {
	if err := checkWidth(x, len(m.Coef)); err != nil {
		return 0, err
	}
	sum := m.Intercept
	for j, v := range x {
		sum += m.Coef[j] * v
	}
	return sum, nil
}

func (m *Linear) validate(nFeatures int) error {
	if len(m.Coef) != nFeatures {
		return fmt.Errorf("%w: linear has %d coefficients for %d features", ErrInvalidModel, len(m.Coef), nFeatures)
	}
	return nil
}
