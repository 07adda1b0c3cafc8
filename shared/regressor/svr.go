package regressor

import (
	"context"
	"fmt"
	"math"
)

const (
	KernelLinear  = "linear"
	KernelRBF     = "rbf"
	KernelPoly    = "poly"
	KernelSigmoid = "sigmoid"
)

// SVR is an epsilon support vector regressor:
// f(x) = sum_i DualCoef[i] * K(SupportVectors[i], x) + Intercept.
type SVR struct {
	Kernel         string      `json:"kernel"`
	Gamma          float64     `json:"gamma"`
	Coef0          float64     `json:"coef0"`
	Degree         float64     `json:"degree"`
	SupportVectors [][]float64 `json:"support_vectors"`
	DualCoef       []float64   `json:"dual_coef"`
	Intercept      float64     `json:"intercept"`

	nFeatures int
}

func (m *SVR) Predict(_ context.Context, x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	sum := m.Intercept
	for i, sv := range m.SupportVectors {
		sum += m.DualCoef[i] * m.kernel(sv, x)
	}
	return sum, nil
}

func (m *SVR) kernel(a, b []float64) float64 {
	switch m.Kernel {
	case KernelRBF:
		d := 0.0
		for j := range a {
			diff := a[j] - b[j]
			d += diff * diff
		}
		return math.Exp(-m.Gamma * d)
	case KernelPoly:
		return math.Pow(m.Gamma*dot(a, b)+m.Coef0, m.Degree)
	case KernelSigmoid:
		return math.Tanh(m.Gamma*dot(a, b) + m.Coef0)
	default:
		return dot(a, b)
	}
}

func dot(a, b []float64) float64 {
	s := 0.0
	for j := range a {
		s += a[j] * b[j]
	}
	return s
}

func (m *SVR) validate(nFeatures int) error {
	switch m.Kernel {
	case KernelLinear, KernelRBF, KernelPoly, KernelSigmoid:
	case "":
		m.Kernel = KernelRBF
	default:
		return fmt.Errorf("%w: unsupported kernel %q", ErrInvalidModel, m.Kernel)
	}
	if m.Kernel == KernelPoly && m.Degree == 0 {
		m.Degree = 3
	}
	if len(m.SupportVectors) == 0 {
		return fmt.Errorf("%w: svr has no support vectors", ErrInvalidModel)
	}
	if len(m.DualCoef) != len(m.SupportVectors) {
		return fmt.Errorf("%w: %d dual coefficients for %d support vectors", ErrInvalidModel, len(m.DualCoef), len(m.SupportVectors))
	}
	for i, sv := range m.SupportVectors {
		if len(sv) != nFeatures {
			return fmt.Errorf("%w: support vector %d has %d values, want %d", ErrInvalidModel, i, len(sv), nFeatures)
		}
	}
	m.nFeatures = nFeatures
	return nil
}
