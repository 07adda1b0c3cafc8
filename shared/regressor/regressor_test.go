package regressor

import (
	"context"
	"errors"
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// sampleTree splits on feature 0 at 0, then on feature 1 at 0.5.
func sampleTree() Tree {
	return Tree{
		ChildrenLeft:  []int{1, -1, 3, -1, -1},
		ChildrenRight: []int{2, -1, 4, -1, -1},
		Feature:       []int{0, -2, 1, -2, -2},
		Threshold:     []float64{0, -2, 0.5, -2, -2},
		Value:         []float64{0, 1, 0, 2, 3},
	}
}

func TestLinearPredict(t *testing.T) {
	m := &Linear{Coef: []float64{2, -1}, Intercept: 0.5}

	got, err := m.Predict(context.Background(), []float64{3, 4})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if !approx(got, 2.5) {
		t.Errorf("Expected 2.5, got %v", got)
	}

	if _, err := m.Predict(context.Background(), []float64{1}); !errors.Is(err, ErrFeatureCount) {
		t.Errorf("Expected ErrFeatureCount, got %v", err)
	}
}

func TestForestAveragesTrees(t *testing.T) {
	constant := Tree{
		ChildrenLeft:  []int{-1},
		ChildrenRight: []int{-1},
		Feature:       []int{-2},
		Threshold:     []float64{-2},
		Value:         []float64{10},
	}
	m := &Forest{Trees: []Tree{sampleTree(), constant}}
	if err := m.validate(2); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	tests := []struct {
		x    []float64
		want float64
	}{
		{[]float64{-1, 0}, 5.5},
		{[]float64{0, 9}, 5.5}, // equal to threshold goes left
		{[]float64{1, 0.2}, 6},
		{[]float64{1, 1}, 6.5},
	}
	for _, tt := range tests {
		got, err := m.Predict(context.Background(), tt.x)
		if err != nil {
			t.Fatalf("Predict(%v) failed: %v", tt.x, err)
		}
		if !approx(got, tt.want) {
			t.Errorf("Predict(%v): expected %v, got %v", tt.x, tt.want, got)
		}
	}
}

func TestTreeValidateRejectsBadShapes(t *testing.T) {
	backwards := sampleTree()
	backwards.ChildrenRight[2] = 1

	lopsided := sampleTree()
	lopsided.ChildrenRight[1] = 3

	badFeature := sampleTree()
	badFeature.Feature[2] = 7

	short := sampleTree()
	short.Threshold = short.Threshold[:2]

	for name, tree := range map[string]Tree{
		"backwards child": backwards,
		"one child":       lopsided,
		"feature range":   badFeature,
		"short arrays":    short,
		"empty":           {},
	} {
		if err := tree.validate(2); !errors.Is(err, ErrInvalidModel) {
			t.Errorf("%s: expected ErrInvalidModel, got %v", name, err)
		}
	}

	if err := (&Forest{}).validate(2); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Expected empty forest to be invalid, got %v", err)
	}
}

func TestSVRKernels(t *testing.T) {
	tests := []struct {
		name string
		m    SVR
		x    []float64
		want float64
	}{
		{
			name: "rbf",
			m:    SVR{Kernel: KernelRBF, Gamma: 0.5, SupportVectors: [][]float64{{0, 0}}, DualCoef: []float64{2}, Intercept: 1},
			x:    []float64{1, 1},
			want: 2*math.Exp(-1) + 1,
		},
		{
			name: "linear",
			m:    SVR{Kernel: KernelLinear, SupportVectors: [][]float64{{1, 2}}, DualCoef: []float64{1}, Intercept: -1},
			x:    []float64{3, 4},
			want: 10,
		},
		{
			name: "poly",
			m:    SVR{Kernel: KernelPoly, Gamma: 1, Coef0: 1, Degree: 2, SupportVectors: [][]float64{{1, 0}}, DualCoef: []float64{0.5}},
			x:    []float64{2, 5},
			want: 4.5,
		},
		{
			name: "sigmoid",
			m:    SVR{Kernel: KernelSigmoid, Gamma: 1, SupportVectors: [][]float64{{1, 1}}, DualCoef: []float64{1}},
			x:    []float64{0, 0},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.m
			if err := m.validate(2); err != nil {
				t.Fatalf("validate failed: %v", err)
			}
			got, err := m.Predict(context.Background(), tt.x)
			if err != nil {
				t.Fatalf("Predict failed: %v", err)
			}
			if !approx(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSVRValidate(t *testing.T) {
	m := SVR{SupportVectors: [][]float64{{1, 2}}, DualCoef: []float64{1}}
	if err := m.validate(2); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if m.Kernel != KernelRBF {
		t.Errorf("Expected default kernel rbf, got %q", m.Kernel)
	}

	bad := []SVR{
		{Kernel: "cubic", SupportVectors: [][]float64{{1, 2}}, DualCoef: []float64{1}},
		{SupportVectors: [][]float64{{1, 2}}, DualCoef: []float64{1, 2}},
		{SupportVectors: [][]float64{{1}}, DualCoef: []float64{1}},
		{},
	}
	for i, m := range bad {
		if err := m.validate(2); !errors.Is(err, ErrInvalidModel) {
			t.Errorf("case %d: expected ErrInvalidModel, got %v", i, err)
		}
	}
}

// TestPredictionIsDeterministic verifies repeated calls give identical output.
func TestPredictionIsDeterministic(t *testing.T) {
	forest := &Forest{Trees: []Tree{sampleTree(), sampleTree()}}
	if err := forest.validate(2); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	models := []Regressor{
		&Linear{Coef: []float64{0.3, 0.7}, Intercept: 1},
		forest,
	}
	x := []float64{0.25, 0.75}
	for _, m := range models {
		first, _ := m.Predict(context.Background(), x)
		for i := 0; i < 10; i++ {
			got, _ := m.Predict(context.Background(), x)
			if got != first {
				t.Fatalf("%T: prediction changed from %v to %v", m, first, got)
			}
		}
	}
}
