package regressor

import (
	"errors"
	"testing"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Default(); !errors.Is(err, ErrNoModels) {
		t.Errorf("Expected ErrNoModels, got %v", err)
	}

	lr := &Linear{Coef: []float64{1}}
	if err := r.Register(Entry{ID: "linear_regression", Name: "Linear Regression", Kind: constants.ModelKindLinear, Model: lr}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(Entry{ID: "svm", Kind: constants.ModelKindSVR, Model: lr}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := r.Register(Entry{ID: "svm", Model: lr}); !errors.Is(err, ErrDuplicateModel) {
		t.Errorf("Expected ErrDuplicateModel, got %v", err)
	}
	if err := r.Register(Entry{ID: "empty"}); !errors.Is(err, ErrInvalidModel) {
		t.Errorf("Expected ErrInvalidModel, got %v", err)
	}

	e, err := r.Get("")
	if err != nil || e.ID != "linear_regression" {
		t.Errorf("Expected first model as default, got %v (%v)", e.ID, err)
	}
	if err := r.SetDefault("svm"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}
	if e, _ := r.Default(); e.ID != "svm" {
		t.Errorf("Expected svm default, got %s", e.ID)
	}
	if e, _ := r.Get("svm"); e.Name != "svm" {
		t.Errorf("Expected name to fall back to id, got %q", e.Name)
	}
	if _, err := r.Get("knn"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Expected ErrUnknownModel, got %v", err)
	}
	if err := r.SetDefault("knn"); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("Expected ErrUnknownModel, got %v", err)
	}

	list := r.List()
	if len(list) != 2 || list[0].ID != "linear_regression" || list[1].ID != "svm" {
		t.Errorf("unexpected list order %v", list)
	}
}
