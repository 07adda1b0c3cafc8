// Package regressor holds the fitted models the service can choose between.
//
// Every model honours the same contract: it accepts one standardized feature
// vector, in training column order, and returns one scalar. Local models are
// evaluated in process from JSON artifacts; remote models are evaluated by an
// inference server over gRPC.
package regressor

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrFeatureCount   = errors.New("feature count mismatch")
	ErrInvalidModel   = errors.New("invalid model artifact")
	ErrFeatureOrder   = errors.New("artifact feature order does not match dataset")
	ErrUnknownModel   = errors.New("unknown model")
	ErrDuplicateModel = errors.New("duplicate model id")
	ErrNoModels       = errors.New("no models registered")
)

// Regressor predicts a single value from a standardized feature vector.
type Regressor interface {
	Predict(ctx context.Context, x []float64) (float64, error)
}

func checkWidth(x []float64, want int) error {
	if len(x) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), want)
	}
	return nil
}
