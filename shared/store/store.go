// Package store keeps login sessions and the prediction log, either in
// postgres through gorm or in process memory.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Bipul-Dubey/health-index/shared/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionStore interface {
	Create(ctx context.Context, username string) (*models.Session, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	// Revoke clears the authenticated flag. Revoking an unknown or already
	// revoked session is not an error.
	Revoke(ctx context.Context, id uuid.UUID) error
}

type PredictionStore interface {
	Record(ctx context.Context, rec *models.PredictionRecord) error
	// Recent returns the newest records of a session first.
	Recent(ctx context.Context, sessionID uuid.UUID, limit int) ([]models.PredictionRecord, error)
}

type Store interface {
	SessionStore
	PredictionStore
	Close() error
}
