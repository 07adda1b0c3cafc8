package models

import (
	"time"

	"github.com/google/uuid"
)

// ===============================
// Session
// ===============================
type Session struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username      string    `gorm:"type:varchar(255);not null"`
	Authenticated bool      `gorm:"default:false"`
	CreatedAt     time.Time `gorm:"default:now()"`
	RevokedAt     *time.Time
}

// ===============================
// PredictionRecord
// ===============================
type PredictionRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index"`
	ModelID   string    `gorm:"type:varchar(64);not null"`
	Features  string    `gorm:"type:text"` // JSON object, feature name -> value
	Value     float64   `gorm:"not null"`
	Clamped   bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"default:now();index"`
}
