package models

import (
	"time"

	"github.com/google/uuid"
)

type PredictRequest struct {
	Model    string             `json:"model" validate:"max=64"`
	Features map[string]float64 `json:"features" validate:"required"`
}

type PredictResponse struct {
	ID       uuid.UUID          `json:"id"`
	Model    string             `json:"model"`
	Value    float64            `json:"value"`
	Features map[string]float64 `json:"features"`
	// Clamped names the features that were pinned into dataset bounds.
	Clamped []string  `json:"clamped,omitempty"`
	At      time.Time `json:"at"`
}

type ModelInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Default bool   `json:"default"`
}

// FeatureBounds describes one slider.
type FeatureBounds struct {
	Feature string  `json:"feature"`
	Label   string  `json:"label"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

type DatasetPreview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

type PredictionView struct {
	ID       uuid.UUID          `json:"id"`
	Model    string             `json:"model"`
	Value    float64            `json:"value"`
	Features map[string]float64 `json:"features"`
	Clamped  bool               `json:"clamped"`
	At       time.Time          `json:"at"`
}
