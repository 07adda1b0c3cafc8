// Package emitter publishes prediction events to downstream consumers.
package emitter

import (
	"context"
	"encoding/json"
	"time"
)

type PredictionEvent struct {
	ID        string             `json:"id"`
	SessionID string             `json:"session_id"`
	Username  string             `json:"username"`
	Model     string             `json:"model"`
	Features  map[string]float64 `json:"features"`
	Clamped   []string           `json:"clamped,omitempty"`
	Value     float64            `json:"value"`
	Timestamp time.Time          `json:"timestamp"`
}

func (e PredictionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

type Emitter interface {
	Publish(ctx context.Context, event PredictionEvent) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, PredictionEvent) error { return nil }
func (Noop) Close() error                                   { return nil }
