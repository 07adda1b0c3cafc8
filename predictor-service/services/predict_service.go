package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Bipul-Dubey/health-index/predictor-service/models"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
	"github.com/Bipul-Dubey/health-index/shared/emitter"
	sharedmodels "github.com/Bipul-Dubey/health-index/shared/models"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
	"github.com/Bipul-Dubey/health-index/shared/store"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

var (
	ErrInvalidInput      = errors.New("invalid prediction input")
	ErrInvalidPrediction = errors.New("model returned a non-finite value")
)

const publishTimeout = 5 * time.Second

type PredictService interface {
	Predict(ctx context.Context, claims *utils.SessionClaims, req *models.PredictRequest) (*models.PredictResponse, error)
	Models() []models.ModelInfo
	History(ctx context.Context, claims *utils.SessionClaims, limit int) ([]models.PredictionView, error)
}

type predictService struct {
	data     *dataset.Dataset
	scaler   *dataset.Scaler
	registry *regressor.Registry
	records  store.PredictionStore
	emitter  emitter.Emitter
	timeout  time.Duration
	now      func() time.Time
}

func NewPredictService(data *dataset.Dataset, scaler *dataset.Scaler, registry *regressor.Registry, records store.PredictionStore, em emitter.Emitter, timeout time.Duration) PredictService {
	return &predictService{
		data:     data,
		scaler:   scaler,
		registry: registry,
		records:  records,
		emitter:  em,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (s *predictService) Predict(ctx context.Context, claims *utils.SessionClaims, req *models.PredictRequest) (*models.PredictResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entry, err := s.registry.Get(req.Model)
	if err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(req.Features))
	var clamped []string
	for name, v := range req.Features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %q is not a finite number", ErrInvalidInput, name)
		}
		cv, moved := s.data.Clamp(name, v)
		if moved {
			clamped = append(clamped, name)
		}
		values[name] = cv
	}
	sort.Strings(clamped)

	row, err := s.data.Row(values)
	if err != nil {
		return nil, err
	}
	scaled, err := s.scaler.Transform(row)
	if err != nil {
		return nil, err
	}

	predictCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	value, err := entry.Model.Predict(predictCtx, scaled)
	if err != nil {
		return nil, fmt.Errorf("model %q: %w", entry.ID, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("model %q: %w", entry.ID, ErrInvalidPrediction)
	}

	resp := &models.PredictResponse{
		ID:       uuid.New(),
		Model:    entry.ID,
		Value:    value,
		Features: values,
		Clamped:  clamped,
		At:       s.now().UTC(),
	}

	s.record(ctx, claims, resp)
	s.publish(claims, resp)

	return resp, nil
}

// record stores the prediction. Failures are logged and never fail the request.
func (s *predictService) record(ctx context.Context, claims *utils.SessionClaims, resp *models.PredictResponse) {
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		slog.Warn("prediction not recorded, bad session id", "session_id", claims.SessionID)
		return
	}
	features, err := json.Marshal(resp.Features)
	if err != nil {
		slog.Error("failed to encode prediction features", "error", err)
		return
	}

	rec := &sharedmodels.PredictionRecord{
		ID:        resp.ID,
		SessionID: sessionID,
		ModelID:   resp.Model,
		Features:  string(features),
		Value:     resp.Value,
		Clamped:   len(resp.Clamped) > 0,
		CreatedAt: resp.At,
	}
	if err := s.records.Record(ctx, rec); err != nil {
		slog.Error("failed to record prediction", "error", err, "prediction_id", resp.ID)
	}
}

func (s *predictService) publish(claims *utils.SessionClaims, resp *models.PredictResponse) {
	event := emitter.PredictionEvent{
		ID:        resp.ID.String(),
		SessionID: claims.SessionID,
		Username:  claims.Username,
		Model:     resp.Model,
		Features:  resp.Features,
		Clamped:   resp.Clamped,
		Value:     resp.Value,
		Timestamp: resp.At,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.emitter.Publish(ctx, event); err != nil {
			slog.Warn("failed to publish prediction event", "error", err, "prediction_id", event.ID)
		}
	}()
}

func (s *predictService) Models() []models.ModelInfo {
	defaultID := s.registry.DefaultID()
	entries := s.registry.List()
	out := make([]models.ModelInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.ModelInfo{
			ID:      e.ID,
			Name:    e.Name,
			Kind:    string(e.Kind),
			Default: e.ID == defaultID,
		})
	}
	return out
}

func (s *predictService) History(ctx context.Context, claims *utils.SessionClaims, limit int) ([]models.PredictionView, error) {
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}

	records, err := s.records.Recent(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	out := make([]models.PredictionView, 0, len(records))
	for _, rec := range records {
		view := models.PredictionView{
			ID:      rec.ID,
			Model:   rec.ModelID,
			Value:   rec.Value,
			Clamped: rec.Clamped,
			At:      rec.CreatedAt,
		}
		if rec.Features != "" {
			if err := json.Unmarshal([]byte(rec.Features), &view.Features); err != nil {
				slog.Warn("stored prediction has unreadable features", "prediction_id", rec.ID, "error", err)
			}
		}
		out = append(out, view)
	}
	return out, nil
}
