package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Bipul-Dubey/health-index/predictor-service/config"
	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/constants"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
	"github.com/Bipul-Dubey/health-index/shared/db"
	"github.com/Bipul-Dubey/health-index/shared/emitter"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
	"github.com/Bipul-Dubey/health-index/shared/store"
)

const connectTimeout = 5 * time.Second

// app holds the resources loaded once at startup.
type app struct {
	data        *dataset.Dataset
	scaler      *dataset.Scaler
	registry    *regressor.Registry
	closeModels func() error
	store       store.Store
	emitter     emitter.Emitter
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	data, err := dataset.Load(cfg.DatasetPath, cfg.TargetColumn)
	if err != nil {
		return nil, err
	}
	if err := data.RequireFeatures(constants.Features); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", cfg.DatasetPath, err)
	}
	scaler, err := dataset.FitScaler(data.Features(), data.Matrix())
	if err != nil {
		return nil, fmt.Errorf("failed to fit scaler: %w", err)
	}
	slog.Info("dataset loaded", "path", cfg.DatasetPath, "rows", data.Len(), "target", data.TargetColumn(), "features", data.Features())

	manifest, err := config.LoadManifest(cfg.ModelsManifest)
	if err != nil {
		return nil, err
	}
	registry, closeModels, err := services.BuildRegistry(manifest, data.Features())
	if err != nil {
		return nil, err
	}

	return &app{
		data:        data,
		scaler:      scaler,
		registry:    registry,
		closeModels: closeModels,
		store:       openStore(ctx, cfg),
		emitter:     openEmitter(ctx, cfg),
	}, nil
}

// openStore uses postgres when enabled and reachable, process memory otherwise.
func openStore(ctx context.Context, cfg *config.Config) store.Store {
	if !cfg.DBEnabled {
		return store.NewMemoryStore()
	}

	gdb, err := db.NewDB(ctx, cfg.DB)
	if err != nil {
		slog.Warn("database unavailable, using in-memory sessions", "error", err)
		return store.NewMemoryStore()
	}
	gs := store.NewGormStore(gdb)
	if err := gs.Migrate(ctx); err != nil {
		slog.Warn("database migration failed, using in-memory sessions", "error", err)
		gs.Close()
		return store.NewMemoryStore()
	}
	return gs
}

func openEmitter(ctx context.Context, cfg *config.Config) emitter.Emitter {
	if cfg.MQTTBroker == "" {
		return emitter.Noop{}
	}

	e := emitter.NewMQTTEmitter(emitter.MQTTConfig{
		Broker:   cfg.MQTTBroker,
		ClientID: cfg.MQTTClientID,
		Topic:    cfg.MQTTTopic,
	})
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := e.Connect(connectCtx); err != nil {
		slog.Warn("mqtt unavailable, prediction events disabled", "error", err)
		return emitter.Noop{}
	}
	return e
}

func (a *app) Close() error {
	return errors.Join(a.emitter.Close(), a.store.Close(), a.closeModels())
}
