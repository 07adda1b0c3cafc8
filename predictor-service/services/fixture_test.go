package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Bipul-Dubey/health-index/shared/constants"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
	"github.com/Bipul-Dubey/health-index/shared/emitter"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
	"github.com/Bipul-Dubey/health-index/shared/store"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

const fixtureCSV = `Age,Income,SocialMediaSpent,EntertainmentSpend,StressLevel,UsageDurationMinutes,HealthIndex
25,40000,100,200,3,120,70.5
35,60000,50,150,5,60,65
45,80000,10,50,8,30,55.5
`

type recordingEmitter struct {
	events chan emitter.PredictionEvent
}

func (r *recordingEmitter) Publish(_ context.Context, e emitter.PredictionEvent) error {
	r.events <- e
	return nil
}

func (r *recordingEmitter) Close() error { return nil }

// slowModel blocks until its context ends.
type slowModel struct{}

func (slowModel) Predict(ctx context.Context, _ []float64) (float64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

type fixture struct {
	sm      *ServiceManager
	data    *dataset.Dataset
	scaler  *dataset.Scaler
	store   *store.MemoryStore
	emitter *recordingEmitter
	signer  *utils.TokenSigner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	data, err := dataset.Read(strings.NewReader(fixtureCSV), constants.TargetHealthIndex)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	scaler, err := dataset.FitScaler(data.Features(), data.Matrix())
	if err != nil {
		t.Fatalf("scaler: %v", err)
	}

	registry := regressor.NewRegistry()
	entries := []regressor.Entry{
		{ID: "linear", Name: "Linear Regression", Kind: constants.ModelKindLinear, Model: &regressor.Linear{Coef: []float64{1, 2, 3, 4, 5, 6}, Intercept: 60}},
		{ID: "slow", Name: "Slow", Kind: constants.ModelKindRemote, Model: slowModel{}},
	}
	for _, e := range entries {
		if err := registry.Register(e); err != nil {
			t.Fatal(err)
		}
	}

	f := &fixture{
		data:    data,
		scaler:  scaler,
		store:   store.NewMemoryStore(),
		emitter: &recordingEmitter{events: make(chan emitter.PredictionEvent, 8)},
		signer:  utils.NewTokenSigner("test-secret", time.Hour),
	}
	f.sm, err = NewServiceManager(Dependencies{
		Credentials:    Credentials{Username: "admin", Password: "password"},
		Dataset:        data,
		Scaler:         scaler,
		Registry:       registry,
		Store:          f.store,
		Emitter:        f.emitter,
		Signer:         f.signer,
		PredictTimeout: 50 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("NewServiceManager: %v", err)
	}
	return f
}
