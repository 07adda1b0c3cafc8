package services

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Bipul-Dubey/health-index/predictor-service/models"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
	sharedmodels "github.com/Bipul-Dubey/health-index/shared/models"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

func login(t *testing.T, f *fixture) *utils.SessionClaims {
	t.Helper()
	ctx := context.Background()
	resp, err := f.sm.AuthenticationService.Login(ctx, &sharedmodels.LoginRequest{Username: "admin", Password: "password"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	claims, err := f.sm.AuthenticationService.Resolve(ctx, resp.AccessToken)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return claims
}

func middleRow() map[string]float64 {
	return map[string]float64{
		"Age":                  35,
		"Income":               60000,
		"SocialMediaSpent":     50,
		"EntertainmentSpend":   150,
		"StressLevel":          5,
		"UsageDurationMinutes": 60,
	}
}

func expectedLinear(t *testing.T, f *fixture, values map[string]float64) float64 {
	t.Helper()
	row, err := f.data.Row(values)
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := f.scaler.Transform(row)
	if err != nil {
		t.Fatal(err)
	}
	want := 60.0
	for j, v := range scaled {
		want += float64(j+1) * v
	}
	return want
}

func TestPredictIsDeterministic(t *testing.T) {
	f := newFixture(t)
	claims := login(t, f)
	ctx := context.Background()

	first, err := f.sm.PredictService.Predict(ctx, claims, &models.PredictRequest{Features: middleRow()})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	second, err := f.sm.PredictService.Predict(ctx, claims, &models.PredictRequest{Model: "linear", Features: middleRow()})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if first.Value != second.Value {
		t.Errorf("Expected identical predictions, got %v and %v", first.Value, second.Value)
	}
	if want := expectedLinear(t, f, middleRow()); math.Abs(first.Value-want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, first.Value)
	}
	if first.Model != "linear" || len(first.Clamped) != 0 {
		t.Errorf("unexpected response %+v", first)
	}
}

func TestPredictClampsToBounds(t *testing.T) {
	f := newFixture(t)
	claims := login(t, f)

	in := middleRow()
	in["Age"] = 100
	in["StressLevel"] = -4

	resp, err := f.sm.PredictService.Predict(context.Background(), claims, &models.PredictRequest{Features: in})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(resp.Clamped) != 2 || resp.Clamped[0] != "Age" || resp.Clamped[1] != "StressLevel" {
		t.Errorf("Expected Age and StressLevel clamped, got %v", resp.Clamped)
	}
	if resp.Features["Age"] != 45 || resp.Features["StressLevel"] != 3 {
		t.Errorf("Expected values pinned to bounds, got %v", resp.Features)
	}

	pinned := middleRow()
	pinned["Age"] = 45
	pinned["StressLevel"] = 3
	if want := expectedLinear(t, f, pinned); math.Abs(resp.Value-want) > 1e-9 {
		t.Errorf("Expected %v, got %v", want, resp.Value)
	}
}

func TestPredictErrors(t *testing.T) {
	f := newFixture(t)
	claims := login(t, f)

	missing := middleRow()
	delete(missing, "Income")
	unknown := middleRow()
	unknown["Weight"] = 70
	nan := middleRow()
	nan["Age"] = math.NaN()

	tests := []struct {
		name string
		req  *models.PredictRequest
		want error
	}{
		{"unknown model", &models.PredictRequest{Model: "xgboost", Features: middleRow()}, regressor.ErrUnknownModel},
		{"missing feature", &models.PredictRequest{Features: missing}, dataset.ErrMissingFeature},
		{"unknown feature", &models.PredictRequest{Features: unknown}, dataset.ErrUnknownFeature},
		{"not finite", &models.PredictRequest{Features: nan}, ErrInvalidInput},
		{"no features", &models.PredictRequest{}, ErrInvalidInput},
		{"timeout", &models.PredictRequest{Model: "slow", Features: middleRow()}, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sm.PredictService.Predict(context.Background(), claims, tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if history, _ := f.sm.PredictService.History(context.Background(), claims, 0); len(history) != 0 {
		t.Errorf("Expected failed predictions not to be recorded, got %d", len(history))
	}
}

func TestPredictRecordsAndPublishes(t *testing.T) {
	f := newFixture(t)
	claims := login(t, f)
	ctx := context.Background()

	resp, err := f.sm.PredictService.Predict(ctx, claims, &models.PredictRequest{Features: middleRow()})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	history, err := f.sm.PredictService.History(ctx, claims, 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 || history[0].ID != resp.ID || history[0].Value != resp.Value {
		t.Fatalf("unexpected history %+v", history)
	}
	if history[0].Features["Income"] != 60000 {
		t.Errorf("Expected stored features, got %v", history[0].Features)
	}

	select {
	case ev := <-f.emitter.events:
		if ev.ID != resp.ID.String() || ev.Username != "admin" || ev.Model != "linear" {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected a prediction event")
	}
}

func TestModels(t *testing.T) {
	f := newFixture(t)
	list := f.sm.PredictService.Models()
	if len(list) != 2 {
		t.Fatalf("Expected 2 models, got %d", len(list))
	}
	if list[0].ID != "linear" || !list[0].Default || list[0].Name != "Linear Regression" {
		t.Errorf("unexpected first model %+v", list[0])
	}
	if list[1].Default {
		t.Errorf("Expected only one default, got %+v", list[1])
	}
}
