// Command model-trainer fits a linear Health Index model on the reference
// data set and writes it as a model artifact.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/Bipul-Dubey/health-index/shared/constants"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
)

func main() {
	datasetPath := flag.String("dataset", "assets/DeviceUsageDuration.csv", "Path to the reference CSV")
	target := flag.String("target", constants.TargetHealthIndex, "Target column")
	out := flag.String("out", "assets/models/linear.json", "Where to write the artifact")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	var buf bytes.Buffer
	r2, err := train(*datasetPath, *target, &buf)
	if err != nil {
		slog.Error("training failed", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		slog.Error("failed to write artifact", "path", *out, "error", err)
		os.Exit(1)
	}
	slog.Info("linear model written", "path", *out, "r2", r2)
}

// train fits OLS on the standardized features and writes the artifact to w.
// It returns the coefficient of determination on the training data.
func train(datasetPath, target string, w io.Writer) (float64, error) {
	data, err := dataset.Load(datasetPath, target)
	if err != nil {
		return 0, err
	}
	features := data.Features()

	scaler, err := dataset.FitScaler(features, data.Matrix())
	if err != nil {
		return 0, err
	}
	X, err := scaler.TransformBatch(data.Matrix())
	if err != nil {
		return 0, err
	}
	y := data.Target()

	model, err := regressor.FitLinear(X, y)
	if err != nil {
		return 0, fmt.Errorf("failed to fit: %w", err)
	}

	fitted := make([]float64, len(X))
	for i, row := range X {
		fitted[i] = model.Intercept
		for j, v := range row {
			fitted[i] += model.Coef[j] * v
		}
	}

	artifact, err := regressor.EncodeLinear(features, model)
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(artifact); err != nil {
		return 0, err
	}
	return stat.RSquaredFrom(fitted, y, nil), nil
}
