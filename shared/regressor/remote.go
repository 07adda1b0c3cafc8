package regressor

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
)

// Remote evaluates a model hosted by an inference server.
type Remote struct {
	client    *InferenceClient
	model     string
	nFeatures int
}

func NewRemote(cc grpc.ClientConnInterface, model string, nFeatures int) *Remote {
	return &Remote{
		client:    NewInferenceClient(cc),
		model:     model,
		nFeatures: nFeatures,
	}
}

func (m *Remote) Predict(ctx context.Context, x []float64) (float64, error) {
	if err := checkWidth(x, m.nFeatures); err != nil {
		return 0, err
	}
	res, err := m.client.Predict(ctx, &PredictRequest{Model: m.model, Features: x})
	if err != nil {
		return 0, fmt.Errorf("remote inference %q: %w", m.model, err)
	}
	return res.Value, nil
}
