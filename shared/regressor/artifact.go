package regressor

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

// header is the part shared by every artifact file.
type header struct {
	Kind     constants.ModelKind `json:"kind"`
	Features []string            `json:"features"`
}

// LoadFile reads a model artifact and checks it was fit on features, in order.
func LoadFile(path string, features []string) (constants.ModelKind, Regressor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read model artifact: %w", err)
	}
	kind, m, err := Decode(data, features)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return kind, m, nil
}

func Decode(data []byte, features []string) (constants.ModelKind, Regressor, error) {
	var h header
	if err := json.Unmarshal(data, &h); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := sameOrder(h.Features, features); err != nil {
		return "", nil, err
	}

	var (
		m interface {
			Regressor
			validate(nFeatures int) error
		}
	)
	switch h.Kind {
	case constants.ModelKindLinear:
		m = &Linear{}
	case constants.ModelKindRandomForest:
		m = &Forest{}
	case constants.ModelKindSVR:
		m = &SVR{}
	default:
		return "", nil, fmt.Errorf("%w: kind %q has no local artifact", ErrInvalidModel, h.Kind)
	}

	if err := json.Unmarshal(data, m); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := m.validate(len(features)); err != nil {
		return "", nil, err
	}
	return h.Kind, m, nil
}

// EncodeLinear produces the artifact for a fitted linear model.
func EncodeLinear(features []string, m *Linear) ([]byte, error) {
	art := struct {
		header
		*Linear
	}{
		header: header{Kind: constants.ModelKindLinear, Features: features},
		Linear: m,
	}
	return json.MarshalIndent(art, "", "  ")
}

func sameOrder(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: artifact has %v, dataset has %v", ErrFeatureOrder, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: position %d is %q, dataset has %q", ErrFeatureOrder, i, got[i], want[i])
		}
	}
	return nil
}
