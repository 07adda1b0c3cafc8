package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

// Manifest lists the selectable models.
//
//	default: linear
//	models:
//	  - id: linear
//	    name: Linear Regression
//	    kind: linear
//	    path: linear.json
//	  - id: xgboost
//	    kind: remote
//	    target: localhost:50051
type Manifest struct {
	Default string      `yaml:"default"`
	Models  []ModelSpec `yaml:"models"`
}

type ModelSpec struct {
	ID   string              `yaml:"id"`
	Name string              `yaml:"name"`
	Kind constants.ModelKind `yaml:"kind"`
	// Path of a local artifact, relative to the manifest.
	Path string `yaml:"path"`
	// Target and RemoteModel address a model on an inference server.
	// RemoteModel defaults to ID.
	Target      string `yaml:"target"`
	RemoteModel string `yaml:"remote_model"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i := range m.Models {
		spec := &m.Models[i]
		if spec.Path != "" && !filepath.IsAbs(spec.Path) {
			spec.Path = filepath.Join(dir, spec.Path)
		}
		if spec.Kind == constants.ModelKindRemote && spec.RemoteModel == "" {
			spec.RemoteModel = spec.ID
		}
	}
	return &m, nil
}

func (m *Manifest) Validate() error {
	if len(m.Models) == 0 {
		return errors.New("no models listed")
	}

	seen := make(map[string]bool, len(m.Models))
	for i, spec := range m.Models {
		if spec.ID == "" {
			return fmt.Errorf("model %d has no id", i)
		}
		if seen[spec.ID] {
			return fmt.Errorf("duplicate model id %q", spec.ID)
		}
		seen[spec.ID] = true

		if !spec.Kind.Valid() {
			return fmt.Errorf("model %q has unknown kind %q", spec.ID, spec.Kind)
		}
		if spec.Kind == constants.ModelKindRemote {
			if spec.Target == "" {
				return fmt.Errorf("remote model %q needs a target", spec.ID)
			}
		} else if spec.Path == "" {
			return fmt.Errorf("model %q needs a path", spec.ID)
		}
	}

	if m.Default != "" && !seen[m.Default] {
		return fmt.Errorf("default model %q is not listed", m.Default)
	}
	return nil
}
