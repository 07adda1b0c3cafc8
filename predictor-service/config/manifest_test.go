package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Bipul-Dubey/health-index/shared/constants"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `
default: svr
models:
  - id: linear
    name: Linear Regression
    kind: linear
    path: linear.json
  - id: svr
    name: SVM
    kind: svr
    path: /abs/svr.json
  - id: xgboost
    kind: remote
    target: localhost:50051
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if m.Default != "svr" || len(m.Models) != 3 {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if want := filepath.Join(filepath.Dir(path), "linear.json"); m.Models[0].Path != want {
		t.Errorf("Expected relative path resolved to %q, got %q", want, m.Models[0].Path)
	}
	if m.Models[1].Path != "/abs/svr.json" {
		t.Errorf("Expected absolute path kept, got %q", m.Models[1].Path)
	}
	remote := m.Models[2]
	if remote.Kind != constants.ModelKindRemote || remote.RemoteModel != "xgboost" {
		t.Errorf("unexpected remote spec %+v", remote)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "models: []", "no models"},
		{"missing id", "models:\n  - kind: linear\n    path: a.json", "no id"},
		{"duplicate", "models:\n  - {id: a, kind: linear, path: a.json}\n  - {id: a, kind: svr, path: b.json}", "duplicate"},
		{"bad kind", "models:\n  - {id: a, kind: xgb, path: a.json}", "unknown kind"},
		{"no path", "models:\n  - {id: a, kind: linear}", "needs a path"},
		{"no target", "models:\n  - {id: a, kind: remote}", "needs a target"},
		{"bad default", "default: b\nmodels:\n  - {id: a, kind: linear, path: a.json}", "not listed"},
		{"bad yaml", "models: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadManifest(writeManifest(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
