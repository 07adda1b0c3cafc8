package services

import (
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/grpc"

	"github.com/Bipul-Dubey/health-index/predictor-service/config"
	"github.com/Bipul-Dubey/health-index/shared/constants"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
)

// BuildRegistry loads every model of the manifest. Remote models sharing a
// target share one gRPC connection; the returned closer releases them.
func BuildRegistry(manifest *config.Manifest, features []string) (*regressor.Registry, func() error, error) {
	registry := regressor.NewRegistry()
	conns := make(map[string]*grpc.ClientConn)
	closeAll := func() error {
		var errs []error
		for _, cc := range conns {
			errs = append(errs, cc.Close())
		}
		return errors.Join(errs...)
	}

	for _, spec := range manifest.Models {
		var model regressor.Regressor
		if spec.Kind == constants.ModelKindRemote {
			cc, ok := conns[spec.Target]
			if !ok {
				var err error
				cc, err = config.NewGRPCClient(spec.Target)
				if err != nil {
					closeAll()
					return nil, nil, err
				}
				conns[spec.Target] = cc
			}
			model = regressor.NewRemote(cc, spec.RemoteModel, len(features))
		} else {
			kind, m, err := regressor.LoadFile(spec.Path, features)
			if err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("model %q: %w", spec.ID, err)
			}
			if kind != spec.Kind {
				closeAll()
				return nil, nil, fmt.Errorf("model %q: manifest says %s, artifact is %s", spec.ID, spec.Kind, kind)
			}
			model = m
		}

		err := registry.Register(regressor.Entry{ID: spec.ID, Name: spec.Name, Kind: spec.Kind, Model: model})
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		slog.Info("model loaded", "id", spec.ID, "kind", spec.Kind)
	}

	if manifest.Default != "" {
		if err := registry.SetDefault(manifest.Default); err != nil {
			closeAll()
			return nil, nil, err
		}
	}
	return registry, closeAll, nil
}
