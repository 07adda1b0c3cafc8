package services

import (
	"time"

	"github.com/Bipul-Dubey/health-index/shared/dataset"
	"github.com/Bipul-Dubey/health-index/shared/emitter"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
	"github.com/Bipul-Dubey/health-index/shared/store"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

type Credentials struct {
	Username string
	Password string
}

// Dependencies are built once in main and shared by every service.
type Dependencies struct {
	Credentials    Credentials
	Dataset        *dataset.Dataset
	Scaler         *dataset.Scaler
	Registry       *regressor.Registry
	Store          store.Store
	Emitter        emitter.Emitter
	Signer         *utils.TokenSigner
	PredictTimeout time.Duration
}

type ServiceManager struct {
	AuthenticationService AuthenticationService
	PredictService        PredictService
	DatasetService        DatasetService
}

func NewServiceManager(deps Dependencies) (*ServiceManager, error) {
	authService, err := NewAuthenticationService(deps.Credentials, deps.Store, deps.Signer)
	if err != nil {
		return nil, err
	}
	if deps.Emitter == nil {
		deps.Emitter = emitter.Noop{}
	}

	return &ServiceManager{
		AuthenticationService: authService,
		PredictService:        NewPredictService(deps.Dataset, deps.Scaler, deps.Registry, deps.Store, deps.Emitter, deps.PredictTimeout),
		DatasetService:        NewDatasetService(deps.Dataset),
	}, nil
}
