package handlers

import (
	"github.com/Bipul-Dubey/health-index/predictor-service/services"
)

// PageOptions configure the HTML front end.
type PageOptions struct {
	Title string
	// ImagePath is the decorative image served at /assets/health.jpg.
	// Empty disables it.
	ImagePath    string
	SecureCookie bool
}

type HandlerManager struct {
	AuthenticationHandler *AuthenticationHandler
	PredictHandler        *PredictHandler
	DatasetHandler        *DatasetHandler
	PageHandler           *PageHandler
}

func NewHandlerManager(sm *services.ServiceManager, opts PageOptions) *HandlerManager {
	if opts.Title == "" {
		opts.Title = "Health Index Prediction App"
	}
	cookies := sessionCookies{secure: opts.SecureCookie}

	return &HandlerManager{
		AuthenticationHandler: NewAuthenticationHandler(sm.AuthenticationService, cookies),
		PredictHandler:        NewPredictHandler(sm.PredictService),
		DatasetHandler:        NewDatasetHandler(sm.DatasetService),
		PageHandler:           NewPageHandler(sm, opts, cookies),
	}
}
