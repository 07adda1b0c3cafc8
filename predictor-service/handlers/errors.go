package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/dataset"
	"github.com/Bipul-Dubey/health-index/shared/regressor"
)

// predictionStatus maps a prediction error to an HTTP status and a message
// safe to show the user.
func predictionStatus(err error) (int, string) {
	switch {
	case errors.Is(err, regressor.ErrUnknownModel):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, dataset.ErrMissingFeature),
		errors.Is(err, dataset.ErrUnknownFeature),
		errors.Is(err, dataset.ErrShape),
		errors.Is(err, regressor.ErrFeatureCount):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "prediction timed out"
	default:
		return http.StatusInternalServerError, "prediction failed"
	}
}

// queryLimit reads ?limit=, falling back to def and capping at ceiling.
func queryLimit(c *gin.Context, def, ceiling int) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return def
	}
	if n > ceiling {
		return ceiling
	}
	return n
}
