package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/predictor-service/models"
	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/middleware"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

type PredictHandler struct {
	predictService services.PredictService
}

func NewPredictHandler(predictService services.PredictService) *PredictHandler {
	return &PredictHandler{
		predictService: predictService,
	}
}

func (h *PredictHandler) Predict(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req models.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "invalid request body"))
		return
	}

	resp, err := h.predictService.Predict(c.Request.Context(), claims, &req)
	if err != nil {
		code, msg := predictionStatus(err)
		if code >= http.StatusInternalServerError {
			slog.Error("prediction failed", "error", err, "model", req.Model)
		}
		c.JSON(code, utils.ErrorResponse(code, msg))
		return
	}

	c.JSON(http.StatusOK, utils.APIResponse(false, "prediction successful", resp))
}

func (h *PredictHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, utils.APIResponse(false, "models fetched", h.predictService.Models()))
}

func (h *PredictHandler) History(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	history, err := h.predictService.History(c.Request.Context(), claims, queryLimit(c, 20, 100))
	if err != nil {
		slog.Error("failed to load prediction history", "error", err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "failed to load predictions"))
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "predictions fetched", history))
}
