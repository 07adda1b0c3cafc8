package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

type DatasetHandler struct {
	datasetService services.DatasetService
}

func NewDatasetHandler(datasetService services.DatasetService) *DatasetHandler {
	return &DatasetHandler{datasetService: datasetService}
}

func (h *DatasetHandler) Features(c *gin.Context) {
	c.JSON(http.StatusOK, utils.APIResponse(false, "features fetched", h.datasetService.Bounds()))
}

func (h *DatasetHandler) Dataset(c *gin.Context) {
	c.JSON(http.StatusOK, utils.APIResponse(false, "dataset fetched", h.datasetService.Preview(queryLimit(c, 100, 10000))))
}

func (h *DatasetHandler) Chart(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.datasetService.Chart(&buf); err != nil {
		slog.Error("failed to render chart", "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
