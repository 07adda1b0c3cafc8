package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/predictor-service/models"
	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/middleware"
	sharedmodels "github.com/Bipul-Dubey/health-index/shared/models"
)

const previewRows = 100

// PageHandler serves the HTML form flow. Every action answers with the
// rendered page or a 303 back to it.
type PageHandler struct {
	authService    services.AuthenticationService
	predictService services.PredictService
	datasetService services.DatasetService
	opts           PageOptions
	cookies        sessionCookies
}

func NewPageHandler(sm *services.ServiceManager, opts PageOptions, cookies sessionCookies) *PageHandler {
	return &PageHandler{
		authService:    sm.AuthenticationService,
		predictService: sm.PredictService,
		datasetService: sm.DatasetService,
		opts:           opts,
		cookies:        cookies,
	}
}

type slider struct {
	Feature string
	Label   string
	Min     float64
	Max     float64
	Value   float64
}

type modelOption struct {
	ID       string
	Name     string
	Selected bool
}

type pageData struct {
	Title        string
	HasImage     bool
	LoggedIn     bool
	Username     string
	LoginError   string
	Preview      *models.DatasetPreview
	Sliders      []slider
	Models       []modelOption
	Result       *models.PredictResponse
	PredictError string
}

func (h *PageHandler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, h.page(c, nil, ""))
}

func (h *PageHandler) Login(c *gin.Context) {
	var req sharedmodels.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		slog.Debug("malformed login form", "error", err)
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		data := h.page(c, nil, "")
		data.LoginError = "Invalid username or password"
		code := http.StatusUnauthorized
		if !errors.Is(err, services.ErrInvalidCredentials) {
			slog.Error("login failed", "error", err)
			data.LoginError = "Login failed, please try again"
			code = http.StatusInternalServerError
		}
		h.render(c, code, data)
		return
	}

	h.cookies.set(c, resp.AccessToken, resp.ExpiresAt)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) Predict(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	req := &models.PredictRequest{
		Model:    c.PostForm("model"),
		Features: make(map[string]float64),
	}
	submitted := make(map[string]float64)
	for _, b := range h.datasetService.Bounds() {
		raw, present := c.GetPostForm(b.Feature)
		if !present {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			data := h.page(c, submitted, req.Model)
			data.PredictError = fmt.Sprintf("%s must be a number", b.Label)
			h.render(c, http.StatusBadRequest, data)
			return
		}
		req.Features[b.Feature] = v
		submitted[b.Feature] = v
	}

	resp, err := h.predictService.Predict(c.Request.Context(), claims, req)
	if err != nil {
		code, msg := predictionStatus(err)
		if code >= http.StatusInternalServerError {
			slog.Error("prediction failed", "error", err, "model", req.Model)
		}
		data := h.page(c, submitted, req.Model)
		data.PredictError = msg
		h.render(c, code, data)
		return
	}

	data := h.page(c, resp.Features, resp.Model)
	data.Result = resp
	h.render(c, http.StatusOK, data)
}

func (h *PageHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		slog.Warn("logout could not revoke session", "error", err)
	}
	h.cookies.clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) Image(c *gin.Context) {
	if h.opts.ImagePath == "" {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	c.File(h.opts.ImagePath)
}

// page builds the view for the current session. values override slider
// positions, which otherwise start at the feature minimum.
func (h *PageHandler) page(c *gin.Context, values map[string]float64, model string) pageData {
	data := pageData{
		Title:    h.opts.Title,
		HasImage: h.opts.ImagePath != "",
	}
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return data
	}

	data.LoggedIn = true
	data.Username = claims.Username
	data.Preview = h.datasetService.Preview(previewRows)

	for _, b := range h.datasetService.Bounds() {
		s := slider{Feature: b.Feature, Label: b.Label, Min: b.Min, Max: b.Max, Value: b.Default}
		if v, ok := values[b.Feature]; ok {
			s.Value = v
		}
		data.Sliders = append(data.Sliders, s)
	}

	for _, m := range h.predictService.Models() {
		selected := m.ID == model || (model == "" && m.Default)
		data.Models = append(data.Models, modelOption{ID: m.ID, Name: m.Name, Selected: selected})
	}
	return data
}

func (h *PageHandler) render(c *gin.Context, code int, data pageData) {
	c.HTML(code, "index.tmpl", data)
}
