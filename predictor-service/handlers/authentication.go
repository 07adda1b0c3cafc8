package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/predictor-service/services"
	"github.com/Bipul-Dubey/health-index/shared/middleware"
	"github.com/Bipul-Dubey/health-index/shared/models"
	"github.com/Bipul-Dubey/health-index/shared/utils"
)

type AuthenticationHandler struct {
	authService services.AuthenticationService
	cookies     sessionCookies
}

func NewAuthenticationHandler(authService services.AuthenticationService, cookies sessionCookies) *AuthenticationHandler {
	return &AuthenticationHandler{authService: authService, cookies: cookies}
}

func (h *AuthenticationHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "invalid request body"))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Invalid username or password"))
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err)
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "login failed"))
		return
	}

	h.cookies.set(c, resp.AccessToken, resp.ExpiresAt)
	c.JSON(http.StatusOK, utils.APIResponse(false, "login successful", resp))
}

// Logout always succeeds and clears the session cookie.
func (h *AuthenticationHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		slog.Warn("logout could not revoke session", "error", err)
	}
	h.cookies.clear(c)
	c.JSON(http.StatusOK, utils.APIResponse(false, "logged out", nil))
}
