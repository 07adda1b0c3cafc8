package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/shared/utils"
)

// RequireSession rejects requests that LoadSession did not authenticate.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ClaimsFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "login required"))
			return
		}
		c.Next()
	}
}
