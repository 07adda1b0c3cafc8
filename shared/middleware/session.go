package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bipul-Dubey/health-index/shared/utils"
)

const (
	SessionCookie = "health_index_session"
	ClaimsKey     = "sessionClaims"
	TokenKey      = "sessionToken"
)

// SessionResolver turns a session token into claims, failing when the token
// is invalid or its session has been logged out.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*utils.SessionClaims, error)
}

// TokenFromRequest reads the bearer token, falling back to the session cookie.
func TokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if tokenStr, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return strings.TrimSpace(tokenStr)
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

// LoadSession attaches the claims of a valid session to the context. It never
// aborts: pages render the login form for anonymous visitors.
func LoadSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := TokenFromRequest(c)
		if tokenStr == "" {
			c.Next()
			return
		}
		c.Set(TokenKey, tokenStr)

		claims, err := resolver.Resolve(c.Request.Context(), tokenStr)
		if err == nil {
			c.Set(ClaimsKey, claims)
		}
		c.Next()
	}
}

func ClaimsFrom(c *gin.Context) (*utils.SessionClaims, bool) {
	claimsVal, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := claimsVal.(*utils.SessionClaims)
	return claims, ok
}
