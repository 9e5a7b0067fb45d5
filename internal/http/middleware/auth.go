// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file guards the admin API. AdminAuth validates the Bearer session
// token minted at login and rejects the request before any handler runs:
// 401 for missing/expired/forged tokens, 403 for valid tokens without the
// ADMIN role. The agent-facing routes are wired without this guard.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lia-imoveis/backoffice/internal/services"
)

const (
	// sessionKey is the Gin context key holding the validated session claims.
	sessionKey = "session"
	// bearerPrefix is the expected Authorization scheme.
	bearerPrefix = "Bearer "
)

// AdminAuth returns a middleware enforcing a valid ADMIN session token.
//
// On success the parsed claims are stored in the Gin context (see
// SessionFrom) and the admin email is attached to the request-scoped logger
// key space via the "userID" context value used by downstream middleware.
func AdminAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, bearerPrefix) {
			unauthorized(c, "missing bearer token")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(auth, bearerPrefix))
		if token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		claims, err := services.ParseSession(token, secret)
		if err != nil {
			if errors.Is(err, services.ErrNotAdmin) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"request_id": c.Writer.Header().Get("X-Request-ID"),
					"code":       "forbidden",
					"message":    "acesso restrito a administradores",
				})
				return
			}
			unauthorized(c, "invalid or expired session")
			return
		}

		c.Set(sessionKey, claims)
		c.Set("userID", claims.Subject)
		c.Next()
	}
}

// SessionFrom returns the validated session claims, or nil when the request
// did not pass AdminAuth.
func SessionFrom(c *gin.Context) *services.SessionClaims {
	if v, ok := c.Get(sessionKey); ok {
		if claims, ok := v.(*services.SessionClaims); ok {
			return claims
		}
	}
	return nil
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
