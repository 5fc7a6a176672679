package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"org-site-backend/internal/apperr"
	"org-site-backend/internal/model"
)

const identityKey = "auth.identity"

// Middleware verifies the bearer token on each request and attaches the
// resulting identity to the gin context. Requests without a token pass
// through anonymously; handlers behind RequireAdmin reject them.
func Middleware(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Malformed Authorization header",
				Code:    http.StatusUnauthorized,
			})
			return
		}

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			var dep *apperr.DependencyError
			if errors.As(err, &dep) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, model.ErrorResponse{
					Error:   "dependency_error",
					Message: "Identity service unavailable",
					Code:    http.StatusServiceUnavailable,
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid token",
				Code:    http.StatusUnauthorized,
			})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireAdmin aborts requests whose identity does not carry the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := FromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{
				Error:   "unauthorized",
				Message: "Authentication required",
				Code:    http.StatusUnauthorized,
			})
			return
		}
		if !id.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{
				Error:   "forbidden",
				Message: "Admin role required",
				Code:    http.StatusForbidden,
			})
			return
		}
		c.Next()
	}
}

// FromContext returns the verified identity attached to the request, if any.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
