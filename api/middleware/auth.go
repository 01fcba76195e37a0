package middleware

import (
	"net/http"
	"strings"

	"storefront/api/response"
	"storefront/pkg/errors"
	"storefront/pkg/logger"

	userapp "storefront/application/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// CurrentUserIDKey gin context key for the authenticated user id
	CurrentUserIDKey = "current_user_id"
	// CurrentUserAdminKey gin context key for the operator flag
	CurrentUserAdminKey = "current_user_admin"
)

// AuthMiddleware validates the bearer token and puts the caller identity
// into the gin context. Requests without a valid token are rejected.
func AuthMiddleware(userService *userapp.ApplicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		u, err := userService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Token resolution failed",
				zap.String("request_id", response.GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(CurrentUserIDKey, u.ID())
		c.Set(CurrentUserAdminKey, u.IsAdmin())

		c.Next()
	}
}

// AdminOnly rejects authenticated callers without operator rights.
// Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAdmin, _ := c.Get(CurrentUserAdminKey); isAdmin != true {
			reqID := response.GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusForbidden, response.Response{
				Success:   false,
				Error:     string(errors.CodeForbidden),
				Message:   "operator rights required",
				Code:      http.StatusForbidden,
				RequestID: reqID,
			})
			return
		}

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

// abortUnauthorized writes a 401 response without leaking token details
func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Response{
		Success:   false,
		Error:     string(errors.CodeUnauthorized),
		Message:   message,
		Code:      http.StatusUnauthorized,
		RequestID: response.GetRequestID(c),
	})
}
