// Package ctxutil bridges gin context values into the request context so
// lower layers (repositories, gorm logger) can read them without a gin
// dependency.
package ctxutil

import (
	"context"

	"storefront/api/middleware"
	"storefront/api/response"
	"storefront/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context annotated with the request id
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

// RequestIDFromContext reads the request id back out of a context
func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}

// CurrentUserID returns the authenticated user id set by the auth middleware
func CurrentUserID(ctx *gin.Context) (string, bool) {
	v, exists := ctx.Get(middleware.CurrentUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// IsAdmin reports whether the authenticated caller has operator rights
func IsAdmin(ctx *gin.Context) bool {
	v, exists := ctx.Get(middleware.CurrentUserAdminKey)
	if !exists {
		return false
	}
	admin, _ := v.(bool)
	return admin
}
