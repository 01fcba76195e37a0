package persistence

import (
	"context"

	"gorm.io/gorm"
)

// txKey is the context key for the ambient transaction
type txKey struct{}

// requestIDKey is the context key for request id propagation into the
// persistence layer (picked up by the gorm log adapter)
type requestIDKey struct{}

// TxFromContext retrieves the GORM transaction from context.
// Returns nil if no transaction is present.
func TxFromContext(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return nil
}

// ContextWithTx returns a new context with the GORM transaction attached
func ContextWithTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// RequestIDFromContext retrieves the request id from context, or ""
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context carrying the request id
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
