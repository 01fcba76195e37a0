/*
Package response - unified response handling for the API layer.

Design principles:
1. HTTP status mapping lives in the API layer, never in domain or application code
2. Error responses never expose internals (stacks, wrapped driver errors)
3. Every response carries the request ID for log correlation
4. Internal errors always render as "internal server error"; the real error goes to the log

Stack extraction:
1. Prefer the "point of failure" stack carried by domain errors (shared.Stacker)
2. Fall back to capturing the "point of handling" stack here

Response shape:

	success: { success: true, data: {...}, message: "...", code: 2xx, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "user-facing message", code: 4xx/5xx, request_id: "..." }
*/
package response

import (
	"net/http"
	"runtime"

	"storefront/domain/shared"
	"storefront/pkg/errors"
	"storefront/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey gin context key for request id propagation
const RequestIDKey = "request_id"

// ============================================================================
// Response types
// ============================================================================

// Response unified response envelope
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`      // error code, not error details
	Code      int         `json:"code"`                 // HTTP status code
	Message   string      `json:"message"`              // user-facing message
	RequestID string      `json:"request_id,omitempty"` // request trace id
}

// PaginatedResponse list envelope with paging metadata
type PaginatedResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Message    string      `json:"message"`
	Code       int         `json:"code"`
	RequestID  string      `json:"request_id,omitempty"`
}

// Pagination paging metadata
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ============================================================================
// Helpers
// ============================================================================

// GetRequestID reads the request id set by the request-id middleware
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// captureStack captures the current call stack for error logs
func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack []string
	for i := 0; i < 5; i++ { // top 5 frames only
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// ============================================================================
// Error handling
// ============================================================================

// HandleError handles framework-level errors such as request binding failures
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := GetRequestID(c)

	logger.Error(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	response := &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	}
	c.JSON(code, response)
}

// HandleAppError handles application and domain errors.
// Maps the error code to an HTTP status, logs the full error chain, and
// returns a sanitized response to the client.
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	appErr := errors.MapDomainError(err)
	httpStatus := appErr.HTTPStatusCode()

	// Prefer the point-of-failure stack carried by the error
	stack := extractStack(err)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", stack),
	}

	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	logger.Error(appErr.Message, fields...)

	// Internal errors never expose their real message
	userMessage := appErr.Message
	if appErr.Code == errors.CodeInternal {
		userMessage = "internal server error"
	}

	response := &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	}
	c.JSON(httpStatus, response)
}

// extractStack pulls the stack out of an error.
// Prefers the point-of-failure stack (shared.Stacker), then the wrapped
// inner error, then captures the point-of-handling stack as a fallback.
func extractStack(err error) []string {
	if stacker, ok := err.(shared.Stacker); ok {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}

	if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
		if inner := unwrapper.Unwrap(); inner != nil {
			if stacker, ok := inner.(shared.Stacker); ok {
				if stack := stacker.Stack(); len(stack) > 0 {
					return stack
				}
			}
		}
	}

	return captureStack(4) // skip: Callers, captureStack, extractStack, HandleAppError
}

// ============================================================================
// Success handling
// ============================================================================

// HandleSuccess writes a 200 OK response
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	requestID := GetRequestID(c)
	response := &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: requestID,
	}
	c.JSON(http.StatusOK, response)
}

// HandleCreated writes a 201 Created response
func HandleCreated(c *gin.Context, data interface{}, message string) {
	requestID := GetRequestID(c)
	response := &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: requestID,
	}
	c.JSON(http.StatusCreated, response)
}

// HandleNoContent writes a 204 No Content response
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandlePaginated writes a 200 OK response with paging metadata
func HandlePaginated(c *gin.Context, data interface{}, pagination Pagination, message string) {
	requestID := GetRequestID(c)
	response := &PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Message:    message,
		Code:       http.StatusOK,
		RequestID:  requestID,
	}
	c.JSON(http.StatusOK, response)
}
