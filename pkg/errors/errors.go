/*
Package errors defines the application error type and its code taxonomy.

Domain packages return sentinel errors; this package maps them onto wire
codes and HTTP statuses at the boundary so that the API layer never has
to inspect domain internals.
*/
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
)

// ErrorCode stable machine-readable error identifier
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"

	// Business codes
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeEmailExists         ErrorCode = "EMAIL_EXISTS"
	CodeInvalidCredentials  ErrorCode = "INVALID_CREDENTIALS"
	CodeProductNotFound     ErrorCode = "PRODUCT_NOT_FOUND"
	CodeSKUExists           ErrorCode = "SKU_EXISTS"
	CodeCartNotFound        ErrorCode = "CART_NOT_FOUND"
	CodeCartItemNotFound    ErrorCode = "CART_ITEM_NOT_FOUND"
	CodeEmptyCart           ErrorCode = "EMPTY_CART"
	CodeOrderNotFound       ErrorCode = "ORDER_NOT_FOUND"
	CodeInvalidOrderState   ErrorCode = "INVALID_ORDER_STATE"
	CodeDuplicateSubmission ErrorCode = "DUPLICATE_SUBMISSION"
	CodePaymentVerification ErrorCode = "PAYMENT_VERIFICATION_FAILED"
	CodeConcurrentUpdate    ErrorCode = "CONCURRENT_UPDATE"
)

// AppError application-level error with a stable code
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the HTTP status for this error code
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeEmptyCart,
		CodeDuplicateSubmission, CodePaymentVerification:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeUserNotFound, CodeProductNotFound,
		CodeCartNotFound, CodeCartItemNotFound, CodeOrderNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEmailExists, CodeSKUExists, CodeConcurrentUpdate:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeInvalidOrderState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new application error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an underlying error with a code and message
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Business constructors

func UserNotFound() *AppError {
	return New(CodeUserNotFound, "user not found")
}

func EmailExists() *AppError {
	return New(CodeEmailExists, "email already registered")
}

func InvalidCredentials() *AppError {
	return New(CodeInvalidCredentials, "invalid email or password")
}

func ProductNotFound() *AppError {
	return New(CodeProductNotFound, "product not found")
}

func OrderNotFound() *AppError {
	return New(CodeOrderNotFound, "order not found")
}

func InvalidOrderState(message string) *AppError {
	return New(CodeInvalidOrderState, message)
}

func DuplicateSubmission(message string) *AppError {
	return New(CodeDuplicateSubmission, message)
}

func PaymentVerificationFailed(message string) *AppError {
	return New(CodePaymentVerification, message)
}

// Is reports whether err carries the given error code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError converts any error to an AppError, wrapping unknown errors
// as internal so that raw messages never leak to clients
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// MapDomainError maps domain sentinel errors onto application errors.
// Matching is by errors.Is on sentinels, never by message text.
func MapDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	// user
	case errors.Is(err, user.ErrUserNotFound):
		return UserNotFound()
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return EmailExists()
	case errors.Is(err, user.ErrInvalidCredentials):
		return InvalidCredentials()
	case errors.Is(err, user.ErrInvalidEmail):
		return Wrap(err, CodeValidation, err.Error())

	// catalog
	case errors.Is(err, catalog.ErrProductNotFound):
		return ProductNotFound()
	case errors.Is(err, catalog.ErrSKUAlreadyExists):
		return Wrap(err, CodeSKUExists, "sku already exists")

	// cart
	case errors.Is(err, cart.ErrCartNotFound):
		return Wrap(err, CodeCartNotFound, "cart not found")
	case errors.Is(err, cart.ErrItemNotInCart):
		return Wrap(err, CodeCartItemNotFound, "item not in cart")
	case errors.Is(err, cart.ErrEmptyCart):
		return Wrap(err, CodeEmptyCart, "cart is empty")
	case errors.Is(err, cart.ErrInvalidQuantity):
		return Wrap(err, CodeValidation, err.Error())

	// order
	case errors.Is(err, order.ErrOrderNotFound):
		return OrderNotFound()
	case errors.Is(err, order.ErrDuplicateSubmission):
		return Wrap(err, CodeDuplicateSubmission, "order already submitted for this payment")
	case errors.Is(err, order.ErrPaymentVerificationFailed):
		// The charge may still have succeeded on the gateway side, so the
		// client is told to contact support instead of retrying blindly.
		return Wrap(err, CodePaymentVerification, err.Error()+", please contact support")
	case errors.Is(err, order.ErrConcurrentModification):
		return Wrap(err, CodeConcurrentUpdate, "resource was modified concurrently, please retry")
	case errors.Is(err, order.ErrAlreadyShipped):
		return Wrap(err, CodeInvalidOrderState, "order already shipped and cannot be cancelled")
	case errors.Is(err, order.ErrAlreadyCancelled):
		return Wrap(err, CodeInvalidOrderState, "order already cancelled")
	case errors.Is(err, order.ErrUnknownStatus):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, order.ErrMissingShippingInfo),
		errors.Is(err, order.ErrEmptyOrderItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrOrderTotalAmountNotPositive):
		return Wrap(err, CodeValidation, err.Error())

	// shared fallbacks
	case errors.Is(err, shared.ErrNotFound):
		return Wrap(err, CodeNotFound, err.Error())
	case errors.Is(err, shared.ErrConflict):
		return Wrap(err, CodeConflict, err.Error())
	case errors.Is(err, shared.ErrInvalidInput):
		return Wrap(err, CodeValidation, err.Error())
	case errors.Is(err, shared.ErrUnauthorized):
		return Wrap(err, CodeUnauthorized, "authentication required")
	case errors.Is(err, shared.ErrForbidden):
		return Wrap(err, CodeForbidden, "access denied")

	default:
		return Wrap(err, CodeInternal, "internal server error")
	}
}
