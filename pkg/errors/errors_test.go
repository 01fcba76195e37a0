package errors

import (
	stderrors "errors"
	"net/http"
	"strings"
	"testing"

	"storefront/domain/cart"
	"storefront/domain/order"
	"storefront/domain/shared"
	"storefront/domain/user"
)

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{"order not found", order.NewOrderNotFoundError("o-1"), CodeOrderNotFound, http.StatusNotFound},
		{"duplicate submission", order.NewDuplicateSubmissionError("merchant_uid", "m-1"), CodeDuplicateSubmission, http.StatusBadRequest},
		{"payment verification", order.NewPaymentVerificationError("amount mismatch"), CodePaymentVerification, http.StatusBadRequest},
		{"concurrent modification", order.NewConcurrentModificationError("o-1"), CodeConcurrentUpdate, http.StatusConflict},
		{"already shipped", order.ErrAlreadyShipped, CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{"already cancelled", order.ErrAlreadyCancelled, CodeInvalidOrderState, http.StatusUnprocessableEntity},
		{"unknown status", order.NewUnknownStatusError("lost"), CodeValidation, http.StatusBadRequest},
		{"missing shipping info", order.ErrMissingShippingInfo, CodeValidation, http.StatusBadRequest},
		{"empty cart", cart.ErrEmptyCart, CodeEmptyCart, http.StatusBadRequest},
		{"cart not found", cart.NewCartNotFoundError("u-1"), CodeCartNotFound, http.StatusNotFound},
		{"item not in cart", cart.NewItemNotInCartError("p-1"), CodeCartItemNotFound, http.StatusNotFound},
		{"email exists", user.NewEmailAlreadyExistsError("a@b.c"), CodeEmailExists, http.StatusConflict},
		{"invalid credentials", user.ErrInvalidCredentials, CodeInvalidCredentials, http.StatusUnauthorized},
		{"validation fallback", shared.NewValidationError("order", "items", "bad"), CodeValidation, http.StatusBadRequest},
		{"conflict fallback", shared.NewConflictError("order", "number taken"), CodeConflict, http.StatusConflict},
		{"unknown error is internal", stderrors.New("driver exploded"), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := MapDomainError(tc.err)
			if appErr.Code != tc.wantCode {
				t.Errorf("expected code %s, got %s", tc.wantCode, appErr.Code)
			}
			if appErr.HTTPStatusCode() != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, appErr.HTTPStatusCode())
			}
		})
	}
}

func TestMapDomainErrorNil(t *testing.T) {
	if MapDomainError(nil) != nil {
		t.Error("nil must map to nil")
	}
}

func TestInternalMessageNeverLeaks(t *testing.T) {
	appErr := MapDomainError(stderrors.New("dsn user:password@tcp failed"))
	if appErr.Message != "internal server error" {
		t.Errorf("internal message must be scrubbed, got %q", appErr.Message)
	}
	// The original error stays reachable for logging
	if appErr.Err == nil {
		t.Error("wrapped error must be preserved for logs")
	}
}

func TestPaymentVerificationMessageGuidesUser(t *testing.T) {
	appErr := MapDomainError(order.NewPaymentVerificationError("amount mismatch"))
	if want := "please contact support"; !strings.Contains(appErr.Message, want) {
		t.Errorf("expected message to contain %q, got %q", want, appErr.Message)
	}
}

func TestMapDomainErrorPassesThroughAppErrors(t *testing.T) {
	original := Unauthorized("authentication required")
	if MapDomainError(original) != original {
		t.Error("an AppError must pass through unchanged")
	}
}

func TestIs(t *testing.T) {
	err := MapDomainError(order.NewOrderNotFoundError("o-1"))
	if !Is(err, CodeOrderNotFound) {
		t.Error("Is should match the mapped code")
	}
	if Is(err, CodeCartNotFound) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), CodeInternal) {
		t.Error("plain errors carry no code")
	}
}
