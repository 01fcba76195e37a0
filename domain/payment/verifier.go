/*
Package payment - payment verification subdomain

The storefront never charges cards itself. The client pays through an
external gateway and reports back a payment reference; the server's job is
to confirm with the gateway that the charge really happened and that its
amount matches the server-computed total. The Verifier interface keeps the
order workflow independent of the concrete gateway client.
*/
package payment

import (
	"context"
	"fmt"

	"storefront/domain/shared"
)

// AmountTolerance is the allowed difference, in the smallest currency unit,
// between the gateway-reported amount and the expected amount. One won of
// slack absorbs gateway-side rounding; anything larger is a mismatch.
const AmountTolerance = 1

// Verifier confirms an externally reported charge with the payment gateway.
type Verifier interface {
	// Verify looks up the payment by its gateway reference and checks it
	// against the expected amount. A returned error means the gateway could
	// not be consulted at all (transport failure, auth failure); an invalid
	// result means the gateway answered and the payment does not hold up.
	Verify(ctx context.Context, paymentUID string, expected shared.Money) (*Result, error)
}

// GatewayPayment is the raw payment record reported by the gateway.
type GatewayPayment struct {
	PaymentUID  string `json:"imp_uid"`
	MerchantUID string `json:"merchant_uid"`
	Status      string `json:"status"`
	Amount      int64  `json:"amount"`
	PayMethod   string `json:"pay_method,omitempty"`
	PgProvider  string `json:"pg_provider,omitempty"`
	PaidAt      int64  `json:"paid_at,omitempty"`
}

// Result is the outcome of a verification attempt that reached the gateway.
type Result struct {
	Valid   bool
	Reason  string          // human-readable, only set when invalid
	Payment *GatewayPayment // raw gateway record, only set when the gateway returned one
}

// ValidResult builds a successful verification result
func ValidResult(p *GatewayPayment) *Result {
	return &Result{Valid: true, Payment: p}
}

// NotCompleted builds a failed result for a payment whose status is not paid
func NotCompleted(status string) *Result {
	return &Result{
		Valid:  false,
		Reason: fmt.Sprintf("payment not completed (status %q)", status),
	}
}

// AmountMismatch builds a failed result for an amount outside the tolerance
func AmountMismatch(paid, expected int64) *Result {
	return &Result{
		Valid:  false,
		Reason: fmt.Sprintf("payment amount mismatch (paid %d, expected %d)", paid, expected),
	}
}
