package order

import "storefront/domain/shared"

// Shipping fee policy, in won.
const (
	// FreeShippingThreshold orders at or above this subtotal ship free
	FreeShippingThreshold = 30000

	// StandardShippingFee flat fee below the threshold
	StandardShippingFee = 1
)

// ShippingFeeFor computes the shipping fee for a cart subtotal.
// The fee depends only on the subtotal, never on the final total.
func ShippingFeeFor(subtotal shared.Money) shared.Money {
	if subtotal.IsGreaterThanOrEqual(shared.Won(FreeShippingThreshold)) {
		return shared.Won(0)
	}
	return shared.Won(StandardShippingFee)
}
