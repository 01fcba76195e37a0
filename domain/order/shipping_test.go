package order

import (
	"testing"

	"storefront/domain/shared"
)

func TestShippingFeeBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		subtotal int64
		fee      int64
	}{
		{"zero subtotal pays the fee", 0, StandardShippingFee},
		{"just below threshold pays the fee", 29999, StandardShippingFee},
		{"exactly at threshold ships free", 30000, 0},
		{"above threshold ships free", 35000, 0},
		{"small basket pays the fee", 24001, StandardShippingFee},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fee := ShippingFeeFor(shared.Won(tc.subtotal))
			if fee.Amount() != tc.fee {
				t.Errorf("subtotal %d: expected fee %d, got %d", tc.subtotal, tc.fee, fee.Amount())
			}
			if fee.Currency() != shared.KRW {
				t.Errorf("expected KRW fee, got %s", fee.Currency())
			}
		})
	}
}
