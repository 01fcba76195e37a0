package order

import "time"

// ValidateCheckoutRequest phase-A request: price the current cart against
// the supplied shipping details without creating anything.
type ValidateCheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	RecipientName   string `json:"recipient_name" binding:"required"`
	RecipientPhone  string `json:"recipient_phone" binding:"required"`
}

// CheckoutQuoteResponse phase-A response with server-computed totals
type CheckoutQuoteResponse struct {
	Subtotal    int64  `json:"subtotal"`
	ShippingFee int64  `json:"shipping_fee"`
	FinalTotal  int64  `json:"final_total"`
	ItemCount   int    `json:"item_count"`
	Currency    string `json:"currency"`
}

// CreateOrderRequest phase-B request. Totals are never taken from the
// client; client_paid_amount is only compared against the server total for
// logging.
type CreateOrderRequest struct {
	ShippingAddress  string `json:"shipping_address" binding:"required"`
	RecipientName    string `json:"recipient_name" binding:"required"`
	RecipientPhone   string `json:"recipient_phone" binding:"required"`
	Notes            string `json:"notes"`
	MerchantUID      string `json:"merchant_uid"`
	PaymentUID       string `json:"payment_uid"`
	ClientPaidAmount int64  `json:"client_paid_amount"`
}

// UpdateStatusRequest operator status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing shipping_started shipped delivered cancelled"`
}

// OrderResponse order view model
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	OrderNumber     string              `json:"order_number"`
	Items           []OrderItemResponse `json:"items"`
	ShippingAddress string              `json:"shipping_address"`
	RecipientName   string              `json:"recipient_name"`
	RecipientPhone  string              `json:"recipient_phone"`
	TotalAmount     MoneyResponse       `json:"total_amount"`
	ShippingFee     MoneyResponse       `json:"shipping_fee"`
	Notes           string              `json:"notes,omitempty"`
	MerchantUID     string              `json:"merchant_uid,omitempty"`
	PaymentUID      string              `json:"payment_uid,omitempty"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemResponse frozen order line view model
type OrderItemResponse struct {
	ProductID   string        `json:"product_id"`
	ProductName string        `json:"product_name"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

// MoneyResponse amount view model
type MoneyResponse struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
