package cart

import "time"

// AddItemRequest add a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest set the quantity of a cart line.
// Zero or negative removes the line, so no min tag on quantity.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse cart view with current catalog data joined in
type CartResponse struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  int64              `json:"subtotal"`
	ItemCount int                `json:"item_count"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CartItemResponse one cart line priced at the current catalog price.
// Available is false when the product was removed from the catalog after
// it went into the cart; such lines contribute nothing to the subtotal.
type CartItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Subtotal    int64  `json:"subtotal"`
	Available   bool   `json:"available"`
}
