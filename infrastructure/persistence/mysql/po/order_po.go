package po

import (
	"time"

	"storefront/domain/order"
	"storefront/domain/shared"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Defining GORM associations is prohibited here
//
// merchant_uid and payment_uid are nullable pointers so the unique indexes
// skip rows without an external checkout reference (MySQL excludes NULLs
// from unique constraints).
type OrderPO struct {
	ID              string    `gorm:"primaryKey;size:64"`
	UserID          string    `gorm:"size:64;index;not null"` // Only store ID, no association with User
	OrderNumber     string    `gorm:"size:32;uniqueIndex:uq_orders_order_number;not null"`
	ShippingAddress string    `gorm:"size:500;not null"`
	RecipientName   string    `gorm:"size:100;not null"`
	RecipientPhone  string    `gorm:"size:32;not null"`
	TotalAmount     int64     `gorm:"not null"`
	TotalCurrency   string    `gorm:"size:3;not null"`
	ShippingFee     int64     `gorm:"not null"`
	FeeCurrency     string    `gorm:"size:3;not null"`
	Notes           string    `gorm:"size:1000"`
	MerchantUID     *string   `gorm:"size:128;uniqueIndex:uq_orders_merchant_uid"`
	PaymentUID      *string   `gorm:"size:128;uniqueIndex:uq_orders_payment_uid"`
	Status          string    `gorm:"size:20;index;not null"`
	Version         int       `gorm:"default:0"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO Order item persistence object
type OrderItemPO struct {
	ID               string `gorm:"primaryKey;size:128"`
	OrderID          string `gorm:"size:64;index;not null"` // Only store ID, no GORM association
	ProductID        string `gorm:"size:64;not null"`
	ProductName      string `gorm:"size:255;not null"`
	Quantity         int    `gorm:"not null"`
	UnitPrice        int64  `gorm:"not null"`
	UnitCurrency     string `gorm:"size:3;not null"`
	Subtotal         int64  `gorm:"not null"`
	SubtotalCurrency string `gorm:"size:3;not null"`
}

// TableName Specify table name
func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain Convert domain model to persistence object
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:              o.ID(),
		UserID:          o.UserID(),
		OrderNumber:     o.OrderNumber(),
		ShippingAddress: o.ShippingAddress(),
		RecipientName:   o.RecipientName(),
		RecipientPhone:  o.RecipientPhone(),
		TotalAmount:     o.TotalAmount().Amount(),
		TotalCurrency:   o.TotalAmount().Currency(),
		ShippingFee:     o.ShippingFee().Amount(),
		FeeCurrency:     o.ShippingFee().Currency(),
		Notes:           o.Notes(),
		MerchantUID:     nullableString(o.MerchantUID()),
		PaymentUID:      nullableString(o.PaymentUID()),
		Status:          string(o.Status()),
		Version:         o.Version(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}

	items := o.Items()
	itemPOs := make([]OrderItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderItemPO{
			ID:               item.ID(), // Use domain object's ID for consistency
			OrderID:          o.ID(),
			ProductID:        item.ProductID(),
			ProductName:      item.ProductName(),
			Quantity:         item.Quantity(),
			UnitPrice:        item.UnitPrice().Amount(),
			UnitCurrency:     item.UnitPrice().Currency(),
			Subtotal:         item.Subtotal().Amount(),
			SubtotalCurrency: item.Subtotal().Currency(),
		}
	}

	return orderPO, itemPOs
}

// ToDomain Convert persistence object to domain model
func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:          itemPO.ID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    itemPO.Quantity,
			UnitPrice:   *shared.NewMoney(itemPO.UnitPrice, itemPO.UnitCurrency),
			Subtotal:    *shared.NewMoney(itemPO.Subtotal, itemPO.SubtotalCurrency),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:              po.ID,
		UserID:          po.UserID,
		OrderNumber:     po.OrderNumber,
		Items:           items,
		ShippingAddress: po.ShippingAddress,
		RecipientName:   po.RecipientName,
		RecipientPhone:  po.RecipientPhone,
		TotalAmount:     *shared.NewMoney(po.TotalAmount, po.TotalCurrency),
		ShippingFee:     *shared.NewMoney(po.ShippingFee, po.FeeCurrency),
		Notes:           po.Notes,
		MerchantUID:     stringValue(po.MerchantUID),
		PaymentUID:      stringValue(po.PaymentUID),
		Status:          order.Status(po.Status),
		Version:         po.Version,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	})
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
