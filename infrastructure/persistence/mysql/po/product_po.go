package po

import (
	"time"

	"storefront/domain/catalog"
	"storefront/domain/shared"
)

// ProductPO Product persistence object
type ProductPO struct {
	ID            string    `gorm:"primaryKey;size:64"`
	SKU           string    `gorm:"size:64;uniqueIndex:uq_products_sku;not null"`
	Name          string    `gorm:"size:255;not null"`
	PriceAmount   int64     `gorm:"not null"`
	PriceCurrency string    `gorm:"size:3;not null"`
	Category      string    `gorm:"size:100;index;not null"`
	Image         string    `gorm:"size:500;not null"`
	Description   string    `gorm:"size:2000"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName Specify table name
func (ProductPO) TableName() string {
	return "products"
}

// FromProductDomain Convert domain model to persistence object
func FromProductDomain(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:            p.ID(),
		SKU:           p.SKU(),
		Name:          p.Name(),
		PriceAmount:   p.Price().Amount(),
		PriceCurrency: p.Price().Currency(),
		Category:      p.Category(),
		Image:         p.Image(),
		Description:   p.Description(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

// ToDomain Convert persistence object to domain model
func (po *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildFromDTO(catalog.ReconstructionDTO{
		ID:          po.ID,
		SKU:         po.SKU,
		Name:        po.Name,
		Price:       *shared.NewMoney(po.PriceAmount, po.PriceCurrency),
		Category:    po.Category,
		Image:       po.Image,
		Description: po.Description,
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	})
}
