/*
Package catalog - product subdomain

Products are simple entities: they have identity and mutable attributes but
no child entities. Orders never reference them live; the order aggregate
freezes a copy of the product data at checkout time, so later catalog edits
cannot change past orders.
*/
package catalog

import (
	"fmt"
	"strings"
	"time"

	"storefront/domain/shared"

	"github.com/google/uuid"
)

// Product catalog entity
type Product struct {
	id          string
	sku         string
	name        string
	price       shared.Money
	category    string
	image       string
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewProduct creates a new product entity.
// SKU is normalized to uppercase; uniqueness is enforced by the repository.
func NewProduct(sku, name string, price shared.Money, category, image, description string) (*Product, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, shared.NewValidationError("product", "sku", "sku is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("product", "name", "name is required")
	}
	if price.Amount() < 0 {
		return nil, shared.NewValidationError("product", "price", "price must not be negative")
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewValidationError("product", "category", "category is required")
	}
	if strings.TrimSpace(image) == "" {
		return nil, shared.NewValidationError("product", "image", "image is required")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate product ID: %w", err)
	}

	now := time.Now()
	return &Product{
		id:          id.String(),
		sku:         sku,
		name:        strings.TrimSpace(name),
		price:       price,
		category:    strings.TrimSpace(category),
		image:       strings.TrimSpace(image),
		description: strings.TrimSpace(description),
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructionDTO product reconstruction data, repository layer use only
type ReconstructionDTO struct {
	ID          string
	SKU         string
	Name        string
	Price       shared.Money
	Category    string
	Image       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs a Product from persisted data
func RebuildFromDTO(dto ReconstructionDTO) *Product {
	return &Product{
		id:          dto.ID,
		sku:         dto.SKU,
		name:        dto.Name,
		price:       dto.Price,
		category:    dto.Category,
		image:       dto.Image,
		description: dto.Description,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

// Update replaces the mutable attributes. A zero-amount price is allowed;
// a negative one is not.
func (p *Product) Update(name string, price shared.Money, category, image, description string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("product", "name", "name is required")
	}
	if price.Amount() < 0 {
		return shared.NewValidationError("product", "price", "price must not be negative")
	}
	if strings.TrimSpace(category) == "" {
		return shared.NewValidationError("product", "category", "category is required")
	}
	if strings.TrimSpace(image) == "" {
		return shared.NewValidationError("product", "image", "image is required")
	}

	p.name = strings.TrimSpace(name)
	p.price = price
	p.category = strings.TrimSpace(category)
	p.image = strings.TrimSpace(image)
	p.description = strings.TrimSpace(description)
	p.updatedAt = time.Now()
	return nil
}

func (p *Product) ID() string           { return p.id }
func (p *Product) SKU() string          { return p.sku }
func (p *Product) Name() string         { return p.name }
func (p *Product) Price() shared.Money  { return p.price }
func (p *Product) Category() string     { return p.category }
func (p *Product) Image() string        { return p.image }
func (p *Product) Description() string  { return p.description }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
