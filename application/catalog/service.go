/*
Package catalog Application Layer - product management use cases.
Create, update and delete are operator-only; listing and lookup are public.
*/
package catalog

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/domain/shared"
)

// ApplicationService product application service
type ApplicationService struct {
	productRepo catalog.Repository
}

// NewApplicationService Create catalog application service
func NewApplicationService(productRepo catalog.Repository) *ApplicationService {
	return &ApplicationService{productRepo: productRepo}
}

// CreateProduct adds a product. The SKU must not be in use; the unique
// index on sku backs this check against concurrent creates.
func (s *ApplicationService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	p, err := catalog.NewProduct(req.SKU, req.Name, shared.Won(req.Price), req.Category, req.Image, req.Description)
	if err != nil {
		return nil, err
	}

	if _, err := s.productRepo.FindBySKU(ctx, p.SKU()); err == nil {
		return nil, catalog.NewSKUAlreadyExistsError(p.SKU())
	} else if !errors.Is(err, catalog.ErrProductNotFound) {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return s.convertToResponse(p), nil
}

// UpdateProduct replaces a product's mutable attributes. SKU is immutable.
func (s *ApplicationService) UpdateProduct(ctx context.Context, productID string, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, shared.Won(req.Price), req.Category, req.Image, req.Description); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	return s.convertToResponse(p), nil
}

// DeleteProduct removes a product from the catalog. Past orders are
// unaffected because they carry frozen copies of product data.
func (s *ApplicationService) DeleteProduct(ctx context.Context, productID string) error {
	return s.productRepo.Remove(ctx, productID)
}

// GetProduct returns one product
func (s *ApplicationService) GetProduct(ctx context.Context, productID string) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(p), nil
}

// ListProducts lists products, optionally filtered by category
func (s *ApplicationService) ListProducts(ctx context.Context, category string) ([]*ProductResponse, error) {
	products, err := s.productRepo.FindAll(ctx, category)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = s.convertToResponse(p)
	}
	return responses, nil
}

func (s *ApplicationService) convertToResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID(),
		SKU:         p.SKU(),
		Name:        p.Name(),
		Price:       p.Price().Amount(),
		Currency:    p.Price().Currency(),
		Category:    p.Category(),
		Image:       p.Image(),
		Description: p.Description(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
