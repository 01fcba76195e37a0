/*
Package cart Application Layer - cart use cases.

The service persists the cart after every mutation and returns a priced
view: line items joined with current catalog data. Prices shown here are
informational only; checkout re-snapshots them.
*/
package cart

import (
	"context"
	"errors"

	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/pkg/logger"

	"go.uber.org/zap"
)

// ApplicationService cart application service
type ApplicationService struct {
	cartRepo    cart.Repository
	productRepo catalog.Repository
}

// NewApplicationService Create cart application service
func NewApplicationService(cartRepo cart.Repository, productRepo catalog.Repository) *ApplicationService {
	return &ApplicationService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart, creating an empty one on first access
func (s *ApplicationService) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.convertToResponse(ctx, c)
}

// AddItem adds a product to the cart, merging quantities when the product
// is already present. The product must exist in the catalog.
func (s *ApplicationService) AddItem(ctx context.Context, userID string, req AddItemRequest) (*CartResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	c, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.convertToResponse(ctx, c)
}

// UpdateItem sets the quantity of an existing line; qty <= 0 removes it
func (s *ApplicationService) UpdateItem(ctx context.Context, userID, productID string, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.UpdateQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.convertToResponse(ctx, c)
}

// RemoveItem removes a line from the cart
func (s *ApplicationService) RemoveItem(ctx context.Context, userID, productID string) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveItem(productID); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.convertToResponse(ctx, c)
}

// ClearCart empties the cart; the cart itself survives
func (s *ApplicationService) ClearCart(ctx context.Context, userID string) (*CartResponse, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, cart.ErrCartNotFound) {
			// Nothing to clear; hand back a fresh empty cart
			c, err = s.loadOrCreate(ctx, userID)
			if err != nil {
				return nil, err
			}
			return s.convertToResponse(ctx, c)
		}
		return nil, err
	}

	c.Clear()
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	return s.convertToResponse(ctx, c)
}

// loadOrCreate fetches the user's cart, creating and persisting an empty
// one when the user never had a cart.
func (s *ApplicationService) loadOrCreate(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByUserID(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}

	c, err = cart.NewCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// convertToResponse builds the priced cart view. A product that vanished
// from the catalog is shown as unavailable and excluded from the subtotal,
// matching checkout behavior which rejects such lines.
func (s *ApplicationService) convertToResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	items := c.Items()
	responses := make([]CartItemResponse, len(items))
	var subtotal int64
	itemCount := 0

	for i, item := range items {
		p, err := s.productRepo.FindByID(ctx, item.ProductID())
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				logger.Warn("Cart references missing product",
					zap.String("cart_id", c.ID()),
					zap.String("product_id", item.ProductID()),
				)
				responses[i] = CartItemResponse{
					ProductID: item.ProductID(),
					Quantity:  item.Quantity(),
					Available: false,
				}
				continue
			}
			return nil, err
		}

		lineSubtotal := p.Price().Amount() * int64(item.Quantity())
		responses[i] = CartItemResponse{
			ProductID:   item.ProductID(),
			ProductName: p.Name(),
			Quantity:    item.Quantity(),
			UnitPrice:   p.Price().Amount(),
			Subtotal:    lineSubtotal,
			Available:   true,
		}
		subtotal += lineSubtotal
		itemCount += item.Quantity()
	}

	return &CartResponse{
		ID:        c.ID(),
		UserID:    c.UserID(),
		Items:     responses,
		Subtotal:  subtotal,
		ItemCount: itemCount,
		UpdatedAt: c.UpdatedAt(),
	}, nil
}
