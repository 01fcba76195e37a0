package mysql

import (
	"context"
	"errors"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence"
	"storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// ProductRepository MySQL/GORM implementation of product repository
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository Create product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save Save product (create or update)
// The unique index on sku is the race net behind the application-level
// existence check.
func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	if err := r.getDB(ctx).Save(po.FromProductDomain(p)).Error; err != nil {
		if index, isDuplicate := duplicateKeyIndex(err); isDuplicate && index == "uq_products_sku" {
			return catalog.NewSKUAlreadyExistsError(p.SKU())
		}
		return err
	}
	return nil
}

// FindByID Find product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(id)
		}
		return nil, result.Error
	}
	return productPO.ToDomain(), nil
}

// FindBySKU Find product by SKU
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	var productPO po.ProductPO
	result := r.getDB(ctx).First(&productPO, "sku = ?", sku)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, catalog.NewProductNotFoundError(sku)
		}
		return nil, result.Error
	}
	return productPO.ToDomain(), nil
}

// FindAll List products, optionally filtered by category
func (r *ProductRepository) FindAll(ctx context.Context, category string) ([]*catalog.Product, error) {
	var productPOs []po.ProductPO
	query := r.getDB(ctx).Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&productPOs).Error; err != nil {
		return nil, err
	}

	products := make([]*catalog.Product, len(productPOs))
	for i, productPO := range productPOs {
		products[i] = productPO.ToDomain()
	}
	return products, nil
}

// Remove Delete product from the catalog
// Physical deletion is fine here: orders freeze their own copy of product
// data, so removing a product never orphans order history.
func (r *ProductRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ProductPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return catalog.NewProductNotFoundError(id)
	}
	return nil
}

// Compile-time interface implementation check
var _ catalog.Repository = (*ProductRepository)(nil)
