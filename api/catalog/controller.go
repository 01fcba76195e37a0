/*
Package catalog - product API controller.
Listing and lookup are public; create, update and delete are operator-only.
*/
package catalog

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	catalogapp "storefront/application/catalog"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller product controller
type Controller struct {
	catalogService *catalogapp.ApplicationService
}

// NewController Create catalog controller
func NewController(catalogService *catalogapp.ApplicationService) *Controller {
	return &Controller{
		catalogService: catalogService,
	}
}

// RegisterPublicRoutes registers unauthenticated catalog routes
func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
	}
}

// RegisterAdminRoutes registers operator-only catalog routes
func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.POST("", c.CreateProduct)
		productGroup.PUT("/:id", c.UpdateProduct)
		productGroup.DELETE("/:id", c.DeleteProduct)
	}
}

// ListProducts lists products, optionally filtered by category
// GET /api/v1/products?category=chocolate
func (c *Controller) ListProducts(ctx *gin.Context) {
	products, err := c.catalogService.ListProducts(ctxutil.WithRequestID(ctx), ctx.Query("category"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, products, "products retrieved successfully")
}

// GetProduct returns one product
// GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.GetProduct(ctxutil.WithRequestID(ctx), productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// CreateProduct adds a product to the catalog
// POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.CreateProduct(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// UpdateProduct replaces a product's mutable attributes
// PUT /api/v1/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.catalogService.UpdateProduct(ctxutil.WithRequestID(ctx), productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// DeleteProduct removes a product. Existing orders keep their frozen copies.
// DELETE /api/v1/products/:id
func (c *Controller) DeleteProduct(ctx *gin.Context) {
	productID := ctx.Param("id")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	if err := c.catalogService.DeleteProduct(ctxutil.WithRequestID(ctx), productID); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
