/*
Package cart - cart API controller.

The cart is keyed by the authenticated user; no cart id appears in any
route. Every mutation returns the updated cart view so clients never need
a follow-up read.
*/
package cart

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	cartapp "storefront/application/cart"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller cart controller
type Controller struct {
	cartService *cartapp.ApplicationService
}

// NewController Create cart controller
func NewController(cartService *cartapp.ApplicationService) *Controller {
	return &Controller{
		cartService: cartService,
	}
}

// RegisterRoutes registers authenticated cart routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	cartGroup := router.Group("/cart")
	{
		cartGroup.GET("", c.GetCart)
		cartGroup.POST("/items", c.AddItem)
		cartGroup.PUT("/items/:productId", c.UpdateItem)
		cartGroup.DELETE("/items/:productId", c.RemoveItem)
		cartGroup.DELETE("", c.ClearCart)
	}
}

// GetCart returns the caller's cart, creating an empty one on first touch
// GET /api/v1/cart
func (c *Controller) GetCart(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	cart, err := c.cartService.GetCart(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart retrieved successfully")
}

// AddItem adds a product to the cart or bumps its quantity
// POST /api/v1/cart/items
func (c *Controller) AddItem(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	var req cartapp.AddItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.AddItem(ctxutil.WithRequestID(ctx), userID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "item added to cart")
}

// UpdateItem sets the quantity of a cart line; zero removes it
// PUT /api/v1/cart/items/:productId
func (c *Controller) UpdateItem(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	productID := ctx.Param("productId")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	var req cartapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.UpdateItem(ctxutil.WithRequestID(ctx), userID, productID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart item updated")
}

// RemoveItem removes a product from the cart
// DELETE /api/v1/cart/items/:productId
func (c *Controller) RemoveItem(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	productID := ctx.Param("productId")
	if productID == "" {
		response.HandleError(ctx, errors.BadRequest("product ID is required"), "product ID is required", http.StatusBadRequest)
		return
	}

	cart, err := c.cartService.RemoveItem(ctxutil.WithRequestID(ctx), userID, productID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "item removed from cart")
}

// ClearCart empties the caller's cart
// DELETE /api/v1/cart
func (c *Controller) ClearCart(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	cart, err := c.cartService.ClearCart(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cart, "cart cleared")
}
