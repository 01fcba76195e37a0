/*
Package order - order API controller.

Responsibilities:
1. Receive HTTP requests and bind parameters
2. Resolve the caller identity from the auth middleware
3. Delegate to the application service and render via the response package

The two-phase checkout maps to two endpoints: POST /orders/validate prices
the cart without side effects, POST /orders verifies payment and creates
the order atomically.
*/
package order

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	orderapp "storefront/application/order"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller order controller
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes registers authenticated order routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("/validate", c.ValidateCheckout)
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.GetMyOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id/cancel", c.CancelOrder)
	}
}

// RegisterAdminRoutes registers operator-only order routes
func (c *Controller) RegisterAdminRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.GET("/all", c.GetAllOrders)
		orderGroup.PATCH("/:id/status", c.UpdateOrderStatus)
	}
}

// ValidateCheckout prices the current cart
// POST /api/v1/orders/validate
func (c *Controller) ValidateCheckout(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	var req orderapp.ValidateCheckoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	quote, err := c.orderService.ValidateCheckout(ctxutil.WithRequestID(ctx), userID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, quote, "checkout validated successfully")
}

// CreateOrder verifies payment and creates the order
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), userID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// GetMyOrders lists the caller's orders, newest first
// GET /api/v1/orders
func (c *Controller) GetMyOrders(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	orders, err := c.orderService.GetUserOrders(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// GetOrder returns one order. Owners see their own orders; operators see
// any order. A non-owner gets not-found, never forbidden.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), userID, ctxutil.IsAdmin(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// CancelOrder cancels a pending or processing order owned by the caller
// PUT /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CancelOrder(ctxutil.WithRequestID(ctx), userID, orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order cancelled successfully")
}

// GetAllOrders lists every order, optionally filtered by status
// GET /api/v1/orders/all?status=pending
func (c *Controller) GetAllOrders(ctx *gin.Context) {
	orders, err := c.orderService.GetAllOrders(ctxutil.WithRequestID(ctx), ctx.Query("status"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, orders, "orders retrieved successfully")
}

// UpdateOrderStatus moves an order along the fulfillment flow
// PATCH /api/v1/orders/:id/status
func (c *Controller) UpdateOrderStatus(ctx *gin.Context) {
	orderID := ctx.Param("id")
	if orderID == "" {
		response.HandleError(ctx, errors.BadRequest("order ID is required"), "order ID is required", http.StatusBadRequest)
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateStatus(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order status updated successfully")
}
