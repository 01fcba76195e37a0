/*
Package user - user API controller.
Register and login are public; /users/me requires a bearer token.
*/
package user

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	userapp "storefront/application/user"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller user controller
type Controller struct {
	userService *userapp.ApplicationService
}

// NewController Create user controller
func NewController(userService *userapp.ApplicationService) *Controller {
	return &Controller{
		userService: userService,
	}
}

// RegisterPublicRoutes registers unauthenticated user routes
func (c *Controller) RegisterPublicRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.POST("/register", c.Register)
		userGroup.POST("/login", c.Login)
	}
}

// RegisterRoutes registers authenticated user routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	userGroup := router.Group("/users")
	{
		userGroup.GET("/me", c.Me)
	}
}

// Register creates a customer account
// POST /api/v1/users/register
func (c *Controller) Register(ctx *gin.Context) {
	var req userapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	user, err := c.userService.Register(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, user, "user registered successfully")
}

// Login exchanges credentials for a bearer token
// POST /api/v1/users/login
func (c *Controller) Login(ctx *gin.Context) {
	var req userapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	login, err := c.userService.Login(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, login, "login successful")
}

// Me returns the authenticated caller's profile
// GET /api/v1/users/me
func (c *Controller) Me(ctx *gin.Context) {
	userID, ok := ctxutil.CurrentUserID(ctx)
	if !ok {
		response.HandleAppError(ctx, errors.Unauthorized("authentication required"))
		return
	}

	user, err := c.userService.GetUser(ctxutil.WithRequestID(ctx), userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, user, "user retrieved successfully")
}
