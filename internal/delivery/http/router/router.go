// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"lnlfit/internal/delivery/http/middleware"
	"lnlfit/internal/delivery/http/router/handler"
	"lnlfit/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CheckoutHandler  *handler.CheckoutHandler
	WebhookHandler   *handler.WebhookHandler
	PlanHandler      *handler.PlanHandler
	ChatHandler      *handler.ChatHandler
	AffiliateHandler *handler.AffiliateHandler
	AdminHandler     *handler.AdminHandler
	TemplateHandler  *handler.TemplateHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	checkoutHandler  *handler.CheckoutHandler
	webhookHandler   *handler.WebhookHandler
	planHandler      *handler.PlanHandler
	chatHandler      *handler.ChatHandler
	affiliateHandler *handler.AffiliateHandler
	adminHandler     *handler.AdminHandler
	templateHandler  *handler.TemplateHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		checkoutHandler:  params.CheckoutHandler,
		webhookHandler:   params.WebhookHandler,
		planHandler:      params.PlanHandler,
		chatHandler:      params.ChatHandler,
		affiliateHandler: params.AffiliateHandler,
		adminHandler:     params.AdminHandler,
		templateHandler:  params.TemplateHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public storefront routes
	apiGroup := e.Group("/api")
	{
		apiGroup.POST("/checkout", r.checkoutHandler.CreateCheckout)
		apiGroup.POST("/webhooks/stripe", r.webhookHandler.HandleStripeWebhook)
		apiGroup.GET("/meal-plan/status", r.planHandler.Status)
		apiGroup.POST("/meal-plan/generate", r.planHandler.Generate)
		apiGroup.POST("/chat", r.chatHandler.Chat)
		apiGroup.POST("/affiliate/track", r.affiliateHandler.TrackClick)
	}

	// Back-office login (public)
	e.POST("/admin/login", r.adminHandler.Login)

	// Back-office routes that require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.AdminRoleAdmin))
	{
		adminGroup.GET("/customers", r.adminHandler.ListCustomers)
		adminGroup.GET("/customers/:id", r.adminHandler.GetCustomer)
		adminGroup.GET("/templates", r.templateHandler.ListTemplates)
		adminGroup.POST("/templates", r.templateHandler.CreateTemplate)
		adminGroup.PUT("/templates/:id", r.templateHandler.UpdateTemplate)
		adminGroup.GET("/affiliates", r.affiliateHandler.ListAffiliates)
		adminGroup.POST("/affiliates", r.affiliateHandler.CreateAffiliate)
	}
}
