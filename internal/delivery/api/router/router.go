// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/config"
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/constants"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const defaultMetricsPath = "/metrics"

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	ProductHandler *handler.ProductHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
	Metrics        *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	productHandler *handler.ProductHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
	metrics        *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		productHandler: params.ProductHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	auth := r.authMiddleware.Authenticate
	api := e.Group(constants.APIBasePath)

	// Public routes
	api.POST("/register", r.userHandler.Register)
	api.POST("/login", r.userHandler.Login)

	// Routes behind the bearer token gate
	api.GET("/get-token", r.userHandler.GetToken, auth)

	api.POST("/product", r.productHandler.CreateProduct, auth)
	api.GET("/products", r.productHandler.ListProducts, auth)
	api.GET("/product/:id", r.productHandler.GetProduct, auth)
	api.PUT("/product/:id", r.productHandler.UpdateProduct, auth)
	api.DELETE("/product/:id", r.productHandler.DeleteProduct, auth)
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.metrics == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET(MetricsPath(r.config), echo.WrapHandler(r.metrics.Handler()))
}

// MetricsPath is the configured scrape path, "/metrics" by default.
func MetricsPath(cfg *config.Config) string {
	if cfg.Metrics == nil || cfg.Metrics.Path == "" {
		return defaultMetricsPath
	}

	return cfg.Metrics.Path
}
