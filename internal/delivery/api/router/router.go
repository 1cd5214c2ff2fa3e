// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"addrbook/internal/delivery/api/router/handler"
	"addrbook/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AddressHandler *handler.AddressHandler
	Metrics        *metrics.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	addressHandler *handler.AddressHandler
	metrics        *metrics.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		addressHandler: params.AddressHandler,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	e.GET("/metrics", r.metrics.Handler)

	addressesGroup := e.Group("/addresses")
	{
		addressesGroup.POST("/search", r.addressHandler.SearchAddresses)
		addressesGroup.POST("", r.addressHandler.CreateAddress)
		addressesGroup.GET("", r.addressHandler.ListAddresses)
		addressesGroup.GET("/:id", r.addressHandler.GetAddress)
		addressesGroup.PUT("/:id", r.addressHandler.UpdateAddress)
		addressesGroup.DELETE("/:id", r.addressHandler.DeleteAddress)
	}
}
