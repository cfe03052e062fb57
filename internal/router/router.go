package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/concert-ticketing/internal/handler"    // handlers for catalog, selection and checkout
	"github.com/iliyamo/concert-ticketing/internal/middleware" // cache, rate limit and order token middleware
)

// RegisterRoutes registers the liveness endpoint.  It can be used by load
// balancers or monitoring systems to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the read-only catalog routes.  Extra
// middleware (the Redis response cache) applies to all of them.
func RegisterCatalog(e *echo.Echo, h *handler.ConcertHandler, mw ...echo.MiddlewareFunc) {
	e.GET("/readyz", h.Ready)

	g := e.Group("/v1/concerts", mw...)
	g.GET("", h.ListConcerts)
	// "featured" is a static segment, so Echo matches it before :id.
	g.GET("/featured", h.Featured)
	g.GET("/:id", h.GetConcert)
}

// RegisterStorefront registers ticket selection and checkout routes.
// Extra middleware (the rate limiter) applies to all of them; the order
// token middleware only guards checkout creation.
func RegisterStorefront(e *echo.Echo, h *handler.StorefrontHandler, tokenSecret string, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	// Selection: one per concert detail visit.
	g.POST("/concerts/:id/selections", h.CreateSelection)
	g.GET("/selections/:id", h.GetSelection)
	g.PATCH("/selections/:id", h.UpdateSelection)
	g.DELETE("/selections/:id", h.DeleteSelection)
	g.POST("/selections/:id/checkout", h.ProceedToCheckout)

	// Checkout: FORM -> PAYMENT -> SUCCESS.
	g.POST("/checkouts", h.StartCheckout, middleware.OrderToken(tokenSecret))
	g.GET("/checkouts/:id", h.GetCheckout)
	g.POST("/checkouts/:id/contact", h.SubmitContact)
	g.POST("/checkouts/:id/edit", h.EditContact)
	g.POST("/checkouts/:id/confirm", h.ConfirmPayment)
	g.DELETE("/checkouts/:id", h.CancelCheckout)
}
