// Package router wires handlers and middleware onto the echo instance.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/skyway-booking/internal/handler"
    "github.com/iliyamo/skyway-booking/internal/middleware"
)

// RegisterRoutes registers the health check.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the public browse endpoints.  cache is applied to
// the group so repeated catalog reads are served from Redis.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache echo.MiddlewareFunc) {
    g := e.Group("/v1", cache)
    g.GET("/destinations", h.ListDestinations)
    g.GET("/flights", h.ListFlights)
    g.GET("/flights/:id", h.GetFlight)
    g.GET("/hotels", h.ListHotels)
}

// RegisterSeatSessions registers session start, the token-protected session
// routes and the booking history.  SessionAuth runs before the rate limiter
// so buckets are keyed by session.
func RegisterSeatSessions(e *echo.Echo, h *handler.SeatSessionHandler, secret string, limiter echo.MiddlewareFunc) {
    e.POST("/v1/flights/:id/seat-sessions", h.Start, limiter)
    e.GET("/v1/bookings", h.ListBookings)

    s := e.Group("/v1/seat-sessions/:id")
    s.Use(middleware.SessionAuth(secret), limiter)
    s.GET("", h.Get)
    s.DELETE("", h.Discard)
    s.POST("/seats/:seat", h.Toggle)
    s.GET("/quote", h.Quote)
    s.POST("/booking", h.Submit)
}
