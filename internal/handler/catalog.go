// Package handler exposes the HTTP handlers for the catalog, seat-selection
// sessions and booking history.
package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/skyway-booking/internal/repository"
)

// CatalogHandler serves the public browse endpoints.  No authentication is
// required.
type CatalogHandler struct {
    Catalog *repository.CatalogRepo
}

// NewCatalogHandler panics on a nil repository.
func NewCatalogHandler(catalog *repository.CatalogRepo) *CatalogHandler {
    if catalog == nil {
        panic("nil repository passed to NewCatalogHandler")
    }
    return &CatalogHandler{Catalog: catalog}
}

// ListDestinations handles GET /v1/destinations.  Optional query parameters:
// category (case-insensitive) and popular=true|false.
func (h *CatalogHandler) ListDestinations(c echo.Context) error {
    var f repository.DestinationFilter
    f.Category = c.QueryParam("category")
    if raw := c.QueryParam("popular"); raw != "" {
        v, err := strconv.ParseBool(raw)
        if err != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "popular must be true or false"})
        }
        f.Popular = &v
    }
    items, err := h.Catalog.ListDestinations(c.Request().Context(), f)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListFlights handles GET /v1/flights.
func (h *CatalogHandler) ListFlights(c echo.Context) error {
    items, err := h.Catalog.ListFlights(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListHotels handles GET /v1/hotels.  Optional query parameter location
// matches hotels whose location contains it.
func (h *CatalogHandler) ListHotels(c echo.Context) error {
    items, err := h.Catalog.ListHotels(c.Request().Context(), c.QueryParam("location"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetFlight handles GET /v1/flights/:id.
func (h *CatalogHandler) GetFlight(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
    }
    f, err := h.Catalog.GetFlight(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, f)
}
