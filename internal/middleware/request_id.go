package middleware

import (
    "github.com/google/uuid"
    "github.com/labstack/echo/v4"
)

const (
    RequestIDHeader = "X-Request-ID"
    RequestIDKey    = "request_id"
)

// RequestID reuses an inbound X-Request-ID or mints one.
func RequestID() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id := c.Request().Header.Get(RequestIDHeader)
            if id == "" {
                id = uuid.NewString()
            }
            c.Set(RequestIDKey, id)
            c.Response().Header().Set(RequestIDHeader, id)
            return next(c)
        }
    }
}

// GetRequestID returns the request ID stored by RequestID.
func GetRequestID(c echo.Context) string {
    if id, ok := c.Get(RequestIDKey).(string); ok {
        return id
    }
    return ""
}
