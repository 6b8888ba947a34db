package middleware

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/skyway-booking/internal/utils"
)

// SessionIDKey is the context key holding the authenticated seat-session ID.
const SessionIDKey = "session_id"

// SessionAuth validates the Bearer seat-session token issued when the session
// started.  The token subject must match the :id path parameter, so a token
// only unlocks its own session.
func SessionAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            sid, err := utils.ParseSessionToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            if id := c.Param("id"); id != "" && id != sid {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "token does not match session"})
            }

            c.Set(SessionIDKey, sid)
            return next(c)
        }
    }
}

// sessionID returns the authenticated session, or "anon" on public routes.
func sessionID(c echo.Context) string {
    if v, ok := c.Get(SessionIDKey).(string); ok && v != "" {
        return v
    }
    return "anon"
}
