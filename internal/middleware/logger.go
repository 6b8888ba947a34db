package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"
)

// AccessLog writes one zap entry per request, with the level chosen by status.
func AccessLog(log *zap.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()
            err := next(c)
            if err != nil {
                // let echo render the error so the logged status is final
                c.Error(err)
            }

            req := c.Request()
            res := c.Response()
            fields := []zap.Field{
                zap.String("request_id", GetRequestID(c)),
                zap.Int("status", res.Status),
                zap.String("method", req.Method),
                zap.String("path", req.URL.Path),
                zap.String("route", c.Path()),
                zap.String("query", req.URL.RawQuery),
                zap.String("ip", c.RealIP()),
                zap.Duration("latency", time.Since(start)),
                zap.Int64("body_size", res.Size),
            }
            if sid := sessionID(c); sid != "anon" {
                fields = append(fields, zap.String("session_id", sid))
            }
            if err != nil {
                fields = append(fields, zap.Error(err))
            }

            switch {
            case res.Status >= 500:
                log.Error("Server error", fields...)
            case res.Status >= 400:
                log.Warn("Client error", fields...)
            default:
                log.Info("Request completed", fields...)
            }
            return nil
        }
    }
}
