package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
    "go.uber.org/zap/zaptest/observer"

    "github.com/iliyamo/skyway-booking/internal/config"
    "github.com/iliyamo/skyway-booking/internal/utils"
)

const testSecret = "test-secret"

func sessionRoute(t *testing.T) *echo.Echo {
    t.Helper()
    e := echo.New()
    e.GET("/v1/seat-sessions/:id", func(c echo.Context) error {
        return c.String(http.StatusOK, c.Get(SessionIDKey).(string))
    }, SessionAuth(testSecret))
    return e
}

func TestSessionAuth(t *testing.T) {
    e := sessionRoute(t)
    tok, err := utils.NewSessionToken(testSecret, "abc", time.Now().Add(time.Hour))
    require.NoError(t, err)

    tests := []struct {
        name   string
        path   string
        header string
        status int
    }{
        {"missing header", "/v1/seat-sessions/abc", "", http.StatusUnauthorized},
        {"garbage token", "/v1/seat-sessions/abc", "Bearer nope", http.StatusUnauthorized},
        {"other session", "/v1/seat-sessions/xyz", "Bearer " + tok.Token, http.StatusForbidden},
        {"own session", "/v1/seat-sessions/abc", "Bearer " + tok.Token, http.StatusOK},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            req := httptest.NewRequest(http.MethodGet, tt.path, nil)
            if tt.header != "" {
                req.Header.Set("Authorization", tt.header)
            }
            rec := httptest.NewRecorder()
            e.ServeHTTP(rec, req)
            assert.Equal(t, tt.status, rec.Code)
            if tt.status == http.StatusOK {
                assert.Equal(t, "abc", rec.Body.String())
            }
        })
    }
}

func TestSessionAuth_ExpiredToken(t *testing.T) {
    e := sessionRoute(t)
    tok, err := utils.NewSessionToken(testSecret, "abc", time.Now().Add(-time.Minute))
    require.NoError(t, err)

    req := httptest.NewRequest(http.MethodGet, "/v1/seat-sessions/abc", nil)
    req.Header.Set("Authorization", "Bearer "+tok.Token)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestID(t *testing.T) {
    e := echo.New()
    e.Use(RequestID())
    e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    generated := rec.Header().Get(RequestIDHeader)
    assert.Len(t, generated, 36)
    assert.Equal(t, generated, rec.Body.String())

    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set(RequestIDHeader, "given")
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    assert.Equal(t, "given", rec.Header().Get(RequestIDHeader))
}

func TestAccessLog(t *testing.T) {
    core, logs := observer.New(zapcore.InfoLevel)
    e := echo.New()
    e.Use(RequestID(), AccessLog(zap.New(core)))
    e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
    e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadGateway, "down") })

    e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
    assert.Equal(t, http.StatusBadGateway, rec.Code)

    entries := logs.All()
    require.Len(t, entries, 2)
    assert.Equal(t, "Request completed", entries[0].Message)
    assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
    assert.Equal(t, int64(http.StatusBadGateway), entries[1].ContextMap()["status"])
}

func TestBuildRateKey(t *testing.T) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/seat-sessions/s1/seats/1A", nil)
    req.Header.Set("X-Real-IP", "10.0.0.1")
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/seat-sessions/:id/seats/:seat")

    cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_session_route"}
    assert.Equal(t, "rl:ip:10.0.0.1:session:anon:route:POST /v1/seat-sessions/:id/seats/:seat", buildRateKey(cfg, c))

    c.Set(SessionIDKey, "s1")
    cfg.KeyStrategy = "session"
    assert.Equal(t, "rl:session:s1", buildRateKey(cfg, c))
}

func TestTokenBucket_DisabledPassesThrough(t *testing.T) {
    e := echo.New()
    e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, nil))
    e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
    assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCachePayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"items":[]}`))
    require.NoError(t, err)

    status, gotHdr, body, ok := decodePayload(bs)
    require.True(t, ok)
    assert.Equal(t, http.StatusOK, status)
    assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
    assert.Equal(t, `{"items":[]}`, string(body))

    _, _, _, ok = decodePayload([]byte{0, 1})
    assert.False(t, ok)
}

func TestSkipReplayHeader(t *testing.T) {
    assert.True(t, skipReplayHeader("x-request-id"))
    assert.True(t, skipReplayHeader("X-RateLimit-Remaining"))
    assert.False(t, skipReplayHeader("Content-Type"))
}
