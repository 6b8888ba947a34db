package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/skyway-booking/internal/model"
    "github.com/iliyamo/skyway-booking/internal/seatmap"
    "github.com/iliyamo/skyway-booking/internal/service"
    "github.com/iliyamo/skyway-booking/internal/utils"
)

// SeatSessionHandler drives seat selection and booking.  Every route except
// Start and ListBookings sits behind middleware.SessionAuth, which has
// already checked that the bearer token names the :id session.
type SeatSessionHandler struct {
    Sessions *service.SeatSessionService
    Secret   string
    Log      *zap.Logger
}

// NewSeatSessionHandler panics on a nil service.
func NewSeatSessionHandler(sessions *service.SeatSessionService, secret string, log *zap.Logger) *SeatSessionHandler {
    if sessions == nil {
        panic("nil service passed to NewSeatSessionHandler")
    }
    if log == nil {
        log = zap.NewNop()
    }
    return &SeatSessionHandler{Sessions: sessions, Secret: secret, Log: log}
}

// SeatView is a seat with its display state.
type SeatView struct {
    seatmap.Seat
    State seatmap.State `json:"state"`
}

// RowView is one seat row split at the aisle.
type RowView struct {
    Number int               `json:"number"`
    Class  seatmap.FareClass `json:"class"`
    Left   []SeatView        `json:"left"`
    Right  []SeatView        `json:"right"`
}

// CabinView groups rows of one fare class.
type CabinView struct {
    Class seatmap.FareClass `json:"class"`
    Rows  []RowView         `json:"rows"`
}

// SessionView is the seat map page: cabins with per-seat state, the current
// selection and its price.
type SessionView struct {
    ID         string             `json:"id"`
    Flight     model.Flight       `json:"flight"`
    ExpiresAt  time.Time          `json:"expires_at"`
    Cabins     []CabinView        `json:"cabins"`
    Selection  seatmap.Selection  `json:"selection"`
    Quote      seatmap.PriceQuote `json:"quote"`
    Submitting bool               `json:"submitting"`
}

func newSessionView(s model.SeatSession) SessionView {
    view := SessionView{
        ID:         s.ID,
        Flight:     s.Flight,
        ExpiresAt:  s.ExpiresAt,
        Selection:  s.Selection,
        Quote:      seatmap.Quote(s.Flight.Price, s.Selection),
        Submitting: s.Submitting,
    }
    seatViews := func(seats []seatmap.Seat) []SeatView {
        out := make([]SeatView, 0, len(seats))
        for _, seat := range seats {
            out = append(out, SeatView{Seat: seat, State: seatmap.Classify(seat, s.Selection)})
        }
        return out
    }
    for _, cabin := range s.Seats.Cabins() {
        cv := CabinView{Class: cabin.Class, Rows: make([]RowView, 0, len(cabin.Rows))}
        for _, r := range cabin.Rows {
            cv.Rows = append(cv.Rows, RowView{
                Number: r.Number,
                Class:  r.Class,
                Left:   seatViews(r.Left),
                Right:  seatViews(r.Right),
            })
        }
        view.Cabins = append(view.Cabins, cv)
    }
    return view
}

// Start handles POST /v1/flights/:id/seat-sessions.  It opens a session with
// a freshly generated seat map and returns it with the bearer token that
// unlocks the session routes.
func (h *SeatSessionHandler) Start(c echo.Context) error {
    flightID, ok := parseID(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
    }
    sess, err := h.Sessions.Start(c.Request().Context(), flightID)
    if err != nil {
        return respondError(c, err)
    }
    tok, err := utils.NewSessionToken(h.Secret, sess.ID, sess.ExpiresAt)
    if err != nil {
        h.Log.Error("sign session token", zap.String("session_id", sess.ID), zap.Error(err))
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "session": newSessionView(sess),
        "token":   tok,
    })
}

// Get handles GET /v1/seat-sessions/:id.
func (h *SeatSessionHandler) Get(c echo.Context) error {
    sess, err := h.Sessions.Get(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, newSessionView(sess))
}

// Toggle handles POST /v1/seat-sessions/:id/seats/:seat.  Clicking an
// occupied seat is not an error: the response reports changed=false.
func (h *SeatSessionHandler) Toggle(c echo.Context) error {
    sess, changed, err := h.Sessions.Toggle(c.Request().Context(), c.Param("id"), c.Param("seat"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "changed": changed,
        "session": newSessionView(sess),
    })
}

// Quote handles GET /v1/seat-sessions/:id/quote.
func (h *SeatSessionHandler) Quote(c echo.Context) error {
    q, err := h.Sessions.Quote(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, q)
}

// Submit handles POST /v1/seat-sessions/:id/booking.  An empty selection is
// rejected with 400 and a submit already running for the session with 409.
// A booking store failure maps to a generic 502; the session's claim is
// released first, so the same selection can be submitted again.
func (h *SeatSessionHandler) Submit(c echo.Context) error {
    b, err := h.Sessions.Submit(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, b)
}

// Discard handles DELETE /v1/seat-sessions/:id.
func (h *SeatSessionHandler) Discard(c echo.Context) error {
    if err := h.Sessions.Discard(c.Request().Context(), c.Param("id")); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// ListBookings handles GET /v1/bookings.  sort=-created_date returns newest
// first; anything else keeps insertion order.
func (h *SeatSessionHandler) ListBookings(c echo.Context) error {
    items, err := h.Sessions.ListBookings(c.Request().Context(), c.QueryParam("sort"))
    if err != nil {
        h.Log.Error("list bookings", zap.Error(err))
        return respondError(c, err)
    }
    if items == nil {
        items = []model.Booking{}
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}
