// Package service holds the seat-selection workflow: opening a session for
// a flight, toggling seats, quoting the price and submitting the booking.
package service

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "sync"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    "github.com/iliyamo/skyway-booking/internal/model"
    "github.com/iliyamo/skyway-booking/internal/queue"
    "github.com/iliyamo/skyway-booking/internal/repository"
    "github.com/iliyamo/skyway-booking/internal/seatmap"
)

var (
    // ErrEmptySelection rejects a submission with no seats selected.
    ErrEmptySelection = errors.New("please select at least one seat")
    // ErrSeatNotFound is returned when a seat ID is not in the session's inventory.
    ErrSeatNotFound = errors.New("seat not found")
    // ErrInvalidFare is returned for flights with a negative base fare.
    ErrInvalidFare = errors.New("invalid base fare")
    // ErrBookingFailed wraps any booking store failure.
    ErrBookingFailed = errors.New("booking failed")
    // ErrSubmitInProgress is returned when the session's selection is already
    // being booked.
    ErrSubmitInProgress = errors.New("booking already in progress")
)

// FlightCatalog supplies the fare context for a session.
type FlightCatalog interface {
    GetFlight(ctx context.Context, id uint64) (model.Flight, error)
}

// SessionStore keeps seat sessions between requests.
type SessionStore interface {
    Create(ctx context.Context, sess model.SeatSession) error
    Get(ctx context.Context, id string) (model.SeatSession, error)
    Update(ctx context.Context, id string, fn func(*model.SeatSession) error) (model.SeatSession, error)
    Delete(ctx context.Context, id string) error
}

// BookingRepository is the booking-creation collaborator.
type BookingRepository interface {
    Create(ctx context.Context, b model.NewBooking) (model.Booking, error)
    List(ctx context.Context, sortBy string) ([]model.Booking, error)
}

// SeatSessionService runs seat-selection sessions.
type SeatSessionService struct {
    flights   FlightCatalog
    sessions  SessionStore
    bookings  BookingRepository
    publisher EventPublisher
    log       *zap.Logger

    ttl   time.Duration
    now   func() time.Time
    newID func() string

    srcMu sync.Mutex
    src   seatmap.Source
}

// Option configures a SeatSessionService.
type Option func(*SeatSessionService)

// WithSessionTTL sets how long a session lives after it starts.
func WithSessionTTL(d time.Duration) Option {
    return func(s *SeatSessionService) {
        if d > 0 {
            s.ttl = d
        }
    }
}

// WithSource injects the random source used for seat availability.
func WithSource(src seatmap.Source) Option {
    return func(s *SeatSessionService) {
        if src != nil {
            s.src = src
        }
    }
}

// WithPublisher sets the booking event publisher.
func WithPublisher(p EventPublisher) Option {
    return func(s *SeatSessionService) {
        if p != nil {
            s.publisher = p
        }
    }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
    return func(s *SeatSessionService) {
        if now != nil {
            s.now = now
        }
    }
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(fn func() string) Option {
    return func(s *SeatSessionService) {
        if fn != nil {
            s.newID = fn
        }
    }
}

// NewSeatSessionService wires the service.  flights, sessions and bookings
// must be non-nil.
func NewSeatSessionService(flights FlightCatalog, sessions SessionStore, bookings BookingRepository, log *zap.Logger, opts ...Option) *SeatSessionService {
    if flights == nil || sessions == nil || bookings == nil {
        panic("nil dependency passed to NewSeatSessionService")
    }
    if log == nil {
        log = zap.NewNop()
    }
    s := &SeatSessionService{
        flights:   flights,
        sessions:  sessions,
        bookings:  bookings,
        publisher: NopPublisher{},
        log:       log,
        ttl:       30 * time.Minute,
        now:       func() time.Time { return time.Now().UTC() },
        newID:     func() string { return uuid.NewString() },
        src:       seatmap.NewSource(),
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// Start opens a session for a flight.  The seat inventory is generated here
// exactly once and stored with the session.
func (s *SeatSessionService) Start(ctx context.Context, flightID uint64) (model.SeatSession, error) {
    flight, err := s.flights.GetFlight(ctx, flightID)
    if err != nil {
        return model.SeatSession{}, err
    }
    if flight.Price < 0 {
        return model.SeatSession{}, ErrInvalidFare
    }

    s.srcMu.Lock()
    seats := seatmap.Generate(s.src)
    s.srcMu.Unlock()

    now := s.now()
    sess := model.SeatSession{
        ID:        s.newID(),
        Flight:    flight,
        Seats:     seats,
        CreatedAt: now,
        ExpiresAt: now.Add(s.ttl),
    }
    if err := s.sessions.Create(ctx, sess); err != nil {
        return model.SeatSession{}, fmt.Errorf("store session: %w", err)
    }
    s.log.Info("seat session started",
        zap.String("session_id", sess.ID),
        zap.Uint64("flight_id", flight.ID),
        zap.Int("seats", len(seats)))
    return sess, nil
}

// Get returns the current state of a session.
func (s *SeatSessionService) Get(ctx context.Context, id string) (model.SeatSession, error) {
    return s.sessions.Get(ctx, id)
}

// Toggle applies a click on seatID.  Occupied seats leave the selection
// unchanged; changed reports whether the selection moved.
func (s *SeatSessionService) Toggle(ctx context.Context, id, seatID string) (sess model.SeatSession, changed bool, err error) {
    seatID = strings.ToUpper(strings.TrimSpace(seatID))
    sess, err = s.sessions.Update(ctx, id, func(cur *model.SeatSession) error {
        if cur.Submitting {
            return ErrSubmitInProgress
        }
        seat, ok := cur.Seats.Find(seatID)
        if !ok {
            return ErrSeatNotFound
        }
        before := cur.Selection.Len()
        cur.Selection = cur.Selection.Toggle(seat)
        changed = cur.Selection.Len() != before
        return nil
    })
    if err != nil {
        return model.SeatSession{}, false, err
    }
    return sess, changed, nil
}

// Quote returns the price summary for the session's current selection.
func (s *SeatSessionService) Quote(ctx context.Context, id string) (seatmap.PriceQuote, error) {
    sess, err := s.sessions.Get(ctx, id)
    if err != nil {
        return seatmap.PriceQuote{}, err
    }
    return seatmap.Quote(sess.Flight.Price, sess.Selection), nil
}

// Submit books the selected seats.  The session is first claimed through the
// store: an empty selection is rejected and a second submit, or a toggle,
// sees ErrSubmitInProgress until the claim is released.  The store call is
// not cancellable and has no timeout.  On failure the claim is released and
// the selection is left as it was.  On success the session ends and a
// booking.created event is published best effort.
func (s *SeatSessionService) Submit(ctx context.Context, id string) (model.Booking, error) {
    sess, err := s.sessions.Update(ctx, id, func(cur *model.SeatSession) error {
        if cur.Submitting {
            return ErrSubmitInProgress
        }
        if cur.Selection.Len() == 0 {
            return ErrEmptySelection
        }
        cur.Submitting = true
        return nil
    })
    if err != nil {
        return model.Booking{}, err
    }

    detached := context.WithoutCancel(ctx)
    booking, err := s.bookings.Create(detached, s.bookingFor(sess))
    if err != nil {
        s.log.Error("booking error", zap.String("session_id", id), zap.Error(err))
        s.release(detached, id)
        return model.Booking{}, fmt.Errorf("%w: %v", ErrBookingFailed, err)
    }

    if err := s.sessions.Delete(detached, id); err != nil {
        s.log.Warn("failed to end seat session", zap.String("session_id", id), zap.Error(err))
    }
    if err := s.publisher.PublishBookingCreated(detached, queue.NewBookingCreatedEvent(booking)); err != nil {
        s.log.Warn("failed to publish booking event", zap.Uint64("booking_id", booking.ID), zap.Error(err))
    }
    s.log.Info("booking created",
        zap.Uint64("booking_id", booking.ID),
        zap.Strings("seats", booking.SeatIDs()),
        zap.Int("total_price", booking.TotalPrice))
    return booking, nil
}

// release clears the submit claim after a failed booking.  A session that
// expired meanwhile has nothing to release.
func (s *SeatSessionService) release(ctx context.Context, id string) {
    _, err := s.sessions.Update(ctx, id, func(cur *model.SeatSession) error {
        cur.Submitting = false
        return nil
    })
    if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
        s.log.Warn("failed to release seat session", zap.String("session_id", id), zap.Error(err))
    }
}

// Discard ends a session without booking.
func (s *SeatSessionService) Discard(ctx context.Context, id string) error {
    return s.sessions.Delete(ctx, id)
}

// ListBookings returns stored bookings; see repository.SortNewestFirst.
func (s *SeatSessionService) ListBookings(ctx context.Context, sortBy string) ([]model.Booking, error) {
    return s.bookings.List(ctx, sortBy)
}

// bookingFor builds the submission payload: one passenger per selected seat
// in selection order.
func (s *SeatSessionService) bookingFor(sess model.SeatSession) model.NewBooking {
    seats := sess.Selection.Seats()
    details := make([]model.PassengerDetail, 0, len(seats))
    for i, seat := range seats {
        details = append(details, model.PassengerDetail{
            Name: fmt.Sprintf("Passenger %d", i+1),
            Seat: seat.ID,
        })
    }
    return model.NewBooking{
        BookingType:      "flight",
        FlightID:         sess.Flight.ID,
        Destination:      sess.Flight.Arrival.City,
        DepartureCity:    sess.Flight.Departure.City,
        DepartureDate:    s.now().Format("2006-01-02"),
        Passengers:       len(seats),
        Class:            strings.ToLower(sess.Flight.Class),
        TotalPrice:       seatmap.Total(sess.Flight.Price, sess.Selection),
        PassengerDetails: details,
    }
}
