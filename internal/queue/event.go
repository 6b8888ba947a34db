package queue

import (
    "time"

    "github.com/iliyamo/skyway-booking/internal/model"
)

// BookingCreatedQueue is the durable queue carrying BookingCreatedEvent.
const BookingCreatedQueue = "booking.created"

// BookingCreatedEvent is published after a booking is stored.  It contains
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the booking store.
type BookingCreatedEvent struct {
    BookingID     uint64   `json:"booking_id"`
    FlightID      uint64   `json:"flight_id"`
    Destination   string   `json:"destination"`
    DepartureCity string   `json:"departure_city"`
    DepartureDate string   `json:"departure_date"`
    Class         string   `json:"class"`
    Seats         []string `json:"seats"`
    Passengers    int      `json:"passengers"`
    TotalPrice    int      `json:"total_price"`
    CreatedAt     string   `json:"created_at"`
}

// NewBookingCreatedEvent builds the event for a stored booking.
func NewBookingCreatedEvent(b model.Booking) BookingCreatedEvent {
    return BookingCreatedEvent{
        BookingID:     b.ID,
        FlightID:      b.FlightID,
        Destination:   b.Destination,
        DepartureCity: b.DepartureCity,
        DepartureDate: b.DepartureDate,
        Class:         b.Class,
        Seats:         b.SeatIDs(),
        Passengers:    b.Passengers,
        TotalPrice:    b.TotalPrice,
        CreatedAt:     b.CreatedDate.UTC().Format(time.RFC3339),
    }
}
