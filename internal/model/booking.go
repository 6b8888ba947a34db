package model

import "time"

// Booking statuses.
const (
    BookingConfirmed = "confirmed"
    BookingPending   = "pending"
    BookingCancelled = "cancelled"
)

// PassengerDetail assigns a passenger to a seat.
type PassengerDetail struct {
    Name string `json:"name"`
    Seat string `json:"seat"`
}

// NewBooking is the payload handed to a booking store.  It carries the
// passenger count, the seats in selection order and the computed total.
type NewBooking struct {
    BookingType      string            `json:"booking_type"`
    FlightID         uint64            `json:"flight_id"`
    Destination      string            `json:"destination"`
    DepartureCity    string            `json:"departure_city"`
    DepartureDate    string            `json:"departure_date"` // YYYY-MM-DD
    Passengers       int               `json:"passengers"`
    Class            string            `json:"class"`
    TotalPrice       int               `json:"total_price"`
    PassengerDetails []PassengerDetail `json:"passenger_details"`
}

// SeatIDs returns the booked seat identifiers in passenger order.
func (b NewBooking) SeatIDs() []string {
    ids := make([]string, 0, len(b.PassengerDetails))
    for _, p := range b.PassengerDetails {
        ids = append(ids, p.Seat)
    }
    return ids
}

// Booking is a stored booking confirmation record.
type Booking struct {
    ID uint64 `json:"id"`
    NewBooking
    Status      string    `json:"status"`
    CreatedDate time.Time `json:"created_date"`
}
