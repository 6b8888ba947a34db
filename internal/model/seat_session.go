package model

import (
	"time"

	"github.com/iliyamo/skyway-booking/internal/seatmap"
)

// SeatSession is one seat-selection session for a flight.  The seat
// inventory is generated when the session starts and never regenerated;
// only Selection changes afterwards.  Submitting is set while a booking for
// the selection is being stored; the selection is frozen until it clears.
type SeatSession struct {
	ID         string            `json:"id"`
	Flight     Flight            `json:"flight"`
	Seats      seatmap.Inventory `json:"seats"`
	Selection  seatmap.Selection `json:"selection"`
	Submitting bool              `json:"submitting"`
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at now.
func (s SeatSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
