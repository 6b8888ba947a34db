package model

// Endpoint is one end of a flight leg.
type Endpoint struct {
    Time string `json:"time"` // local time, HH:MM
    City string `json:"city"`
    Code string `json:"code"` // IATA airport code
}

// Flight is a bookable flight offer.  Price is the base fare charged per
// seat before any seat upgrade.
type Flight struct {
    ID        uint64   `json:"id"`
    Airline   string   `json:"airline"`
    Departure Endpoint `json:"departure"`
    Arrival   Endpoint `json:"arrival"`
    Duration  string   `json:"duration"`
    Stops     int      `json:"stops"`
    Price     int      `json:"price"`
    Class     string   `json:"class"`
    Amenities []string `json:"amenities"`
    Rating    float64  `json:"rating"`
}
