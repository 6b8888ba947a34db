package model

// Hotel is an accommodation offer returned by the hotel search.
// PricePerNight is in whole dollars.
type Hotel struct {
    ID            uint64   `json:"id"`
    Name          string   `json:"name"`
    Location      string   `json:"location"`
    Rating        float64  `json:"rating"`
    PricePerNight int      `json:"price_per_night"`
    Amenities     []string `json:"amenities"`
    ImageURL      string   `json:"image_url"`
    Description   string   `json:"description"`
}
