package model

// Destination is a featured travel destination shown on the browse pages.
//
// Fields:
//  ID          – catalog identifier.
//  Name        – display name, e.g. "Kyoto".
//  Country     – country the destination belongs to.
//  Category    – one of island, city, mountain, temple or forest.
//  PriceFrom   – lowest advertised package price in whole dollars.
//  Rating      – average rating out of five.
//  Popular     – whether the destination is featured.
type Destination struct {
    ID          uint64  `json:"id"`
    Name        string  `json:"name"`
    Country     string  `json:"country"`
    Description string  `json:"description"`
    ImageURL    string  `json:"image_url"`
    Category    string  `json:"category"`
    PriceFrom   int     `json:"price_from"`
    Rating      float64 `json:"rating"`
    Popular     bool    `json:"popular"`
}
