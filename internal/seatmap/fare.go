// Package seatmap builds the seat inventory for a flight and implements
// seat selection, seat state classification and price aggregation.  All
// values in this package are plain data; callers own the state and decide
// how it is stored between requests.
package seatmap

// FareClass groups seats into cabins and determines the upgrade surcharge
// charged on top of the flight's base fare.
type FareClass string

const (
    Economy  FareClass = "economy"
    Premium  FareClass = "premium"
    Business FareClass = "business"
)

// upgradePrices is the fixed surcharge per fare class.
var upgradePrices = map[FareClass]int{
    Economy:  0,
    Premium:  150,
    Business: 500,
}

// UpgradePrice returns the surcharge for the class.  Unknown classes cost
// nothing extra.
func (f FareClass) UpgradePrice() int { return upgradePrices[f] }

// Valid reports whether f is one of the known fare classes.
func (f FareClass) Valid() bool {
    _, ok := upgradePrices[f]
    return ok
}
