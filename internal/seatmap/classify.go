package seatmap

// State is how a seat is presented on the seat map.
type State string

const (
    StateAvailable State = "available"
    StateSelected  State = "selected"
    StateOccupied  State = "occupied"
)

// Classify maps a seat to its display state.  Occupied wins over selection
// membership, so an unavailable seat is never reported as selected.
func Classify(seat Seat, sel Selection) State {
    if !seat.Available {
        return StateOccupied
    }
    if sel.Contains(seat.ID) {
        return StateSelected
    }
    return StateAvailable
}
