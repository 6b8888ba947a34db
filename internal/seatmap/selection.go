package seatmap

import "encoding/json"

// Selection is the ordered set of seats chosen for one booking.  Membership
// is keyed by seat ID and the order is the order in which seats were
// picked.  The zero value is an empty selection.  Selection values are
// never mutated in place; Toggle returns a new value.
type Selection struct {
    seats []Seat
}

// NewSelection builds a selection from seats in the given order, dropping
// unavailable seats and repeated IDs.
func NewSelection(seats ...Seat) Selection {
    var sel Selection
    for _, s := range seats {
        if !s.Available || sel.Contains(s.ID) {
            continue
        }
        sel.seats = append(sel.seats, s)
    }
    return sel
}

// Toggle returns the selection after a click on seat.  Unavailable seats
// leave it unchanged, a seat already present is removed, any other seat is
// appended at the end.
func (s Selection) Toggle(seat Seat) Selection {
    if !seat.Available {
        return s
    }
    out := make([]Seat, 0, len(s.seats)+1)
    removed := false
    for _, cur := range s.seats {
        if cur.ID == seat.ID {
            removed = true
            continue
        }
        out = append(out, cur)
    }
    if !removed {
        out = append(out, seat)
    }
    return Selection{seats: out}
}

// Contains reports whether a seat with the given ID is selected.
func (s Selection) Contains(id string) bool {
    for _, cur := range s.seats {
        if cur.ID == id {
            return true
        }
    }
    return false
}

func (s Selection) Len() int { return len(s.seats) }

// Seats returns a copy of the selected seats in selection order.
func (s Selection) Seats() []Seat {
    out := make([]Seat, len(s.seats))
    copy(out, s.seats)
    return out
}

// IDs returns the selected seat IDs in selection order.
func (s Selection) IDs() []string {
    ids := make([]string, 0, len(s.seats))
    for _, cur := range s.seats {
        ids = append(ids, cur.ID)
    }
    return ids
}

func (s Selection) MarshalJSON() ([]byte, error) {
    return json.Marshal(s.Seats())
}

func (s *Selection) UnmarshalJSON(b []byte) error {
    var seats []Seat
    if err := json.Unmarshal(b, &seats); err != nil {
        return err
    }
    *s = NewSelection(seats...)
    return nil
}
