package seatmap

import (
    "math/rand/v2"
    "strconv"
)

// Seat is one seat in the cabin.  ID combines the row number and the seat
// letter, e.g. "12C".
type Seat struct {
    ID           string    `json:"id"`
    Row          int       `json:"row"`
    Letter       string    `json:"letter"`
    Class        FareClass `json:"class"`
    Available    bool      `json:"available"`
    UpgradePrice int       `json:"upgrade_price"`
}

// Source supplies uniformly distributed numbers in [0, 1).  *rand.Rand
// from math/rand/v2 satisfies it.
type Source interface {
    Float64() float64
}

// NewSource returns a Source seeded from the runtime's random state.
func NewSource() Source {
    return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededSource returns a reproducible Source.
func NewSeededSource(seed uint64) Source {
    return rand.New(rand.NewPCG(seed, seed))
}

// cabinBlock describes a contiguous range of rows sharing a fare class.
// A seat is available when its draw is above occupancy.
type cabinBlock struct {
    class     FareClass
    firstRow  int
    lastRow   int
    letters   []string
    occupancy float64
}

var cabinLayout = []cabinBlock{
    {class: Business, firstRow: 1, lastRow: 3, letters: []string{"A", "B", "C", "D"}, occupancy: 0.3},
    {class: Premium, firstRow: 4, lastRow: 8, letters: []string{"A", "B", "C", "D", "E", "F"}, occupancy: 0.4},
    {class: Economy, firstRow: 9, lastRow: 30, letters: []string{"A", "B", "C", "D", "E", "F"}, occupancy: 0.5},
}

// Inventory is the generated seat list for one flight, ordered by row and
// then by letter.
type Inventory []Seat

// Generate produces the full seat inventory.  The layout is always the
// same; only availability is drawn from src, one draw per seat in layout
// order.  Callers generate once per selection session and keep the result.
func Generate(src Source) Inventory {
    if src == nil {
        src = NewSource()
    }
    inv := make(Inventory, 0, 174)
    for _, b := range cabinLayout {
        for row := b.firstRow; row <= b.lastRow; row++ {
            for _, letter := range b.letters {
                inv = append(inv, Seat{
                    ID:           strconv.Itoa(row) + letter,
                    Row:          row,
                    Letter:       letter,
                    Class:        b.class,
                    Available:    src.Float64() > b.occupancy,
                    UpgradePrice: b.class.UpgradePrice(),
                })
            }
        }
    }
    return inv
}

// Find returns the seat with the given identifier.
func (inv Inventory) Find(id string) (Seat, bool) {
    for _, s := range inv {
        if s.ID == id {
            return s, true
        }
    }
    return Seat{}, false
}

// Row holds the seats of one row split around the aisle.
type Row struct {
    Number int       `json:"number"`
    Class  FareClass `json:"class"`
    Left   []Seat    `json:"left"`
    Right  []Seat    `json:"right"`
}

// Cabin is a titled group of rows sharing a fare class.
type Cabin struct {
    Class FareClass `json:"class"`
    Rows  []Row     `json:"rows"`
}

// Rows groups the inventory by row number in ascending order.  Letters A-C
// sit left of the aisle and D-F right of it.
func (inv Inventory) Rows() []Row {
    var rows []Row
    for _, s := range inv {
        if len(rows) == 0 || rows[len(rows)-1].Number != s.Row {
            rows = append(rows, Row{Number: s.Row, Class: s.Class})
        }
        r := &rows[len(rows)-1]
        if s.Letter <= "C" {
            r.Left = append(r.Left, s)
        } else {
            r.Right = append(r.Right, s)
        }
    }
    return rows
}

// Cabins groups rows by fare class in display order: business, premium,
// economy.
func (inv Inventory) Cabins() []Cabin {
    var cabins []Cabin
    for _, r := range inv.Rows() {
        if len(cabins) == 0 || cabins[len(cabins)-1].Class != r.Class {
            cabins = append(cabins, Cabin{Class: r.Class})
        }
        c := &cabins[len(cabins)-1]
        c.Rows = append(c.Rows, r)
    }
    return cabins
}
