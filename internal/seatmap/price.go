package seatmap

// Total computes the booking price:
//
//  base * max(1, selected) + sum of upgrade prices
//
// At least one passenger is always charged, even with an empty selection.
// A negative base is treated as zero.
func Total(base int, sel Selection) int {
    return Quote(base, sel).Total
}

// UpgradeLine is one surcharge row of the price summary.
type UpgradeLine struct {
    SeatID string    `json:"seat_id"`
    Class  FareClass `json:"class"`
    Amount int       `json:"amount"`
}

// PriceQuote is the price summary shown next to the seat map.
type PriceQuote struct {
    BasePrice    int           `json:"base_price"`
    ChargedSeats int           `json:"charged_seats"`
    BaseSubtotal int           `json:"base_subtotal"`
    Upgrades     []UpgradeLine `json:"upgrades"`
    Total        int           `json:"total"`
}

// Quote returns the full price breakdown.  Upgrades lists only seats with a
// non-zero surcharge, in selection order.
func Quote(base int, sel Selection) PriceQuote {
    if base < 0 {
        base = 0
    }
    charged := sel.Len()
    if charged < 1 {
        charged = 1
    }
    q := PriceQuote{
        BasePrice:    base,
        ChargedSeats: charged,
        BaseSubtotal: base * charged,
        Upgrades:     []UpgradeLine{},
    }
    q.Total = q.BaseSubtotal
    for _, s := range sel.seats {
        if s.UpgradePrice <= 0 {
            continue
        }
        q.Upgrades = append(q.Upgrades, UpgradeLine{SeatID: s.ID, Class: s.Class, Amount: s.UpgradePrice})
        q.Total += s.UpgradePrice
    }
    return q
}
