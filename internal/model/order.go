package model

import "time"

// ConcertSummary is the part of a Concert copied into an order.
type ConcertSummary struct {
    ID     string `json:"id"`
    Title  string `json:"title"`
    Artist string `json:"artist"`
    Date   string `json:"date"`
    Time   string `json:"time"`
    Venue  string `json:"venue"`
    City   string `json:"city"`
}

// OrderLine is one selected tier in an order: the tier's name and unit
// price at the moment the order was drafted plus the chosen quantity.
type OrderLine struct {
    TierID    string `json:"ticket_id"`
    Name      string `json:"name"`
    UnitPrice int64  `json:"price"`
    Quantity  int    `json:"quantity"`
}

// Subtotal returns UnitPrice × Quantity.
func (l OrderLine) Subtotal() int64 {
    return l.UnitPrice * int64(l.Quantity)
}

// OrderDraft is the snapshot of a selection handed to checkout.  It is
// built once when the customer proceeds to checkout and is never mutated
// afterwards.
//
// Fields:
//  Concert – summary of the concert the tickets belong to.
//  Lines   – selected tiers in selection order.
//  Total   – sum of UnitPrice × Quantity over Lines.
type OrderDraft struct {
    Concert ConcertSummary `json:"concert"`
    Lines   []OrderLine    `json:"tickets"`
    Total   int64          `json:"total"`
}

// TotalItems returns the number of tickets in the draft.
func (d *OrderDraft) TotalItems() int {
    n := 0
    for _, l := range d.Lines {
        n += l.Quantity
    }
    return n
}

// ContactInfo holds the purchaser details collected on the form step.
type ContactInfo struct {
    Name  string `json:"name"`
    Email string `json:"email"`
    Phone string `json:"phone"`
}

// CompletedOrder is produced when the simulated payment is confirmed.  It
// only lives as long as the checkout session that produced it.
type CompletedOrder struct {
    OrderNumber string      `json:"order_number"`
    Contact     ContactInfo `json:"contact"`
    Draft       OrderDraft  `json:"order"`
    ConfirmedAt time.Time   `json:"confirmed_at"`
}
