// Package queue defines message payloads exchanged over the message broker.
package queue

import (
    "time"

    "github.com/iliyamo/concert-ticketing/internal/model"
)

// OrderCompletedQueue is the durable queue order.completed events go to.
const OrderCompletedQueue = "order.completed"

// OrderCompletedEvent is published when a checkout reaches SUCCESS.  It
// contains enough information for downstream consumers to send the e-ticket
// without calling back into the storefront.
type OrderCompletedEvent struct {
    OrderNumber   string        `json:"order_number"`
    CustomerName  string        `json:"customer_name"`
    CustomerEmail string        `json:"customer_email"`
    CustomerPhone string        `json:"customer_phone"`
    ConcertID     string        `json:"concert_id"`
    ConcertTitle  string        `json:"concert_title"`
    Artist        string        `json:"artist"`
    Date          string        `json:"date"`
    Time          string        `json:"time"`
    Venue         string        `json:"venue"`
    City          string        `json:"city"`
    Tickets       []EventTicket `json:"tickets"`
    TotalItems    int           `json:"total_items"`
    Total         int64         `json:"total"`
    ConfirmedAt   string        `json:"confirmed_at"`
}

// EventTicket is one order line inside an OrderCompletedEvent.
type EventTicket struct {
    TierID    string `json:"ticket_id"`
    Name      string `json:"name"`
    UnitPrice int64  `json:"price"`
    Quantity  int    `json:"quantity"`
}

// NewOrderCompletedEvent flattens a completed order into an event.
func NewOrderCompletedEvent(o model.CompletedOrder) OrderCompletedEvent {
    tickets := make([]EventTicket, 0, len(o.Draft.Lines))
    for _, l := range o.Draft.Lines {
        tickets = append(tickets, EventTicket{TierID: l.TierID, Name: l.Name, UnitPrice: l.UnitPrice, Quantity: l.Quantity})
    }
    c := o.Draft.Concert
    return OrderCompletedEvent{
        OrderNumber:   o.OrderNumber,
        CustomerName:  o.Contact.Name,
        CustomerEmail: o.Contact.Email,
        CustomerPhone: o.Contact.Phone,
        ConcertID:     c.ID,
        ConcertTitle:  c.Title,
        Artist:        c.Artist,
        Date:          c.Date,
        Time:          c.Time,
        Venue:         c.Venue,
        City:          c.City,
        Tickets:       tickets,
        TotalItems:    o.Draft.TotalItems(),
        Total:         o.Draft.Total,
        ConfirmedAt:   o.ConfirmedAt.UTC().Format(time.RFC3339),
    }
}
