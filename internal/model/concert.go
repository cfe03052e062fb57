package model

// Concert is a read-only catalog entry.  It carries everything the
// storefront shows on a detail page together with the ordered list of
// ticket tiers that can be selected for it.
//
// Fields:
//  ID          – catalog identifier (string, unique across the catalog).
//  Title       – headline shown on cards and detail pages.
//  Artist      – performing artist.
//  Date        – calendar date of the concert, formatted YYYY-MM-DD.
//  Time        – local start time, formatted HH:MM.
//  Venue       – venue name.
//  City        – city the venue is in.
//  Image       – image reference (URL) for cards and the hero banner.
//  Description – free-form description.
//  Tiers       – ticket tiers in display order.
type Concert struct {
    ID          string       `json:"id"`          // concerts.id
    Title       string       `json:"title"`       // concerts.title
    Artist      string       `json:"artist"`      // concerts.artist
    Date        string       `json:"date"`        // concerts.date
    Time        string       `json:"time"`        // concerts.start_time
    Venue       string       `json:"venue"`       // concerts.venue
    City        string       `json:"city"`        // concerts.city
    Image       string       `json:"image"`       // concerts.image_url
    Description string       `json:"description"` // concerts.description
    Tiers       []TicketTier `json:"tickets"`     // ticket_tiers ordered by position
}

// TicketTier is a named ticket category of one concert.  Prices are
// integers in the smallest currency unit (rupiah).  Available is the
// remaining stock as published by the catalog; purchases never change it.
type TicketTier struct {
    ID          string `json:"id"`          // ticket_tiers.id
    Name        string `json:"name"`        // ticket_tiers.name
    Price       int64  `json:"price"`       // ticket_tiers.price
    Description string `json:"description"` // ticket_tiers.description
    Available   int    `json:"available"`   // ticket_tiers.available
}

// Tier returns the tier with the given id and whether it exists.
func (c *Concert) Tier(id string) (TicketTier, bool) {
    for _, t := range c.Tiers {
        if t.ID == id {
            return t, true
        }
    }
    return TicketTier{}, false
}

// LowestPrice returns the cheapest tier price, or 0 when the concert has
// no tiers.
func (c *Concert) LowestPrice() int64 {
    var lowest int64
    for i, t := range c.Tiers {
        if i == 0 || t.Price < lowest {
            lowest = t.Price
        }
    }
    return lowest
}

// Summary returns the subset of fields that travels with an order.
func (c *Concert) Summary() ConcertSummary {
    return ConcertSummary{
        ID:     c.ID,
        Title:  c.Title,
        Artist: c.Artist,
        Date:   c.Date,
        Time:   c.Time,
        Venue:  c.Venue,
        City:   c.City,
    }
}
