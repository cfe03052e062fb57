// This file defines handlers for the public catalog.  These routes let
// anyone browse concerts and inspect ticket tiers; responses carry display
// strings (rupiah amounts, Indonesian long dates) next to the raw values.

package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/concert-ticketing/internal/format"
    "github.com/iliyamo/concert-ticketing/internal/model"
    "github.com/iliyamo/concert-ticketing/internal/selection"
)

// lowStockThreshold is the availability under which a tier is flagged.
const lowStockThreshold = 50

// upcomingCount is how many concerts follow the featured one on the home page.
const upcomingCount = 6

// ConcertHandler serves the catalog.
type ConcertHandler struct {
    Catalog ConcertSource // provides access to concert data
}

// NewConcertHandler constructs a ConcertHandler.  The catalog must be non-nil.
func NewConcertHandler(catalog ConcertSource) *ConcertHandler {
    if catalog == nil {
        panic("nil catalog passed to NewConcertHandler")
    }
    return &ConcertHandler{Catalog: catalog}
}

// ConcertCard is a concert as shown in lists.
type ConcertCard struct {
    ID               string `json:"id"`
    Title            string `json:"title"`
    Artist           string `json:"artist"`
    Date             string `json:"date"`
    DateDisplay      string `json:"date_display"`
    Time             string `json:"time"`
    Venue            string `json:"venue"`
    City             string `json:"city"`
    Image            string `json:"image"`
    PriceFrom        int64  `json:"price_from"`
    PriceFromDisplay string `json:"price_from_display"`
}

// TierView is a ticket tier on the detail page.
type TierView struct {
    ID            string `json:"id"`
    Name          string `json:"name"`
    Description   string `json:"description"`
    Price         int64  `json:"price"`
    PriceDisplay  string `json:"price_display"`
    Available     int    `json:"available"`
    MaxSelectable int    `json:"max_selectable"`
    LowStock      bool   `json:"low_stock"`
}

// ConcertDetail is the full concert page.
type ConcertDetail struct {
    ConcertCard
    Description string     `json:"description"`
    Tiers       []TierView `json:"tickets"`
}

func newConcertCard(c model.Concert) ConcertCard {
    from := c.LowestPrice()
    return ConcertCard{
        ID:               c.ID,
        Title:            c.Title,
        Artist:           c.Artist,
        Date:             c.Date,
        DateDisplay:      format.LongDateOr(c.Date),
        Time:             c.Time,
        Venue:            c.Venue,
        City:             c.City,
        Image:            c.Image,
        PriceFrom:        from,
        PriceFromDisplay: format.Rupiah(from),
    }
}

func newTierView(t model.TicketTier) TierView {
    return TierView{
        ID:            t.ID,
        Name:          t.Name,
        Description:   t.Description,
        Price:         t.Price,
        PriceDisplay:  format.Rupiah(t.Price),
        Available:     t.Available,
        MaxSelectable: selection.MaxSelectable(t),
        LowStock:      t.Available < lowStockThreshold,
    }
}

func newConcertDetail(c model.Concert) ConcertDetail {
    tiers := make([]TierView, 0, len(c.Tiers))
    for _, t := range c.Tiers {
        tiers = append(tiers, newTierView(t))
    }
    return ConcertDetail{ConcertCard: newConcertCard(c), Description: c.Description, Tiers: tiers}
}

// ListConcerts handles GET /v1/concerts.  Response JSON contains an
// "items" array of ConcertCard in catalog order.
func (h *ConcertHandler) ListConcerts(c echo.Context) error {
    concerts, err := h.Catalog.ListAll(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    out := make([]ConcertCard, 0, len(concerts))
    for _, con := range concerts {
        out = append(out, newConcertCard(con))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// Featured handles GET /v1/concerts/featured: the first catalog entry as
// the featured concert and up to six following ones as upcoming.
func (h *ConcertHandler) Featured(c echo.Context) error {
    concerts, err := h.Catalog.ListAll(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    resp := struct {
        Featured *ConcertCard  `json:"featured"`
        Upcoming []ConcertCard `json:"upcoming"`
    }{Upcoming: []ConcertCard{}}
    if len(concerts) > 0 {
        card := newConcertCard(concerts[0])
        resp.Featured = &card
        for _, con := range concerts[1:min(len(concerts), 1+upcomingCount)] {
            resp.Upcoming = append(resp.Upcoming, newConcertCard(con))
        }
    }
    return c.JSON(http.StatusOK, resp)
}

// GetConcert handles GET /v1/concerts/:id.  Unknown ids yield 404
// "concert not found".
func (h *ConcertHandler) GetConcert(c echo.Context) error {
    con, err := h.Catalog.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, newConcertDetail(*con))
}
