package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/concert-ticketing/internal/format"
    "github.com/iliyamo/concert-ticketing/internal/model"
    "github.com/iliyamo/concert-ticketing/internal/selection"
    "github.com/iliyamo/concert-ticketing/internal/utils"
)

// LineView is an order line with its subtotal.
type LineView struct {
    TierID          string `json:"ticket_id"`
    Name            string `json:"name"`
    UnitPrice       int64  `json:"price"`
    Quantity        int    `json:"quantity"`
    Subtotal        int64  `json:"subtotal"`
    SubtotalDisplay string `json:"subtotal_display"`
}

func newLineViews(lines []model.OrderLine) []LineView {
    out := make([]LineView, 0, len(lines))
    for _, l := range lines {
        out = append(out, LineView{
            TierID:          l.TierID,
            Name:            l.Name,
            UnitPrice:       l.UnitPrice,
            Quantity:        l.Quantity,
            Subtotal:        l.Subtotal(),
            SubtotalDisplay: format.Rupiah(l.Subtotal()),
        })
    }
    return out
}

// TierQuantity reports the current quantity of every tier of the concert.
type TierQuantity struct {
    TierID        string `json:"ticket_id"`
    Quantity      int    `json:"quantity"`
    MaxSelectable int    `json:"max_selectable"`
}

// SelectionView is the order summary next to the ticket list.
type SelectionView struct {
    ID                string               `json:"id"`
    Concert           model.ConcertSummary `json:"concert"`
    Tiers             []TierQuantity       `json:"tickets"`
    Lines             []LineView           `json:"lines"`
    TotalItems        int                  `json:"total_items"`
    TotalPrice        int64                `json:"total_price"`
    TotalPriceDisplay string               `json:"total_price_display"`
    CanCheckout       bool                 `json:"can_checkout"`
}

func newSelectionView(id string, s *selection.Selection) SelectionView {
    concert := s.Concert()
    tiers := make([]TierQuantity, 0, len(concert.Tiers))
    for _, t := range concert.Tiers {
        tiers = append(tiers, TierQuantity{TierID: t.ID, Quantity: s.Quantity(t.ID), MaxSelectable: selection.MaxSelectable(t)})
    }
    return SelectionView{
        ID:                id,
        Concert:           concert.Summary(),
        Tiers:             tiers,
        Lines:             newLineViews(s.ToOrderLines()),
        TotalItems:        s.TotalItems(),
        TotalPrice:        s.TotalPrice(),
        TotalPriceDisplay: format.Rupiah(s.TotalPrice()),
        CanCheckout:       s.TotalItems() > 0,
    }
}

// CreateSelection handles POST /v1/concerts/:id/selections.  It opens an
// empty selection for the concert and returns 201 with its view.
func (h *StorefrontHandler) CreateSelection(c echo.Context) error {
    concert, err := h.Catalog.GetByID(c.Request().Context(), c.Param("id"))
    if err != nil {
        return respondError(c, err)
    }
    sel := selection.New(*concert)
    id, err := h.Selections.Put(sel)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, newSelectionView(id, sel))
}

// GetSelection handles GET /v1/selections/:id.
func (h *StorefrontHandler) GetSelection(c echo.Context) error {
    id := c.Param("id")
    var view SelectionView
    err := h.Selections.With(id, func(s *selection.Selection) error {
        view = newSelectionView(id, s)
        return nil
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// UpdateSelection handles PATCH /v1/selections/:id with a body of
// {"ticket_id": "...", "delta": ±n}.  The quantity is clamped, never
// rejected.
func (h *StorefrontHandler) UpdateSelection(c echo.Context) error {
    var body struct {
        TierID string `json:"ticket_id"`
        Delta  int    `json:"delta"`
    }
    if err := c.Bind(&body); err != nil || body.TierID == "" {
        return errorJSON(c, http.StatusBadRequest, "invalid_request", "ticket_id and delta are required")
    }
    id := c.Param("id")
    var view SelectionView
    err := h.Selections.With(id, func(s *selection.Selection) error {
        if _, err := s.SetQuantity(body.TierID, body.Delta); err != nil {
            return err
        }
        view = newSelectionView(id, s)
        return nil
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, view)
}

// DeleteSelection handles DELETE /v1/selections/:id (navigating away).
func (h *StorefrontHandler) DeleteSelection(c echo.Context) error {
    if !h.Selections.Delete(c.Param("id")) {
        return errorJSON(c, http.StatusNotFound, "session_not_found", "session not found or expired")
    }
    return c.NoContent(http.StatusNoContent)
}

// ProceedToCheckout handles POST /v1/selections/:id/checkout.  It snapshots
// the selection into an order draft, discards the selection and returns a
// single-use order token for POST /v1/checkouts.  An empty selection is
// rejected and kept.  Draft, token and removal happen under the selection's
// lock, so one selection yields at most one order token.
func (h *StorefrontHandler) ProceedToCheckout(c echo.Context) error {
    var (
        draft model.OrderDraft
        tok   utils.OrderToken
    )
    err := h.Selections.TakeIf(c.Param("id"), func(s *selection.Selection) error {
        d, err := s.Draft()
        if err != nil {
            return err
        }
        t, err := utils.NewOrderToken(h.TokenSecret, d, h.TokenTTL)
        if err != nil {
            return err
        }
        draft, tok = d, t
        return nil
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "order_token":   tok.Token,
        "expires_at":    tok.Exp.Format(time.RFC3339),
        "total_items":   draft.TotalItems(),
        "total":         draft.Total,
        "total_display": format.Rupiah(draft.Total),
    })
}
