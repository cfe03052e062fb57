package handler

import (
    "context"
    "fmt"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/concert-ticketing/internal/checkout"
    "github.com/iliyamo/concert-ticketing/internal/format"
    "github.com/iliyamo/concert-ticketing/internal/middleware"
    "github.com/iliyamo/concert-ticketing/internal/model"
    "github.com/iliyamo/concert-ticketing/internal/queue"
)

// publishTimeout bounds the order.completed publish done after a payment
// confirmation.
const publishTimeout = 5 * time.Second

// DraftView is the order summary shown on every checkout step.
type DraftView struct {
    Concert      model.ConcertSummary `json:"concert"`
    DateDisplay  string               `json:"date_display"`
    Lines        []LineView           `json:"tickets"`
    TotalItems   int                  `json:"total_items"`
    Total        int64                `json:"total"`
    TotalDisplay string               `json:"total_display"`
}

// CompletedView is the confirmation shown on the success step.
type CompletedView struct {
    OrderNumber string    `json:"order_number"`
    ConfirmedAt time.Time `json:"confirmed_at"`
    Message     string    `json:"message"`
}

// CheckoutView is the state of one checkout.  Payment is only set in
// PAYMENT and Completed only in SUCCESS.
type CheckoutView struct {
    ID        string             `json:"id"`
    State     checkout.State     `json:"state"`
    Steps     []checkout.Step    `json:"steps"`
    Order     DraftView          `json:"order"`
    Contact   *model.ContactInfo `json:"contact,omitempty"`
    Payment   *PaymentInfo       `json:"payment,omitempty"`
    Completed *CompletedView     `json:"completed,omitempty"`
}

func (h *StorefrontHandler) newCheckoutView(id string, m *checkout.Machine) CheckoutView {
    d := m.Draft()
    v := CheckoutView{
        ID:    id,
        State: m.State(),
        Steps: m.Steps(),
        Order: DraftView{
            Concert:      d.Concert,
            DateDisplay:  format.LongDateOr(d.Concert.Date),
            Lines:        newLineViews(d.Lines),
            TotalItems:   d.TotalItems(),
            Total:        d.Total,
            TotalDisplay: format.Rupiah(d.Total),
        },
    }
    if contact := m.Contact(); contact != (model.ContactInfo{}) {
        v.Contact = &contact
    }
    switch m.State() {
    case checkout.StatePayment:
        p := h.Payment
        v.Payment = &p
    case checkout.StateSuccess:
        if o, ok := m.Order(); ok {
            v.Completed = &CompletedView{
                OrderNumber: o.OrderNumber,
                ConfirmedAt: o.ConfirmedAt,
                Message:     fmt.Sprintf("E-ticket telah dikirim ke %s", o.Contact.Email),
            }
        }
    }
    return v
}

// StartCheckout handles POST /v1/checkouts.  The order draft arrives in
// the Bearer order token issued by ProceedToCheckout.  A missing, invalid,
// expired or already used token is answered with 400 "order data not
// found"; the client can only return to the catalog.
func (h *StorefrontHandler) StartCheckout(c echo.Context) error {
    claims := middleware.OrderClaims(c)
    if claims == nil {
        return respondError(c, checkout.ErrMissingOrderContext)
    }
    ttl := time.Until(claims.ExpiresAt.Time) + time.Minute
    fresh, err := h.Ledger.Claim(c.Request().Context(), "order-token:"+claims.ID, ttl)
    if err != nil {
        return respondError(c, err)
    }
    if !fresh {
        return respondError(c, fmt.Errorf("%w: order token already used", checkout.ErrMissingOrderContext))
    }
    var opts []checkout.Option
    if h.Clock != nil {
        opts = append(opts, checkout.WithClock(h.Clock))
    }
    m, err := checkout.New(&claims.Draft, opts...)
    if err != nil {
        return respondError(c, err)
    }
    id, err := h.Checkouts.Put(m)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, h.newCheckoutView(id, m))
}

// GetCheckout handles GET /v1/checkouts/:id.
func (h *StorefrontHandler) GetCheckout(c echo.Context) error {
    return h.withCheckout(c, http.StatusOK, func(*checkout.Machine) error { return nil })
}

// SubmitContact handles POST /v1/checkouts/:id/contact with a body of
// {"name", "email", "phone"}.  Incomplete details answer 422 and leave the
// checkout on the form step.
func (h *StorefrontHandler) SubmitContact(c echo.Context) error {
    var info model.ContactInfo
    if err := c.Bind(&info); err != nil {
        return errorJSON(c, http.StatusBadRequest, "invalid_request", "invalid request body")
    }
    return h.withCheckout(c, http.StatusOK, func(m *checkout.Machine) error {
        return m.SubmitContact(info)
    })
}

// EditContact handles POST /v1/checkouts/:id/edit (back from payment to
// the form, details kept).
func (h *StorefrontHandler) EditContact(c echo.Context) error {
    return h.withCheckout(c, http.StatusOK, func(m *checkout.Machine) error {
        return m.EditContact()
    })
}

// ConfirmPayment handles POST /v1/checkouts/:id/confirm.  The payment is
// simulated; the order is completed and, when a publisher is configured,
// an order.completed event is sent in the background.  The response does
// not wait for the broker and publish failures are logged only.
func (h *StorefrontHandler) ConfirmPayment(c echo.Context) error {
    var order model.CompletedOrder
    err := h.withCheckout(c, http.StatusOK, func(m *checkout.Machine) error {
        o, err := m.ConfirmPayment()
        order = o
        return err
    })
    if err == nil && order.OrderNumber != "" && h.Publisher != nil {
        go h.publish(order)
    }
    return err
}

// publish sends the order.completed event.  It runs detached from the
// request, bounded by publishTimeout.
func (h *StorefrontHandler) publish(order model.CompletedOrder) {
    ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
    defer cancel()
    if err := h.Publisher.PublishOrderCompleted(ctx, queue.NewOrderCompletedEvent(order)); err != nil {
        log.Printf("checkout: order %s not published: %v", order.OrderNumber, err)
    }
}

// CancelCheckout handles DELETE /v1/checkouts/:id ("return to start").
// All checkout state is discarded.
func (h *StorefrontHandler) CancelCheckout(c echo.Context) error {
    if !h.Checkouts.Delete(c.Param("id")) {
        return errorJSON(c, http.StatusNotFound, "session_not_found", "session not found or expired")
    }
    return c.NoContent(http.StatusNoContent)
}

// withCheckout runs fn on the checkout addressed by :id and writes its view
// with status on success.  The error returned by fn decides the response
// otherwise; the view is not written then.
func (h *StorefrontHandler) withCheckout(c echo.Context, status int, fn func(*checkout.Machine) error) error {
    id := c.Param("id")
    var view CheckoutView
    err := h.Checkouts.With(id, func(m *checkout.Machine) error {
        if err := fn(m); err != nil {
            return err
        }
        view = h.newCheckoutView(id, m)
        return nil
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(status, view)
}
