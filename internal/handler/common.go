// Package handler exposes the storefront's HTTP handlers: catalog browsing,
// ticket selection and the three-step checkout.
package handler

import (
    "context"
    "errors"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/concert-ticketing/internal/checkout"
    "github.com/iliyamo/concert-ticketing/internal/model"
    "github.com/iliyamo/concert-ticketing/internal/queue"
    "github.com/iliyamo/concert-ticketing/internal/repository"
    "github.com/iliyamo/concert-ticketing/internal/selection"
    "github.com/iliyamo/concert-ticketing/internal/session"
)

// ConcertSource is the read-only catalog lookup the handlers need.  Both
// repository.StaticConcertRepo and repository.ConcertRepo satisfy it.
type ConcertSource interface {
    ListAll(ctx context.Context) ([]model.Concert, error)
    GetByID(ctx context.Context, id string) (*model.Concert, error)
}

// OrderPublisher forwards completed orders to the notification queue.
type OrderPublisher interface {
    PublishOrderCompleted(ctx context.Context, event queue.OrderCompletedEvent) error
}

// errorJSON writes the error body used by every storefront endpoint.
func errorJSON(c echo.Context, status int, code, msg string) error {
    return c.JSON(status, echo.Map{"error": msg, "code": code})
}

// respondError maps domain errors to HTTP responses.  Unknown errors are
// logged and reported as 500 without details.
func respondError(c echo.Context, err error) error {
    var ice *checkout.IncompleteContactError
    switch {
    case errors.As(err, &ice):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":   "Mohon lengkapi semua data",
            "code":    "incomplete_contact_info",
            "missing": ice.Missing,
        })
    case errors.Is(err, checkout.ErrMissingOrderContext):
        return errorJSON(c, http.StatusBadRequest, "missing_order_context", "order data not found")
    case errors.Is(err, checkout.ErrInvalidTransition):
        return errorJSON(c, http.StatusConflict, "invalid_transition", err.Error())
    case errors.Is(err, repository.ErrConcertNotFound):
        return errorJSON(c, http.StatusNotFound, "concert_not_found", "concert not found")
    case errors.Is(err, selection.ErrUnknownTier):
        return errorJSON(c, http.StatusNotFound, "tier_not_found", "ticket tier not found")
    case errors.Is(err, selection.ErrEmptySelection):
        return errorJSON(c, http.StatusBadRequest, "empty_selection", "select at least one ticket")
    case errors.Is(err, session.ErrNotFound):
        return errorJSON(c, http.StatusNotFound, "session_not_found", "session not found or expired")
    }
    log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
    return errorJSON(c, http.StatusInternalServerError, "internal_error", "internal error")
}
