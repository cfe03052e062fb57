package middleware

// identity.go decides whom a storefront request is counted against.  There
// are no accounts: requests on an existing selection or checkout belong to
// that session, everything else to the client address.

import (
    "strings"

    "github.com/labstack/echo/v4"
)

// rateSubject returns the limiter subject of a request, e.g.
// "selection:<id>", "checkout:<id>" or "ip:<addr>".
func rateSubject(c echo.Context) string {
    if id := c.Param("id"); id != "" {
        switch {
        case strings.HasPrefix(c.Path(), "/v1/selections/"):
            return "selection:" + id
        case strings.HasPrefix(c.Path(), "/v1/checkouts/"):
            return "checkout:" + id
        }
    }
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    return "ip:" + ip
}
