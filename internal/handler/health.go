package handler // declare the package name; contains HTTP handlers

import (
    "net/http" // net/http provides status codes and response helpers

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is a simple liveness endpoint used by load balancers and
// monitoring systems.  It returns a plain text "ok" with HTTP 200.
func Health(c echo.Context) error {
    return c.String(http.StatusOK, "ok")
}

// Ready reports whether the catalog can be read.  With the static catalog
// it always succeeds; with the MySQL catalog it fails while the database is
// unreachable.
func (h *ConcertHandler) Ready(c echo.Context) error {
    if _, err := h.Catalog.ListAll(c.Request().Context()); err != nil {
        return errorJSON(c, http.StatusServiceUnavailable, "catalog_unavailable", "catalog unavailable")
    }
    return c.String(http.StatusOK, "ready")
}
