package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "log"     // report rejected tokens
    "strings" // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/concert-ticketing/internal/utils"
)

// Context keys set by OrderToken.
const (
    OrderClaimsKey = "order_claims"
    OrderTokenErrKey = "order_token_error"
)

// OrderToken returns an Echo middleware that reads a Bearer order token,
// verifies it with secret and stores its claims in the context under
// OrderClaimsKey.  It never rejects a request itself: a missing or invalid
// token simply leaves the claims unset (and the parse error under
// OrderTokenErrKey) so the checkout handler can answer with its own
// "order data not found" response.
func OrderToken(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return next(c)
            }
            raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
            claims, err := utils.ParseOrderToken(secret, raw)
            if err != nil {
                log.Printf("order-token: rejected token: %v", err)
                c.Set(OrderTokenErrKey, err)
                return next(c)
            }
            c.Set(OrderClaimsKey, claims)
            return next(c)
        }
    }
}

// OrderClaims returns the claims stored by OrderToken, or nil.
func OrderClaims(c echo.Context) *utils.OrderClaims {
    claims, _ := c.Get(OrderClaimsKey).(*utils.OrderClaims)
    return claims
}
