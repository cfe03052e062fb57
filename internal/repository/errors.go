// Package repository defines error types that are reused across the
// catalog sources.  These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.
package repository

import "errors"

// ErrConcertNotFound is returned when a concert id does not resolve in
// the catalog.  Handlers should translate this into an HTTP 404 response.
var ErrConcertNotFound = errors.New("concert not found")
