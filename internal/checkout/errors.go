package checkout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingOrderContext is returned when a checkout is started without
	// a usable order draft.  The only recovery is returning to the catalog.
	ErrMissingOrderContext = errors.New("order data not found")
	// ErrIncompleteContactInfo matches *IncompleteContactError.
	ErrIncompleteContactInfo = errors.New("contact info incomplete")
	// ErrInvalidTransition is returned when an operation is not available in
	// the current state.  The state is left unchanged.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// IncompleteContactError lists the contact fields that were empty after
// trimming.
type IncompleteContactError struct {
	Missing []string
}

func (e *IncompleteContactError) Error() string {
	return fmt.Sprintf("%s: missing %s", ErrIncompleteContactInfo, strings.Join(e.Missing, ", "))
}

// Is makes errors.Is(err, ErrIncompleteContactInfo) hold.
func (e *IncompleteContactError) Is(target error) bool {
	return target == ErrIncompleteContactInfo
}

func invalidTransition(op string, from State) error {
	return fmt.Errorf("%w: %s not allowed in %s", ErrInvalidTransition, op, from)
}
