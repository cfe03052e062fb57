// Package selection tracks how many tickets of each tier a customer wants
// for one concert and derives the order totals from it.
package selection

import (
	"errors"
	"fmt"

	"github.com/iliyamo/concert-ticketing/internal/model"
)

// MaxPerTier caps the quantity of a single tier in one order.
const MaxPerTier = 4

var (
	// ErrUnknownTier is returned when a tier id does not belong to the
	// selection's concert.
	ErrUnknownTier = errors.New("ticket tier not found")
	// ErrEmptySelection is returned when a draft is requested before any
	// ticket has been selected.
	ErrEmptySelection = errors.New("no tickets selected")
)

// MaxSelectable returns the upper bound for a tier's quantity:
// min(MaxPerTier, available), never negative.
func MaxSelectable(t model.TicketTier) int {
	return max(0, min(MaxPerTier, t.Available))
}

// Selection maps tier ids to chosen quantities for a single concert.
// Only positive quantities are stored; keys keep the order in which the
// tiers were first selected.  A Selection is not safe for concurrent use.
type Selection struct {
	concert model.Concert
	order   []string
	qty     map[string]int
}

// New returns an empty selection for the concert.
func New(concert model.Concert) *Selection {
	return &Selection{concert: concert, qty: make(map[string]int)}
}

// Concert returns the concert the selection belongs to.
func (s *Selection) Concert() model.Concert {
	return s.concert
}

// SetQuantity applies delta to the tier's quantity and clamps the result to
// [0, MaxSelectable(tier)].  A result of zero removes the tier.  The delta
// itself is first bounded to ±MaxPerTier so the sum cannot overflow.
func (s *Selection) SetQuantity(tierID string, delta int) (int, error) {
	tier, ok := s.concert.Tier(tierID)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, tierID)
	}
	delta = max(-MaxPerTier, min(delta, MaxPerTier))
	next := max(0, min(s.qty[tierID]+delta, MaxSelectable(tier)))
	if next == 0 {
		s.remove(tierID)
		return 0, nil
	}
	if _, exists := s.qty[tierID]; !exists {
		s.order = append(s.order, tierID)
	}
	s.qty[tierID] = next
	return next, nil
}

func (s *Selection) remove(tierID string) {
	if _, exists := s.qty[tierID]; !exists {
		return
	}
	delete(s.qty, tierID)
	for i, id := range s.order {
		if id == tierID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Quantity returns the selected quantity for the tier, 0 when absent.
func (s *Selection) Quantity(tierID string) int {
	return s.qty[tierID]
}

// Len returns the number of tiers with a non-zero quantity.
func (s *Selection) Len() int {
	return len(s.order)
}

// TotalItems returns the sum of all quantities.
func (s *Selection) TotalItems() int {
	n := 0
	for _, id := range s.order {
		n += s.qty[id]
	}
	return n
}

// TotalPrice returns the sum of unit price × quantity.  Entries whose tier
// cannot be resolved contribute nothing.
func (s *Selection) TotalPrice() int64 {
	var total int64
	for _, id := range s.order {
		if tier, ok := s.concert.Tier(id); ok {
			total += tier.Price * int64(s.qty[id])
		}
	}
	return total
}

// ToOrderLines returns one line per selected tier in selection order.
func (s *Selection) ToOrderLines() []model.OrderLine {
	lines := make([]model.OrderLine, 0, len(s.order))
	for _, id := range s.order {
		tier, ok := s.concert.Tier(id)
		if !ok {
			continue
		}
		lines = append(lines, model.OrderLine{
			TierID:    id,
			Name:      tier.Name,
			UnitPrice: tier.Price,
			Quantity:  s.qty[id],
		})
	}
	return lines
}

// Draft snapshots the selection into an OrderDraft.  It fails with
// ErrEmptySelection when nothing is selected.
func (s *Selection) Draft() (model.OrderDraft, error) {
	if s.TotalItems() == 0 {
		return model.OrderDraft{}, ErrEmptySelection
	}
	return model.OrderDraft{
		Concert: s.concert.Summary(),
		Lines:   s.ToOrderLines(),
		Total:   s.TotalPrice(),
	}, nil
}
