// Package checkout implements the three-step checkout: contact form,
// simulated QRIS payment and order confirmation.
package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/concert-ticketing/internal/model"
)

// OrderPrefix starts every generated order number.
const OrderPrefix = "TKS"

// orderDigits is how many trailing digits of the millisecond timestamp
// follow OrderPrefix.
const orderDigits = 100_000_000

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces time.Now as the source of the order timestamp.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// Machine drives a single checkout.  It is built from an OrderDraft and
// moves strictly FORM → PAYMENT → SUCCESS, with PAYMENT → FORM allowed for
// corrections.  A Machine is not safe for concurrent use.
type Machine struct {
	draft   model.OrderDraft
	state   State
	contact model.ContactInfo
	order   *model.CompletedOrder
	now     func() time.Time
}

// New validates the draft and returns a machine in StateForm.  A nil or
// malformed draft yields ErrMissingOrderContext.
func New(draft *model.OrderDraft, opts ...Option) (*Machine, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	d := *draft
	d.Lines = append([]model.OrderLine(nil), draft.Lines...)
	m := &Machine{draft: d, state: StateForm, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func validateDraft(d *model.OrderDraft) error {
	if d == nil {
		return ErrMissingOrderContext
	}
	if d.Concert.ID == "" {
		return fmt.Errorf("%w: concert missing", ErrMissingOrderContext)
	}
	if len(d.Lines) == 0 {
		return fmt.Errorf("%w: no ticket lines", ErrMissingOrderContext)
	}
	var sum int64
	for _, l := range d.Lines {
		if l.Quantity <= 0 || l.UnitPrice < 0 {
			return fmt.Errorf("%w: invalid line %q", ErrMissingOrderContext, l.TierID)
		}
		sum += l.Subtotal()
	}
	if sum != d.Total {
		return fmt.Errorf("%w: total %d does not match lines (%d)", ErrMissingOrderContext, d.Total, sum)
	}
	return nil
}

// State returns the active step.
func (m *Machine) State() State { return m.state }

// Draft returns a copy of the order being checked out.
func (m *Machine) Draft() model.OrderDraft {
	d := m.draft
	d.Lines = append([]model.OrderLine(nil), m.draft.Lines...)
	return d
}

// Contact returns the last accepted contact details (zero before the first
// successful submit).
func (m *Machine) Contact() model.ContactInfo { return m.contact }

// Order returns the completed order once the machine reached StateSuccess.
func (m *Machine) Order() (model.CompletedOrder, bool) {
	if m.order == nil {
		return model.CompletedOrder{}, false
	}
	return *m.order, true
}

// Steps returns the progress indicator for the active state.
func (m *Machine) Steps() []Step { return StepsFor(m.state) }

// SubmitContact stores the contact details and moves to StatePayment.  Any
// field that is empty after trimming keeps the machine in StateForm and
// returns an *IncompleteContactError.
func (m *Machine) SubmitContact(info model.ContactInfo) error {
	if !CanTransition(m.state, StatePayment) {
		return invalidTransition("submit contact", m.state)
	}
	info = model.ContactInfo{
		Name:  strings.TrimSpace(info.Name),
		Email: strings.TrimSpace(info.Email),
		Phone: strings.TrimSpace(info.Phone),
	}
	var missing []string
	if info.Name == "" {
		missing = append(missing, "name")
	}
	if info.Email == "" {
		missing = append(missing, "email")
	}
	if info.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &IncompleteContactError{Missing: missing}
	}
	m.contact = info
	m.state = StatePayment
	return nil
}

// EditContact returns from StatePayment to StateForm keeping the contact
// details for pre-filling.
func (m *Machine) EditContact() error {
	if !CanTransition(m.state, StateForm) {
		return invalidTransition("edit contact", m.state)
	}
	m.state = StateForm
	return nil
}

// ConfirmPayment completes the order.  The payment is simulated, so the
// transition is unconditional from StatePayment.
func (m *Machine) ConfirmPayment() (model.CompletedOrder, error) {
	if !CanTransition(m.state, StateSuccess) {
		return model.CompletedOrder{}, invalidTransition("confirm payment", m.state)
	}
	at := m.now()
	m.order = &model.CompletedOrder{
		OrderNumber: OrderNumber(at),
		Contact:     m.contact,
		Draft:       m.Draft(),
		ConfirmedAt: at.UTC(),
	}
	m.state = StateSuccess
	return *m.order, nil
}

// OrderNumber formats OrderPrefix followed by the last eight decimal digits
// of t in Unix milliseconds.  Orders confirmed in the same millisecond get
// the same number.
func OrderNumber(t time.Time) string {
	ms := t.UnixMilli() % orderDigits
	if ms < 0 {
		ms = -ms
	}
	return fmt.Sprintf("%s%08d", OrderPrefix, ms)
}
