package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-ticketing/internal/model"
)

var orderNumberPattern = regexp.MustCompile(`^TKS\d{8}$`)

func testDraft() *model.OrderDraft {
	return &model.OrderDraft{
		Concert: model.ConcertSummary{ID: "1", Title: "RAISA Live in Concert", Artist: "Raisa Andriana", Date: "2025-02-14", Time: "19:00"},
		Lines:   []model.OrderLine{{TierID: "t1", Name: "Festival", UnitPrice: 350000, Quantity: 3}},
		Total:   1050000,
	}
}

func validContact() model.ContactInfo {
	return model.ContactInfo{Name: "Budi", Email: "budi@example.com", Phone: "08123456789"}
}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestNewRejectsMissingOrMalformedDraft(t *testing.T) {
	cases := map[string]*model.OrderDraft{
		"nil":        nil,
		"no concert": {Lines: []model.OrderLine{{TierID: "t1", UnitPrice: 1, Quantity: 1}}, Total: 1},
		"no lines":   {Concert: model.ConcertSummary{ID: "1"}, Total: 0},
		"zero qty":   {Concert: model.ConcertSummary{ID: "1"}, Lines: []model.OrderLine{{TierID: "t1", UnitPrice: 1, Quantity: 0}}},
		"bad total":  {Concert: model.ConcertSummary{ID: "1"}, Lines: []model.OrderLine{{TierID: "t1", UnitPrice: 10, Quantity: 2}}, Total: 10},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := New(d)
			require.ErrorIs(t, err, ErrMissingOrderContext)
			assert.Nil(t, m)
		})
	}
}

func TestNewStartsInForm(t *testing.T) {
	m, err := New(testDraft())
	require.NoError(t, err)
	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, int64(1050000), m.Draft().Total)
	_, ok := m.Order()
	assert.False(t, ok)
}

func TestSubmitContactRequiresAllFields(t *testing.T) {
	cases := map[string]model.ContactInfo{
		"empty name":  {Name: "", Email: "a@b.com", Phone: "08123"},
		"blank email": {Name: "Budi", Email: "   ", Phone: "08123"},
		"no phone":    {Name: "Budi", Email: "a@b.com", Phone: "\t"},
		"all empty":   {},
	}
	for name, info := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := New(testDraft())
			require.NoError(t, err)

			err = m.SubmitContact(info)
			require.ErrorIs(t, err, ErrIncompleteContactInfo)
			var ice *IncompleteContactError
			require.ErrorAs(t, err, &ice)
			assert.NotEmpty(t, ice.Missing)
			assert.Equal(t, StateForm, m.State())
		})
	}
}

func TestSubmitContactReportsMissingFields(t *testing.T) {
	m, err := New(testDraft())
	require.NoError(t, err)
	err = m.SubmitContact(model.ContactInfo{Email: "a@b.com"})
	var ice *IncompleteContactError
	require.ErrorAs(t, err, &ice)
	assert.Equal(t, []string{"name", "phone"}, ice.Missing)
}

func TestHappyPath(t *testing.T) {
	at := time.UnixMilli(1739520000123)
	m, err := New(testDraft(), fixedClock(at))
	require.NoError(t, err)

	require.NoError(t, m.SubmitContact(model.ContactInfo{Name: " Budi ", Email: "budi@example.com", Phone: "08123"}))
	assert.Equal(t, StatePayment, m.State())
	assert.Equal(t, "Budi", m.Contact().Name)

	order, err := m.ConfirmPayment()
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, m.State())
	assert.Equal(t, "TKS20000123", order.OrderNumber)
	assert.Regexp(t, orderNumberPattern, order.OrderNumber)
	assert.Equal(t, "Budi", order.Contact.Name)
	assert.Equal(t, int64(1050000), order.Draft.Total)

	stored, ok := m.Order()
	require.True(t, ok)
	assert.Equal(t, order, stored)
}

func TestEditContactKeepsDetails(t *testing.T) {
	m, err := New(testDraft())
	require.NoError(t, err)
	require.NoError(t, m.SubmitContact(validContact()))

	require.NoError(t, m.EditContact())
	assert.Equal(t, StateForm, m.State())
	assert.Equal(t, validContact(), m.Contact())

	require.NoError(t, m.SubmitContact(model.ContactInfo{Name: "Budi S", Email: "b@example.com", Phone: "0811"}))
	assert.Equal(t, "Budi S", m.Contact().Name)
	assert.Equal(t, StatePayment, m.State())
}

func TestTransitionsOutsideTheirState(t *testing.T) {
	m, err := New(testDraft())
	require.NoError(t, err)

	_, err = m.ConfirmPayment()
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorIs(t, m.EditContact(), ErrInvalidTransition)
	assert.Equal(t, StateForm, m.State())

	require.NoError(t, m.SubmitContact(validContact()))
	require.ErrorIs(t, m.SubmitContact(validContact()), ErrInvalidTransition)
	assert.Equal(t, StatePayment, m.State())

	_, err = m.ConfirmPayment()
	require.NoError(t, err)

	require.ErrorIs(t, m.SubmitContact(validContact()), ErrInvalidTransition)
	require.ErrorIs(t, m.EditContact(), ErrInvalidTransition)
	_, err = m.ConfirmPayment()
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StateSuccess, m.State())
}

func TestDraftIsCopiedOnConstruction(t *testing.T) {
	d := testDraft()
	m, err := New(d)
	require.NoError(t, err)
	d.Lines[0].Quantity = 99
	assert.Equal(t, 3, m.Draft().Lines[0].Quantity)
}

func TestOrderNumber(t *testing.T) {
	assert.Equal(t, "TKS00000042", OrderNumber(time.UnixMilli(42)))
	assert.Equal(t, "TKS99999999", OrderNumber(time.UnixMilli(1_299_999_999)))
	assert.Regexp(t, orderNumberPattern, OrderNumber(time.Now()))
}

func TestSteps(t *testing.T) {
	steps := StepsFor(StatePayment)
	require.Len(t, steps, 3)
	assert.Equal(t, StepCompleted, steps[0].Status)
	assert.Equal(t, StepActive, steps[1].Status)
	assert.Equal(t, StepPending, steps[2].Status)
	assert.Equal(t, "Pembayaran", steps[1].Label)
	assert.True(t, StateSuccess.IsTerminal())
	assert.False(t, StatePayment.IsTerminal())
}
