package checkout

// State is the active step of a checkout.
type State string

const (
	// StateForm collects the purchaser's contact details.
	StateForm State = "FORM"
	// StatePayment shows the (simulated) QRIS payment instructions.
	StatePayment State = "PAYMENT"
	// StateSuccess holds the completed order.  Terminal.
	StateSuccess State = "SUCCESS"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsTerminal reports whether no transition leaves the state.
func (s State) IsTerminal() bool {
	return s == StateSuccess
}

// transitions lists the states reachable from each state.
var transitions = map[State][]State{
	StateForm:    {StatePayment},
	StatePayment: {StateForm, StateSuccess},
	StateSuccess: {},
}

// CanTransition reports whether moving from one state to another is allowed.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StepStatus describes how a progress step relates to the active state.
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepActive    StepStatus = "active"
	StepPending   StepStatus = "pending"
)

// Step is one entry of the checkout progress indicator.
type Step struct {
	State  State      `json:"state"`
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
}

var stepOrder = []struct {
	state State
	label string
}{
	{StateForm, "Data Diri"},
	{StatePayment, "Pembayaran"},
	{StateSuccess, "Selesai"},
}

func stepIndex(s State) int {
	for i, st := range stepOrder {
		if st.state == s {
			return i
		}
	}
	return 0
}

// StepsFor returns the progress steps with their status for the given
// active state.
func StepsFor(active State) []Step {
	cur := stepIndex(active)
	out := make([]Step, 0, len(stepOrder))
	for i, st := range stepOrder {
		status := StepPending
		switch {
		case i < cur:
			status = StepCompleted
		case i == cur:
			status = StepActive
		}
		out = append(out, Step{State: st.state, Label: st.label, Status: status})
	}
	return out
}
