// Package funding models the wallet top-up lifecycle: amount and method
// entry, confirmation, asynchronous payment verification with a visual
// progress cycle, and terminal success/error states.
package funding

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateIdle State = iota
	StateConfirming
	StateVerifying
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfirming:
		return "confirming"
	case StateVerifying:
		return "verifying"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

type PaymentMethod string

const (
	MethodCard     PaymentMethod = "card"
	MethodTransfer PaymentMethod = "bank_transfer"
	MethodUSSD     PaymentMethod = "ussd"
)

var PaymentMethods = []PaymentMethod{MethodCard, MethodTransfer, MethodUSSD}

const (
	// ProgressInterval is the cadence of the visual progress ticker. The
	// ticker is purely cosmetic and independent of verification latency.
	ProgressInterval = 200 * time.Millisecond
	// ProgressStep is how much one tick advances the indicator.
	ProgressStep = 0.05
	// PollInterval is how often the verification collaborator is re-queried.
	PollInterval = 2 * time.Second
	// DismissDelay is how long a terminal state lingers after the progress
	// indicator completes before auto-closing.
	DismissDelay = 3 * time.Second
)

var (
	ErrNotIdle       = errors.New("funding session already in progress")
	ErrNotConfirming = errors.New("no confirmation pending")
	ErrNotVerifying  = errors.New("no verification in progress")
	ErrNotTerminal   = errors.New("funding session not in a terminal state")
)

// Machine is the funding verification state machine. It is driven entirely
// by UI and network-completion events; it owns no timers itself so the
// caller can cancel ticking cleanly on unmount.
type Machine struct {
	state     State
	amount    string
	method    PaymentMethod
	note      string
	reference string
	attempt   int
	progress  float64
	message   string
}

func NewMachine() *Machine {
	return &Machine{state: StateIdle, method: MethodCard}
}

func (m *Machine) State() State          { return m.state }
func (m *Machine) Amount() string        { return m.amount }
func (m *Machine) Method() PaymentMethod { return m.method }
func (m *Machine) Note() string          { return m.note }
func (m *Machine) Reference() string     { return m.reference }
func (m *Machine) Attempt() int          { return m.attempt }
func (m *Machine) Progress() float64     { return m.progress }
func (m *Machine) Message() string       { return m.message }

func (m *Machine) IsTerminal() bool {
	return m.state == StateSuccess || m.state == StateError
}

// BeginConfirm moves idle → confirming with the entered amount and method.
func (m *Machine) BeginConfirm(amount string, method PaymentMethod, note string) error {
	if m.state != StateIdle {
		return ErrNotIdle
	}

	m.state = StateConfirming
	m.amount = amount
	m.method = method
	m.note = note
	return nil
}

// Cancel abandons a pending confirmation, discarding entered amount and note.
func (m *Machine) Cancel() error {
	if m.state != StateConfirming {
		return ErrNotConfirming
	}

	m.state = StateIdle
	m.amount = ""
	m.note = ""
	m.message = ""
	return nil
}

// Confirm moves confirming → verifying with a fresh reference and a fresh
// progress cycle. The returned reference keys the verification requests.
func (m *Machine) Confirm() (string, error) {
	if m.state != StateConfirming {
		return "", ErrNotConfirming
	}

	m.state = StateVerifying
	m.reference = uuid.NewString()
	m.attempt++
	m.progress = 0
	m.message = ""
	return m.reference, nil
}

// Tick advances the visual progress indicator. It never transitions state;
// completion comes only from the verification result.
func (m *Machine) Tick() {
	if m.state != StateVerifying && !m.IsTerminal() {
		return
	}

	m.progress += ProgressStep
	if m.progress > 1.0 {
		m.progress = 1.0
	}
}

// Complete joins the real verification result onto the machine, entering a
// terminal state. The progress indicator snaps forward so the terminal
// screen can finish its cycle and auto-dismiss.
func (m *Machine) Complete(success bool, message string) error {
	if m.state != StateVerifying {
		return ErrNotVerifying
	}

	if success {
		m.state = StateSuccess
	} else {
		m.state = StateError
	}
	m.message = message
	return nil
}

// Retry starts a fresh verifying cycle from the error state: new reference,
// progress reset to zero, attempt count incremented. A prior cycle is never
// resumed.
func (m *Machine) Retry() (string, error) {
	if m.state != StateError {
		return "", ErrNotTerminal
	}

	m.state = StateVerifying
	m.reference = uuid.NewString()
	m.attempt++
	m.progress = 0
	m.message = ""
	return m.reference, nil
}

// Dismiss closes a terminal state back to idle, clearing session state.
func (m *Machine) Dismiss() error {
	if !m.IsTerminal() {
		return ErrNotTerminal
	}

	m.state = StateIdle
	m.amount = ""
	m.note = ""
	m.reference = ""
	m.progress = 0
	m.message = ""
	return nil
}

// ReadyToAutoDismiss reports whether a terminal state has finished its
// progress cycle and may close without user input.
func (m *Machine) ReadyToAutoDismiss() bool {
	return m.IsTerminal() && m.progress >= 1.0
}
