package service

// UltimateReadyStatus is the device status meaning the target voltage was reached.
const UltimateReadyStatus = "ULTIMATE_READY"

// ReadyState is the state of the ultimate-ready flag.
type ReadyState int

const (
	Idle ReadyState = iota
	Active
)

func (s ReadyState) String() string {
	if s == Active {
		return "ACTIVE"
	}
	return "IDLE"
}

// Transition reports which edge, if any, an observation caused.
type Transition int

const (
	NoTransition Transition = iota
	Activated               // Idle -> Active
	Cleared                 // Active -> Idle
)

// ReadyTracker is the two-state ready machine. It is not safe for concurrent
// use; DashboardService serializes access to it.
type ReadyTracker struct {
	state    ReadyState
	sentinel string
}

// NewReadyTracker starts Idle and watches for UltimateReadyStatus.
func NewReadyTracker() *ReadyTracker {
	return &ReadyTracker{state: Idle, sentinel: UltimateReadyStatus}
}

// Observe feeds the status of a successfully fetched snapshot.
func (r *ReadyTracker) Observe(status string) Transition {
	switch {
	case status == r.sentinel && r.state == Idle:
		r.state = Active
		return Activated
	case status != r.sentinel && r.state == Active:
		r.state = Idle
		return Cleared
	default:
		return NoTransition
	}
}

// Reset forces Idle, as after a failed fetch.
func (r *ReadyTracker) Reset() Transition {
	if r.state == Active {
		r.state = Idle
		return Cleared
	}
	return NoTransition
}

// State returns the current state.
func (r *ReadyTracker) State() ReadyState { return r.state }

// Active reports whether the flag is set.
func (r *ReadyTracker) Active() bool { return r.state == Active }
