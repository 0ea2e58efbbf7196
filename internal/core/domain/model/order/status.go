package order

import (
	"fmt"

	"orderhub/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the kitchen workflow and never skip or revisit states.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> Ready ──> Completed
//	   │            │             │           │
//	   ├──> Failed  └─────────────┴───────────┴──> Cancelled
//	   └──────────────────────────────────────────> Cancelled
//
// Completed, Cancelled, and Failed are terminal: no transition leaves them.
// Failed is reachable only from Pending (validation or payment failure
// before confirmation).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status after a submission passes validation.
	// The order awaits payment authorization (or confirmation for channels
	// that require none).
	Pending

	// Confirmed indicates payment was authorized, or the channel required
	// none (a dine-in tab opened without upfront payment).
	Confirmed

	// Preparing indicates a kitchen station acknowledged the order.
	Preparing

	// Ready indicates the kitchen marked the order complete and it awaits
	// hand-off.
	Ready

	// Completed indicates expo or the customer confirmed delivery.
	// Terminal.
	Completed

	// Cancelled indicates an actor with cancellation scope cancelled the
	// order; a reason is mandatory. Terminal.
	Cancelled

	// Failed indicates validation or payment failure before confirmation.
	// Terminal, reachable only from Pending.
	Failed
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
		Failed:    "failed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Completed: "completed",
		Cancelled: "cancelled",
		Failed:    "failed",
	}
}

// transitions is the authoritative adjacency table of the state machine.
// A status absent from the map is terminal.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Confirmed, Cancelled, Failed},
		Confirmed: {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Completed, Cancelled},
	}
}

// StatusFromString parses a wire name ("pending", "preparing", ...) into a
// Status. Returns an error for unrecognized names, including "unknown".
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a recognized order status", s))
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
// Returns "unknown" for invalid status values. Implements fmt.Stringer and
// is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no transition leaves this status.
// Terminal orders are immutable except for audit annotation.
func (s Status) IsTerminal() bool {
	_, hasExits := transitions()[s]
	return s.Validate() == nil && !hasExits
}

// CanTransitionTo reports whether the state machine permits moving from the
// receiver to the target status, without performing the transition.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo performs a transition, returning the new status.
//
// Returns an InvalidTransitionError naming the from/to pair if the move is
// not in the transition table, including any transition attempted on a
// terminal status. The receiver is never mutated; an error leaves the
// caller's state exactly as it was.
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(to) {
		return Unknown, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}
