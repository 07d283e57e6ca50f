package order

import (
	"errors"
	"fmt"

	"parcelquote/internal/pkg/errs"
)

// ErrInvalidTransition is matched by InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a transition the state machine does not allow.
type InvalidTransitionError struct {
	From   Status
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s an order that is %s", ErrInvalidTransition, e.Action, e.From)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Scheduled ──> Confirmed ──> PickedUp ──> InTransit ──> Delivered
//	    │             │
//	    └─────────────┴──> Cancelled
//
// Instant orders are created directly in Confirmed.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota

	// Scheduled waits for its pickup window to open.
	Scheduled

	// Confirmed is ready for a driver to collect.
	Confirmed

	// PickedUp has been collected from the pickup address.
	PickedUp

	// InTransit is on its way to the delivery address.
	InTransit

	// Delivered is final.
	Delivered

	// Cancelled is final.
	Cancelled
)

var statusNames = map[Status]string{
	Scheduled: "scheduled",
	Confirmed: "confirmed",
	PickedUp:  "picked_up",
	InTransit: "in_transit",
	Delivered: "delivered",
	Cancelled: "cancelled",
}

// ParseStatus is the inverse of String for valid statuses.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// IsTracking reports whether the order is between confirmation and delivery.
func (s Status) IsTracking() bool {
	return s == Confirmed || s == PickedUp || s == InTransit
}

// Confirm moves Scheduled to Confirmed.
func (s Status) Confirm() (Status, error) {
	if s != Scheduled {
		return Unknown, &InvalidTransitionError{From: s, Action: "confirm"}
	}
	return Confirmed, nil
}

// Advance moves a tracking status one step towards Delivered.
//
// Example:
//
//	next, err := order.Confirmed.Advance() // PickedUp
func (s Status) Advance() (Status, error) {
	switch s { //nolint:exhaustive // remaining statuses cannot advance
	case Confirmed:
		return PickedUp, nil
	case PickedUp:
		return InTransit, nil
	case InTransit:
		return Delivered, nil
	}
	return Unknown, &InvalidTransitionError{From: s, Action: "advance"}
}

// Cancel moves Scheduled or Confirmed to Cancelled.
func (s Status) Cancel() (Status, error) {
	if s != Scheduled && s != Confirmed {
		return Unknown, &InvalidTransitionError{From: s, Action: "cancel"}
	}
	return Cancelled, nil
}
