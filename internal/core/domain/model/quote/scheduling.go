package quote

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

// SchedulingType is whether a delivery starts now or inside a requested window.
type SchedulingType string

const (
	Instant   SchedulingType = "instant"
	Scheduled SchedulingType = "scheduled"
)

// ErrSchedulingIsNotConstructed is returned for a Scheduling built without a constructor.
var ErrSchedulingIsNotConstructed = errs.NewValueIsRequiredError(
	"scheduling must be created via NewScheduling or InstantScheduling")

// ParseSchedulingType matches s case-insensitively. Empty input means Instant.
func ParseSchedulingType(s string) (SchedulingType, error) {
	switch SchedulingType(strings.ToLower(strings.TrimSpace(s))) {
	case "", Instant:
		return Instant, nil
	case Scheduled:
		return Scheduled, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("schedulingType", fmt.Errorf("unknown scheduling type %q", s))
}

// Scheduling is the validated scheduling choice of a request. For Instant the
// window is always empty.
type Scheduling struct { //nolint:recvcheck //using for validation
	kind      SchedulingType
	pickupAt  time.Time
	dropoffAt time.Time
	guard     guard.ConstructorGuard
}

// InstantScheduling returns the scheduling of an on-demand delivery.
func InstantScheduling() Scheduling {
	return Scheduling{kind: Instant, guard: guard.NewConstructorGuard()}
}

// NewScheduling validates the window against now. For Instant, pickupAt and
// dropoffAt are ignored and may be nil. For Scheduled both are required, pickup
// must not be before now and dropoff must be strictly after pickup.
//
// Example:
//
//	now := time.Now()
//	pickup := now.Add(2 * time.Hour)
//	dropoff := pickup.Add(3 * time.Hour)
//	s, err := quote.NewScheduling(quote.Scheduled, &pickup, &dropoff, now)
func NewScheduling(kind SchedulingType, pickupAt, dropoffAt *time.Time, now time.Time) (Scheduling, error) {
	switch kind {
	case Instant:
		return InstantScheduling(), nil
	case Scheduled:
	default:
		return Scheduling{}, errs.NewValueIsInvalidErrorWithCause("schedulingType", fmt.Errorf("unknown scheduling type %q", kind))
	}

	var requiredErr error
	if pickupAt == nil || pickupAt.IsZero() {
		requiredErr = errors.Join(requiredErr, errs.NewValueIsRequiredError("pickupAt"))
	}
	if dropoffAt == nil || dropoffAt.IsZero() {
		requiredErr = errors.Join(requiredErr, errs.NewValueIsRequiredError("dropoffAt"))
	}
	if requiredErr != nil {
		return Scheduling{}, requiredErr
	}

	var windowErr error
	if pickupAt.Before(now) {
		windowErr = errors.Join(windowErr, errs.NewValueIsInvalidErrorWithCause("pickupAt",
			fmt.Errorf("%s is in the past", pickupAt.UTC().Format(time.RFC3339))))
	}
	if !dropoffAt.After(*pickupAt) {
		windowErr = errors.Join(windowErr, errs.NewValueIsInvalidErrorWithCause("dropoffAt",
			fmt.Errorf("%s is not after pickup", dropoffAt.UTC().Format(time.RFC3339))))
	}
	if windowErr != nil {
		return Scheduling{}, windowErr
	}

	return Scheduling{
		kind:      Scheduled,
		pickupAt:  pickupAt.UTC(),
		dropoffAt: dropoffAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreScheduling rebuilds a stored scheduling without checking the window
// against the clock, since a persisted pickup time is allowed to be in the past.
func RestoreScheduling(kind SchedulingType, pickupAt, dropoffAt time.Time) Scheduling {
	if kind != Scheduled {
		return InstantScheduling()
	}
	return Scheduling{kind: Scheduled, pickupAt: pickupAt.UTC(), dropoffAt: dropoffAt.UTC(), guard: guard.NewConstructorGuard()}
}

// Validate returns ErrSchedulingIsNotConstructed for the zero value.
func (s Scheduling) Validate() error {
	return s.guard.Validate(ErrSchedulingIsNotConstructed)
}

// Type returns Instant or Scheduled.
func (s Scheduling) Type() SchedulingType {
	return s.kind
}

// IsScheduled reports whether a pickup window was requested.
func (s Scheduling) IsScheduled() bool {
	return s.kind == Scheduled
}

// PickupAt returns the start of the window, zero for Instant.
func (s Scheduling) PickupAt() time.Time {
	return s.pickupAt
}

// DropoffAt returns the end of the window, zero for Instant.
func (s Scheduling) DropoffAt() time.Time {
	return s.dropoffAt
}
