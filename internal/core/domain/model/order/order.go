package order

import (
	"errors"
	"strings"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/quote"
	"parcelquote/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder constructor")

// Order is a paid delivery. It is the aggregate root for everything that
// happens after checkout.
//
// Order follows these invariants:
//   - Has a valid id, owner and quote request
//   - Carries the price breakdown it was charged for and the charge id
//   - The timeline starts with the initial status and grows by one event per transition
//   - The last timeline event always matches Status()
type Order struct {
	id        kernel.UUID
	accountID kernel.UUID
	request   quote.Request
	price     quote.Breakdown
	chargeID  string
	status    Status
	timeline  []Event
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates an order at checkout time now. A scheduled request starts
// in Scheduled, an instant one in Confirmed.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), session.AccountID(), req, breakdown, charge.ID, clock.Now())
func NewOrder(
	id kernel.UUID,
	accountID kernel.UUID,
	request quote.Request,
	price quote.Breakdown,
	chargeID string,
	now time.Time,
) (*Order, error) {
	o := &Order{isConstructed: true, createdAt: now.UTC()}

	if err := errors.Join(
		o.setID(id),
		o.setAccountID(accountID),
		o.setRequest(request),
		o.setPrice(price),
		o.setChargeID(chargeID),
	); err != nil {
		return nil, err
	}

	initial := Confirmed
	if request.Scheduling().IsScheduled() {
		initial = Scheduled
	}
	o.status = initial
	o.timeline = []Event{newEvent(initial, now, "")}

	return o, nil
}

// RestoreOrder rebuilds an order loaded from storage. It trusts the stored
// timeline and status and is meant for repositories only.
func RestoreOrder(
	id kernel.UUID,
	accountID kernel.UUID,
	request quote.Request,
	price quote.Breakdown,
	chargeID string,
	status Status,
	timeline []Event,
	createdAt time.Time,
) *Order {
	events := make([]Event, len(timeline))
	copy(events, timeline)
	return &Order{
		id:            id,
		accountID:     accountID,
		request:       request,
		price:         price,
		chargeID:      chargeID,
		status:        status,
		timeline:      events,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}
}

// Validate returns ErrOrderIsNotConstructed for nil or zero orders.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) AccountID() kernel.UUID {
	return o.accountID
}

func (o *Order) Request() quote.Request {
	return o.request
}

func (o *Order) Price() quote.Breakdown {
	return o.price
}

func (o *Order) ChargeID() string {
	return o.chargeID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Timeline returns a copy of the tracking events, oldest first.
func (o *Order) Timeline() []Event {
	out := make([]Event, len(o.timeline))
	copy(out, o.timeline)
	return out
}

// IsOwnedBy reports whether accountID placed the order.
func (o *Order) IsOwnedBy(accountID kernel.UUID) bool {
	return o.accountID.IsEqual(accountID)
}

// IsDueForRelease reports whether a Scheduled order's pickup time has arrived.
func (o *Order) IsDueForRelease(now time.Time) bool {
	return o.status == Scheduled && !now.Before(o.request.Scheduling().PickupAt())
}

// Confirm releases a Scheduled order for pickup.
func (o *Order) Confirm(now time.Time) error {
	next, err := o.status.Confirm()
	if err != nil {
		return err
	}
	o.transition(next, now, "")
	return nil
}

// Advance moves a tracking order one step towards delivery.
func (o *Order) Advance(now time.Time) error {
	next, err := o.status.Advance()
	if err != nil {
		return err
	}
	o.transition(next, now, "")
	return nil
}

// Cancel cancels an order that has not been picked up yet. An empty reason
// uses the default note.
func (o *Order) Cancel(now time.Time, reason string) error {
	next, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.transition(next, now, strings.TrimSpace(reason))
	return nil
}

func (o *Order) transition(next Status, now time.Time, note string) {
	o.status = next
	o.timeline = append(o.timeline, newEvent(next, now, note))
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setAccountID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("accountID", err)
	}
	o.accountID = id
	return nil
}

func (o *Order) setRequest(r quote.Request) error {
	if err := r.Validate(); err != nil {
		return err
	}
	o.request = r
	return nil
}

func (o *Order) setPrice(p quote.Breakdown) error {
	if err := p.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	o.price = p
	return nil
}

func (o *Order) setChargeID(chargeID string) error {
	if strings.TrimSpace(chargeID) == "" {
		return errs.NewValueIsRequiredError("chargeID")
	}
	o.chargeID = chargeID
	return nil
}
