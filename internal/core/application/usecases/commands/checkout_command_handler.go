package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/core/domain/model/order"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
)

// Quoter prices a quote command. RequestQuoteCommandHandler implements it.
type Quoter interface {
	Handle(ctx context.Context, cmd RequestQuoteCommand) (QuoteResult, error)
}

// CheckoutResult is the order created at checkout and the charge that paid for it.
type CheckoutResult struct {
	Order  *order.Order
	Charge ports.Charge
}

// ErrIdempotencyKeyInUse is returned when a checkout reuses an idempotency key
// whose charge already paid for another account's order.
var ErrIdempotencyKeyInUse = errors.New("idempotency key already used by another account")

// CheckoutCommandHandler recomputes the quote, charges the card and stores the
// order. A retry with the same idempotency key gets the same charge back from
// the gateway and returns the order that charge already paid for. If the order
// cannot be stored after a successful charge, the charge is refunded before the
// error is returned.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(quoter, gateway, uowFactory, clock)
//	res, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrServiceRejected) {
//	    // card declined
//	}
//	fmt.Println(res.Order.ID(), res.Order.Status())
type CheckoutCommandHandler struct {
	quoter     Quoter
	payments   ports.PaymentGateway
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewCheckoutCommandHandler(
	quoter Quoter,
	payments ports.PaymentGateway,
	uowFactory OrderUoWFactory,
	clock ports.Clock,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{quoter: quoter, payments: payments, uowFactory: uowFactory, clock: clock}
}

// Handle places the order described by cmd.
func (h CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) (CheckoutResult, error) {
	if err := cmd.Validate(); err != nil {
		return CheckoutResult{}, err
	}

	now := h.clock.Now()
	session := cmd.Session()
	if err := session.Authorize(now, "checkout"); err != nil {
		return CheckoutResult{}, err
	}

	quoted, err := h.quoter.Handle(ctx, cmd.Quote())
	if err != nil {
		return CheckoutResult{}, err
	}

	charge, err := h.payments.Charge(ctx, ports.ChargeRequest{
		IdempotencyKey: cmd.IdempotencyKey(),
		Amount:         quoted.Breakdown.Total,
		Card:           cmd.Card(),
		Description: fmt.Sprintf("Delivery %s to %s",
			quoted.Request.PickupAddress(), quoted.Request.DeliveryAddress()),
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	placed, err := h.place(ctx, session.AccountID(), quoted, charge.ID, now)
	if err != nil {
		// The charge belongs to an order that is already stored.
		if errors.Is(err, ErrIdempotencyKeyInUse) || errors.Is(err, ports.ErrOrderAlreadyExists) {
			return CheckoutResult{}, err
		}
		if _, refundErr := h.payments.Refund(context.WithoutCancel(ctx), ports.RefundRequest{
			ChargeID: charge.ID,
			Amount:   charge.Amount,
		}); refundErr != nil {
			return CheckoutResult{}, errors.Join(err, fmt.Errorf("refund charge %s: %w", charge.ID, refundErr))
		}
		return CheckoutResult{}, err
	}

	return CheckoutResult{Order: placed, Charge: charge}, nil
}

// place returns the order already paid for by chargeID, or stores a new one.
func (h CheckoutCommandHandler) place(
	ctx context.Context,
	accountID kernel.UUID,
	quoted QuoteResult,
	chargeID string,
	now time.Time,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	existing, err := repo.GetByChargeID(ctx, chargeID)
	switch {
	case err == nil:
		if !existing.IsOwnedBy(accountID) {
			return nil, ErrIdempotencyKeyInUse
		}
		return existing, nil
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	created, err := order.NewOrder(kernel.NewUUID(), accountID, quoted.Request, quoted.Breakdown, chargeID, now)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
