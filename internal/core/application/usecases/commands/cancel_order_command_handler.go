package commands

import (
	"context"
	"fmt"

	"parcelquote/internal/core/domain/model/order"
	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
)

// CancelOrderResult is the cancelled order and the refund that reversed its charge.
type CancelOrderResult struct {
	Order  *order.Order
	Refund ports.Refund
}

// CancelOrderCommandHandler cancels an order for its owner (or an admin) and
// refunds the charge. The refund happens inside the transaction, so a failed
// refund leaves the order as it was.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	payments   ports.PaymentGateway
	clock      ports.Clock
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	payments ports.PaymentGateway,
	clock ports.Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, payments: payments, clock: clock}
}

// Handle returns order.ErrInvalidTransition when the order is already past
// pickup and errs.ErrForbidden when the caller does not own it.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	now := h.clock.Now()
	session := cmd.Session()
	if err := session.Authorize(now, "track"); err != nil {
		return CancelOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	if !o.IsOwnedBy(session.AccountID()) && !session.Role().Can("manage") {
		return CancelOrderResult{}, fmt.Errorf("%w: order %s belongs to another account", errs.ErrForbidden, o.ID())
	}

	if err = o.Cancel(now, cmd.Reason()); err != nil {
		return CancelOrderResult{}, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return CancelOrderResult{}, err
	}

	refund, err := h.payments.Refund(ctx, ports.RefundRequest{ChargeID: o.ChargeID(), Amount: o.Price().Total})
	if err != nil {
		return CancelOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	return CancelOrderResult{Order: o, Refund: refund}, nil
}
