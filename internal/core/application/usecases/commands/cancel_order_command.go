package commands

import (
	"errors"
	"strings"

	"parcelquote/internal/core/domain/model/account"
	"parcelquote/internal/core/domain/model/kernel"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

const maxCancelReasonLength = 280

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand cancels an order that has not been picked up yet.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	session account.Session
	orderID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(session account.Session, orderID kernel.UUID, reason string) (CancelOrderCommand, error) {
	c := CancelOrderCommand{guard: guard.NewConstructorGuard()}

	var sessionErr error
	if err := session.Validate(); err != nil {
		sessionErr = errs.ErrUnauthorized
	}
	c.session = session

	if err := errors.Join(sessionErr, c.setOrderID(orderID), c.setReason(reason)); err != nil {
		return CancelOrderCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Session() account.Session {
	return c.session
}

func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if len(reason) > maxCancelReasonLength {
		return errs.NewValueIsOutOfRangeError("reason length", len(reason), 0, maxCancelReasonLength)
	}
	c.reason = reason
	return nil
}
