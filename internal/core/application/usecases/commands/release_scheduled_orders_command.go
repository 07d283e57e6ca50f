package commands

import (
	"context"
	"errors"

	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

const maxBatchSize = 1000

var ErrReleaseScheduledOrdersCommandIsNotConstructed = errors.New(
	"ReleaseScheduledOrdersCommand must be created via NewReleaseScheduledOrdersCommand constructor",
)

// ReleaseScheduledOrdersCommand confirms Scheduled orders whose pickup time has come.
type ReleaseScheduledOrdersCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewReleaseScheduledOrdersCommand(batchSize int) (ReleaseScheduledOrdersCommand, error) {
	if batchSize <= 0 || batchSize > maxBatchSize {
		return ReleaseScheduledOrdersCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxBatchSize)
	}
	return ReleaseScheduledOrdersCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseScheduledOrdersCommand) Validate() error {
	return c.guard.Validate(ErrReleaseScheduledOrdersCommandIsNotConstructed)
}

func (c ReleaseScheduledOrdersCommand) BatchSize() int {
	return c.batchSize
}

// ReleaseScheduledOrdersCommandHandler confirms every due order of one batch in a
// single transaction and reports how many were released.
type ReleaseScheduledOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewReleaseScheduledOrdersCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ReleaseScheduledOrdersCommandHandler {
	return ReleaseScheduledOrdersCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h ReleaseScheduledOrdersCommandHandler) Handle(ctx context.Context, cmd ReleaseScheduledOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	due, err := repo.GetDueForRelease(ctx, now, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	for _, o := range due {
		if err = o.Confirm(now); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(due), nil
}
