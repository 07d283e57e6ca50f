package commands

import (
	"context"
	"errors"

	"parcelquote/internal/core/ports"
	"parcelquote/internal/pkg/errs"
	"parcelquote/internal/pkg/guard"
)

var ErrAdvanceTrackingCommandIsNotConstructed = errors.New(
	"AdvanceTrackingCommand must be created via NewAdvanceTrackingCommand constructor",
)

// AdvanceTrackingCommand moves every tracking order one step towards delivery.
// It simulates drivers; there is no real location feed.
type AdvanceTrackingCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewAdvanceTrackingCommand(batchSize int) (AdvanceTrackingCommand, error) {
	if batchSize <= 0 || batchSize > maxBatchSize {
		return AdvanceTrackingCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, maxBatchSize)
	}
	return AdvanceTrackingCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceTrackingCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceTrackingCommandIsNotConstructed)
}

func (c AdvanceTrackingCommand) BatchSize() int {
	return c.batchSize
}

// AdvanceTrackingCommandHandler advances one batch in a single transaction and
// reports how many orders moved.
type AdvanceTrackingCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewAdvanceTrackingCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) AdvanceTrackingCommandHandler {
	return AdvanceTrackingCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h AdvanceTrackingCommandHandler) Handle(ctx context.Context, cmd AdvanceTrackingCommand) (int, error) {
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
	tracking, err := repo.GetAllTracking(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(tracking) == 0 {
		return 0, nil
	}

	for _, o := range tracking {
		if err = o.Advance(now); err != nil {
			return 0, err
		}
		if err = repo.Update(ctx, o); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(tracking), nil
}
