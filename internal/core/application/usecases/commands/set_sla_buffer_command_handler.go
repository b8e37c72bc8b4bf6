package commands

import (
	"context"
	"log/slog"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// SetSLABufferCommandHandler handles SLA buffer adjustments.
type SetSLABufferCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSetSLABufferCommandHandler creates a handler for buffer operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewSetSLABufferCommandHandler(uowFactory OrderUoWFactory) SetSLABufferCommandHandler {
	return SetSLABufferCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the buffer command and returns the updated snapshot.
func (h *SetSLABufferCommandHandler) Handle(ctx context.Context, cmd SetSLABufferCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = aggregate.SetSLABuffer(cmd.Actor(), cmd.Days(), time.Now().UTC()); err != nil {
		return order.Snapshot{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	slog.Info("SLA buffer updated",
		"orderId", aggregate.ID().String(),
		"bufferDays", cmd.Days(),
		"actorId", cmd.Actor().ID().String(),
	)

	return aggregate.Snapshot(), nil
}
