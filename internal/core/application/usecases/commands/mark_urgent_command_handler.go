package commands

import (
	"context"
	"log/slog"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// MarkUrgentCommandHandler handles manual urgency escalation.
// The aggregate decides who may escalate: privileged roles always, the
// sales creator on their own non-terminal orders.
type MarkUrgentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkUrgentCommandHandler creates a handler for escalation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewMarkUrgentCommandHandler(uowFactory OrderUoWFactory) MarkUrgentCommandHandler {
	return MarkUrgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the escalation command and returns the updated snapshot.
func (h *MarkUrgentCommandHandler) Handle(ctx context.Context, cmd MarkUrgentCommand) (order.Snapshot, error) {
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

	if err = aggregate.MarkUrgent(cmd.Actor(), cmd.Note(), time.Now().UTC()); err != nil {
		return order.Snapshot{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	slog.Info("order marked urgent",
		"orderId", aggregate.ID().String(),
		"actorId", cmd.Actor().ID().String(),
		"role", cmd.Actor().Role().String(),
	)

	return aggregate.Snapshot(), nil
}
