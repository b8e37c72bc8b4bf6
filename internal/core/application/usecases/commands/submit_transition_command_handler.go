package commands

import (
	"context"
	"log/slog"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// SubmitTransitionCommandHandler handles status transition requests.
// Loads the order, lets the aggregate's transition engine validate and apply
// the edge, and persists the result under the optimistic version check.
type SubmitTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSubmitTransitionCommandHandler creates a handler for transition operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewSubmitTransitionCommandHandler(uowFactory OrderUoWFactory) SubmitTransitionCommandHandler {
	return SubmitTransitionCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command and returns the updated snapshot.
// The applied action label is appended to the audit log on success.
func (h *SubmitTransitionCommandHandler) Handle(
	ctx context.Context, cmd SubmitTransitionCommand,
) (order.Snapshot, error) {
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

	action, err := aggregate.ApplyTransition(cmd.Actor(), cmd.Target(), cmd.Payload(), time.Now().UTC())
	if err != nil {
		return order.Snapshot{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	slog.Info("order transition applied",
		"orderId", aggregate.ID().String(),
		"jobId", aggregate.JobID(),
		"status", aggregate.Status().String(),
		"action", action,
		"actorId", cmd.Actor().ID().String(),
		"role", cmd.Actor().Role().String(),
	)

	return aggregate.Snapshot(), nil
}
