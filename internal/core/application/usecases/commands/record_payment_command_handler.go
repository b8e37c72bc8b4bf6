package commands

import (
	"context"
	"log/slog"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// RecordPaymentCommandHandler handles payment recording.
// Payment state and balance due stay derived from the money columns, so the
// handler only accumulates the raw amounts on the aggregate.
type RecordPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordPaymentCommandHandler creates a handler for payment operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewRecordPaymentCommandHandler(uowFactory OrderUoWFactory) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment command and returns the updated snapshot.
func (h *RecordPaymentCommandHandler) Handle(
	ctx context.Context, cmd RecordPaymentCommand,
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

	if err = aggregate.RecordPayment(cmd.Amount(), cmd.Method(), time.Now().UTC()); err != nil {
		return order.Snapshot{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	slog.Info("payment recorded",
		"orderId", aggregate.ID().String(),
		"amount", cmd.Amount(),
		"paymentState", string(aggregate.PaymentState()),
		"actorId", cmd.Actor().ID().String(),
	)

	return aggregate.Snapshot(), nil
}
