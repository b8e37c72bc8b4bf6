package commands

import (
	"context"
	"log/slog"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// ClaimDepartmentCommandHandler handles department claim requests.
// The claim registry on the aggregate enforces at-most-one-claimant and the
// idempotent same-actor re-claim; a lost race surfaces as AlreadyClaimed.
type ClaimDepartmentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewClaimDepartmentCommandHandler creates a handler for claim operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewClaimDepartmentCommandHandler(uowFactory OrderUoWFactory) ClaimDepartmentCommandHandler {
	return ClaimDepartmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command and returns the updated snapshot.
func (h *ClaimDepartmentCommandHandler) Handle(
	ctx context.Context, cmd ClaimDepartmentCommand,
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

	if err = aggregate.ClaimDepartment(cmd.Department(), cmd.Actor(), time.Now().UTC()); err != nil {
		return order.Snapshot{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}

	slog.Info("department claimed",
		"orderId", aggregate.ID().String(),
		"department", cmd.Department().String(),
		"actorId", cmd.Actor().ID().String(),
		"role", cmd.Actor().Role().String(),
	)

	return aggregate.Snapshot(), nil
}
