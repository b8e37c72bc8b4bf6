package commands

import (
	"context"
	"log/slog"
	"time"
)

// MarkStaleOrdersCommandHandler sweeps for orders with no recent activity
// and escalates them to urgent. Orders already urgent or in a terminal
// status are left alone by the aggregate.
type MarkStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkStaleOrdersCommandHandler creates a handler for the stale sweep.
// Requires an OrderUoWFactory for transactional persistence.
func NewMarkStaleOrdersCommandHandler(uowFactory OrderUoWFactory) MarkStaleOrdersCommandHandler {
	return MarkStaleOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the sweep command.
// Every escalated order is persisted in the same transaction; a sweep that
// escalates nothing still succeeds.
func (h *MarkStaleOrdersCommandHandler) Handle(ctx context.Context, cmd MarkStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := time.Now().UTC()
	repo := uow.OrderRepository()
	stale, err := repo.GetAllStale(ctx, now.Add(-cmd.StaleAfter()))
	if err != nil {
		return err
	}

	escalated := 0
	for _, aggregate := range stale {
		if !aggregate.AutoMarkUrgent("auto-escalated: no activity", now) {
			continue
		}
		if err = repo.Update(ctx, aggregate); err != nil {
			return err
		}
		escalated++
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if escalated > 0 {
		slog.Info("stale orders escalated", "count", escalated)
	}

	return nil
}
