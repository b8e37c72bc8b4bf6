package queries

import (
	"context"

	"garmentflow/internal/core/domain/model/order"
)

// GetActionMapQueryHandler derives the capability flags for an (order, actor)
// pair. A deterministic pure derivation over the loaded snapshot.
type GetActionMapQueryHandler struct {
	reader OrderReader
}

// NewGetActionMapQueryHandler creates a handler for action-map reads.
func NewGetActionMapQueryHandler(reader OrderReader) GetActionMapQueryHandler {
	return GetActionMapQueryHandler{reader: reader}
}

// Handle executes the query.
func (h GetActionMapQueryHandler) Handle(ctx context.Context, query GetActionMapQuery) (order.ActionMap, error) {
	if err := query.Validate(); err != nil {
		return order.ActionMap{}, err
	}

	aggregate, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return order.ActionMap{}, err
	}

	return order.DeriveActionMap(aggregate.Snapshot(), query.Actor()), nil
}
