package queries

import (
	"context"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// GetOrderQueryHandler assembles the per-actor read model of an order.
// The action map and SLA report are recomputed here on every call; they are
// never persisted.
type GetOrderQueryHandler struct {
	reader OrderReader
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle executes the query and derives the action map and SLA report for
// the acting user.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	aggregate, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	snap := aggregate.Snapshot()
	return GetOrderQueryResponse{
		Order:     snap,
		ActionMap: order.DeriveActionMap(snap, query.Actor()),
		SLA:       order.EvaluateSLA(snap, time.Now().UTC()),
	}, nil
}
