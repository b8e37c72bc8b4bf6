package queries

import (
	"context"
	"time"

	"garmentflow/internal/core/domain/model/order"
)

// GetSLAStatusQueryHandler evaluates the per-department deadlines of an
// order at read time. SLA breach is computed lazily here, never pushed by
// a timer.
type GetSLAStatusQueryHandler struct {
	reader OrderReader
}

// NewGetSLAStatusQueryHandler creates a handler for SLA reads.
func NewGetSLAStatusQueryHandler(reader OrderReader) GetSLAStatusQueryHandler {
	return GetSLAStatusQueryHandler{reader: reader}
}

// Handle executes the query.
func (h GetSLAStatusQueryHandler) Handle(ctx context.Context, query GetSLAStatusQuery) (order.SLAReport, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := h.reader.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	return order.EvaluateSLA(aggregate.Snapshot(), time.Now().UTC()), nil
}
