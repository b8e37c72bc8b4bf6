// Package queries contains read-only operations against order state.
// Derived views (action map, SLA report) are pure functions recomputed on
// every read; nothing here mutates an aggregate or caches a verdict.
package queries

import (
	"context"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
)

// OrderReader provides lock-free aggregate reads for query handlers.
// Satisfied by the order repository outside a transaction.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetByJobID(ctx context.Context, jobID string) (*order.Order, error)
}
