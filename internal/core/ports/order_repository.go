// Package ports defines repository interfaces for the garment-order domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and activity.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using
	// optimistic concurrency: the write succeeds only if the stored version
	// still matches the aggregate's loaded version, and bumps it by one.
	// Returns a ConflictError when a concurrent writer got there first;
	// the caller may reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns the complete order with its claims and payment state.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByJobID retrieves an order aggregate by its human-readable job code.
	GetByJobID(ctx context.Context, jobID string) (*order.Order, error)

	// GetAllStale retrieves non-terminal, non-urgent orders whose last
	// mutation happened before the cutoff. Used by the stale-order sweep
	// to auto-escalate quiet orders.
	GetAllStale(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
