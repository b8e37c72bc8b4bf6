package queries

import (
	"context"
	"time"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves non-terminal orders from the database.
// Reads the order table directly; the full aggregate is not needed for the
// list view.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for dashboard list queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all active orders.
// Urgent orders sort first, then by due date.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	responses := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			job_id,
			status,
			sub_status,
			is_urgent,
			due_date
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY is_urgent DESC, due_date, id
	`, order.Completed.String(), order.Cancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var jobID, statusLabel, subStatus string
		var isUrgent bool
		var dueDate time.Time

		if err = rows.Scan(&id, &jobID, &statusLabel, &subStatus, &isUrgent, &dueDate); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		status, statusErr := order.StatusFromString(statusLabel)
		if statusErr != nil {
			return nil, statusErr
		}

		responses = append(responses, GetActiveOrdersQueryResponse{
			ID:        orderID,
			JobID:     jobID,
			Status:    status,
			SubStatus: order.SubStatus(subStatus),
			IsUrgent:  isUrgent,
			DueDate:   dueDate,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
