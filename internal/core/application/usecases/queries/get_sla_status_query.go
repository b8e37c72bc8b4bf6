package queries

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/pkg/guard"
)

var ErrGetSLAStatusQueryIsNotConstructed = errors.New(
	"GetSLAStatusQuery must be created via NewGetSLAStatusQuery constructor",
)

// GetSLAStatusQuery retrieves the per-department SLA report of one order.
type GetSLAStatusQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetSLAStatusQuery creates a query for an order's SLA report.
func NewGetSLAStatusQuery(orderID kernel.UUID) (GetSLAStatusQuery, error) {
	query := GetSLAStatusQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setOrderID(orderID); err != nil {
		return GetSLAStatusQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetSLAStatusQueryIsNotConstructed if validation fails.
func (q GetSLAStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetSLAStatusQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to read.
func (q GetSLAStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetSLAStatusQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}
