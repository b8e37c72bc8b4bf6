package queries

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/guard"
)

var ErrGetActionMapQueryIsNotConstructed = errors.New(
	"GetActionMapQuery must be created via NewGetActionMapQuery constructor",
)

// GetActionMapQuery retrieves the capability flags of one order for the
// acting user.
type GetActionMapQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor

	guard guard.ConstructorGuard
}

// NewGetActionMapQuery creates a query for an order's action map.
func NewGetActionMapQuery(orderID kernel.UUID, actor order.Actor) (GetActionMapQuery, error) {
	query := GetActionMapQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		query.setOrderID(orderID),
		query.setActor(actor),
	); err != nil {
		return GetActionMapQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetActionMapQueryIsNotConstructed if validation fails.
func (q GetActionMapQuery) Validate() error {
	return q.guard.Validate(ErrGetActionMapQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to read.
func (q GetActionMapQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Actor returns the acting user.
func (q GetActionMapQuery) Actor() order.Actor {
	return q.actor
}

func (q *GetActionMapQuery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	q.orderID = orderID
	return nil
}

func (q *GetActionMapQuery) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	q.actor = actor
	return nil
}
