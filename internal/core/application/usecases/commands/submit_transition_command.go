package commands

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/guard"
)

var ErrSubmitTransitionCommandIsNotConstructed = errors.New(
	"SubmitTransitionCommand must be created via NewSubmitTransitionCommand constructor",
)

// SubmitTransitionCommand represents a request to drive an order to a new
// status. Whether the edge is legal is decided by the order aggregate's
// transition engine, not here; the command only validates its inputs.
type SubmitTransitionCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	target  order.Status
	payload order.TransitionPayload

	guard guard.ConstructorGuard
}

// NewSubmitTransitionCommand creates a command to request a status transition.
// Validates the order identifier, the actor, and that the target is an
// enumerated status.
func NewSubmitTransitionCommand(
	orderID kernel.UUID,
	actor order.Actor,
	target order.Status,
	payload order.TransitionPayload,
) (SubmitTransitionCommand, error) {
	cmd := SubmitTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setTarget(target),
	); err != nil {
		return SubmitTransitionCommand{}, err
	}

	cmd.payload = payload
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitTransitionCommandIsNotConstructed if validation fails.
func (c SubmitTransitionCommand) Validate() error {
	return c.guard.Validate(ErrSubmitTransitionCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c SubmitTransitionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user.
func (c SubmitTransitionCommand) Actor() order.Actor {
	return c.actor
}

// Target returns the requested status.
func (c SubmitTransitionCommand) Target() order.Status {
	return c.target
}

// Payload returns the optional transition inputs.
func (c SubmitTransitionCommand) Payload() order.TransitionPayload {
	return c.payload
}

func (c *SubmitTransitionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitTransitionCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *SubmitTransitionCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
