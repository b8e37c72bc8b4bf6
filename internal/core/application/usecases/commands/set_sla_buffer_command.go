package commands

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/guard"
)

var ErrSetSLABufferCommandIsNotConstructed = errors.New(
	"SetSLABufferCommand must be created via NewSetSLABufferCommand constructor",
)

// SetSLABufferCommand represents a request to shift an order's department
// deadlines later by a number of days. Restricted to privileged roles by
// the aggregate.
type SetSLABufferCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	days    int

	guard guard.ConstructorGuard
}

// NewSetSLABufferCommand creates a command to set the per-order SLA buffer.
func NewSetSLABufferCommand(orderID kernel.UUID, actor order.Actor, days int) (SetSLABufferCommand, error) {
	cmd := SetSLABufferCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SetSLABufferCommand{}, err
	}

	cmd.days = days
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetSLABufferCommandIsNotConstructed if validation fails.
func (c SetSLABufferCommand) Validate() error {
	return c.guard.Validate(ErrSetSLABufferCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to adjust.
func (c SetSLABufferCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user.
func (c SetSLABufferCommand) Actor() order.Actor {
	return c.actor
}

// Days returns the buffer in days.
func (c SetSLABufferCommand) Days() int {
	return c.days
}

func (c *SetSLABufferCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetSLABufferCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
