package commands

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/guard"
)

var ErrMarkUrgentCommandIsNotConstructed = errors.New(
	"MarkUrgentCommand must be created via NewMarkUrgentCommand constructor",
)

// MarkUrgentCommand represents a request to escalate an order.
// The note is optional free text explaining the urgency.
type MarkUrgentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	note    string

	guard guard.ConstructorGuard
}

// NewMarkUrgentCommand creates a command to flag an order urgent.
func NewMarkUrgentCommand(orderID kernel.UUID, actor order.Actor, note string) (MarkUrgentCommand, error) {
	cmd := MarkUrgentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return MarkUrgentCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkUrgentCommandIsNotConstructed if validation fails.
func (c MarkUrgentCommand) Validate() error {
	return c.guard.Validate(ErrMarkUrgentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to escalate.
func (c MarkUrgentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user.
func (c MarkUrgentCommand) Actor() order.Actor {
	return c.actor
}

// Note returns the urgency annotation.
func (c MarkUrgentCommand) Note() string {
	return c.note
}

func (c *MarkUrgentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkUrgentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
