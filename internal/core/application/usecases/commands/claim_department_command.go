package commands

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/guard"
)

var ErrClaimDepartmentCommandIsNotConstructed = errors.New(
	"ClaimDepartmentCommand must be created via NewClaimDepartmentCommand constructor",
)

// ClaimDepartmentCommand represents a request to take a department's claim
// slot on an order. Claiming grants the actor authorization for that
// department's transitions; it never moves the order's status.
type ClaimDepartmentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      order.Actor
	department order.Department

	guard guard.ConstructorGuard
}

// NewClaimDepartmentCommand creates a command to claim a department slot.
func NewClaimDepartmentCommand(
	orderID kernel.UUID,
	actor order.Actor,
	department order.Department,
) (ClaimDepartmentCommand, error) {
	cmd := ClaimDepartmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setDepartment(department),
	); err != nil {
		return ClaimDepartmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrClaimDepartmentCommandIsNotConstructed if validation fails.
func (c ClaimDepartmentCommand) Validate() error {
	return c.guard.Validate(ErrClaimDepartmentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to claim on.
func (c ClaimDepartmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user.
func (c ClaimDepartmentCommand) Actor() order.Actor {
	return c.actor
}

// Department returns the claim slot being requested.
func (c ClaimDepartmentCommand) Department() order.Department {
	return c.department
}

func (c *ClaimDepartmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimDepartmentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *ClaimDepartmentCommand) setDepartment(department order.Department) error {
	if err := department.Validate(); err != nil {
		return err
	}

	c.department = department
	return nil
}
