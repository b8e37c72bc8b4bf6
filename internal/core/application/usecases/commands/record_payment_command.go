package commands

import (
	"errors"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"
	"garmentflow/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand represents a request to record a payment against an
// order. The amount is in the smallest currency unit; the method is optional
// and, when set, replaces the order's settlement method.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   order.Actor
	amount  int64
	method  order.PaymentMethod

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment.
// Only sales, finance, delivery, and privileged roles handle money.
func NewRecordPaymentCommand(
	orderID kernel.UUID,
	actor order.Actor,
	amount int64,
	method order.PaymentMethod,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setAmount(amount),
		cmd.setMethod(method),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordPaymentCommandIsNotConstructed if validation fails.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being paid.
func (c RecordPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the acting user.
func (c RecordPaymentCommand) Actor() order.Actor {
	return c.actor
}

// Amount returns the payment amount in the smallest currency unit.
func (c RecordPaymentCommand) Amount() int64 {
	return c.amount
}

// Method returns the optional replacement settlement method, empty when the
// current method stays in place.
func (c RecordPaymentCommand) Method() order.PaymentMethod {
	return c.method
}

func (c *RecordPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordPaymentCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	role := actor.Role()
	allowed := role.IsPrivileged() ||
		role == order.RoleSales || role == order.RoleFinance || role == order.RoleDelivery
	if !allowed {
		return errs.NewForbiddenError(role.String(), "record payment")
	}

	c.actor = actor
	return nil
}

func (c *RecordPaymentCommand) setAmount(amount int64) error {
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, int64(1<<62))
	}

	c.amount = amount
	return nil
}

func (c *RecordPaymentCommand) setMethod(method order.PaymentMethod) error {
	if method == "" {
		return nil
	}
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}
