package commands

import (
	"errors"
	"strings"
	"time"

	"garmentflow/internal/core/domain/model/kernel"
	"garmentflow/internal/core/domain/model/order"
	"garmentflow/internal/pkg/errs"
	"garmentflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrJobIDIsRequired   = errors.New("jobId is required")
	ErrDueDateIsRequired = errors.New("dueDate is required")
)

// CreateOrderCommand represents a request to open a new garment order.
// Encapsulates the job code, block type, due date, and payment terms; the
// acting user becomes the sales owner of the order.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	jobID         string
	actor         order.Actor
	blockType     order.BlockType
	dueDate       time.Time
	totalPrice    int64
	paidAmount    int64
	paymentMethod order.PaymentMethod
	isUrgent      bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to open a new order.
// Validates identifiers, the block type, the due date, the payment method,
// and that the acting role may create orders.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	jobID string,
	actor order.Actor,
	blockType order.BlockType,
	dueDate time.Time,
	totalPrice int64,
	paidAmount int64,
	paymentMethod order.PaymentMethod,
	isUrgent bool,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
		cmd.setJobID(jobID),
		cmd.setBlockType(blockType),
		cmd.setDueDate(dueDate),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.totalPrice = totalPrice
	cmd.paidAmount = paidAmount
	cmd.isUrgent = isUrgent
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// JobID returns the human-readable job code.
func (c CreateOrderCommand) JobID() string {
	return c.jobID
}

// Actor returns the acting user, who becomes the sales owner.
func (c CreateOrderCommand) Actor() order.Actor {
	return c.actor
}

// BlockType returns the embroidery block type.
func (c CreateOrderCommand) BlockType() order.BlockType {
	return c.blockType
}

// DueDate returns the target completion date.
func (c CreateOrderCommand) DueDate() time.Time {
	return c.dueDate
}

// TotalPrice returns the order total in the smallest currency unit.
func (c CreateOrderCommand) TotalPrice() int64 {
	return c.totalPrice
}

// PaidAmount returns the amount already paid at creation.
func (c CreateOrderCommand) PaidAmount() int64 {
	return c.paidAmount
}

// PaymentMethod returns the settlement method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// IsUrgent returns whether the order starts out flagged urgent.
func (c CreateOrderCommand) IsUrgent() bool {
	return c.isUrgent
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().CanCreateOrders() {
		return errs.NewForbiddenError(actor.Role().String(), "create order")
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setJobID(jobID string) error {
	if strings.TrimSpace(jobID) == "" {
		return ErrJobIDIsRequired
	}

	c.jobID = jobID
	return nil
}

func (c *CreateOrderCommand) setBlockType(blockType order.BlockType) error {
	if err := blockType.Validate(); err != nil {
		return err
	}

	c.blockType = blockType
	return nil
}

func (c *CreateOrderCommand) setDueDate(dueDate time.Time) error {
	if dueDate.IsZero() {
		return ErrDueDateIsRequired
	}

	c.dueDate = dueDate
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.paymentMethod = method
	return nil
}
