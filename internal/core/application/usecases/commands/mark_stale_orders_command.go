package commands

import (
	"errors"
	"time"

	"garmentflow/internal/pkg/guard"
)

var (
	ErrMarkStaleOrdersCommandIsNotConstructed = errors.New(
		"MarkStaleOrdersCommand must be created via NewMarkStaleOrdersCommand constructor",
	)
	ErrStaleAfterIsInvalid = errors.New("staleAfter must be greater than 0")
)

// MarkStaleOrdersCommand triggers the sweep that auto-escalates orders with
// no activity for the given window. Run periodically by the job scheduler.
type MarkStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewMarkStaleOrdersCommand creates a command to sweep for stale orders.
// staleAfter is how long an order may sit without a mutation before it is
// flagged urgent.
func NewMarkStaleOrdersCommand(staleAfter time.Duration) (MarkStaleOrdersCommand, error) {
	if staleAfter <= 0 {
		return MarkStaleOrdersCommand{}, ErrStaleAfterIsInvalid
	}

	return MarkStaleOrdersCommand{
		staleAfter: staleAfter,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkStaleOrdersCommandIsNotConstructed if validation fails.
func (c MarkStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrMarkStaleOrdersCommandIsNotConstructed)
}

// StaleAfter returns the inactivity window.
func (c MarkStaleOrdersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}
