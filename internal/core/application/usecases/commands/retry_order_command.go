package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrRetryOrderCommandIsNotConstructed = errors.New(
	"RetryOrderCommand must be created via NewRetryOrderCommand constructor",
)

// RetryOrderCommand represents a request to re-attempt the interrupted
// operation of an order sitting in RETRYING.
type RetryOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewRetryOrderCommand creates a command to retry an order's interrupted step.
func NewRetryOrderCommand(orderID kernel.UUID, actor string) (RetryOrderCommand, error) {
	cmd := RetryOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return RetryOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RetryOrderCommand) Validate() error {
	return c.guard.Validate(ErrRetryOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c RetryOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c RetryOrderCommand) Actor() string {
	return c.actor
}

func (c *RetryOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RetryOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
