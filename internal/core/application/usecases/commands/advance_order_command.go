package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand represents a request to move an order along one
// happy-path edge of the lifecycle, for example SENT_TO_FORWARDER to DONE.
// Edges that carry external evidence (the supplier purchase and the forwarder
// handoff) have dedicated commands and are rejected here.
type AdvanceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   string

	guard guard.ConstructorGuard
}

// NewAdvanceOrderCommand creates a command to advance an order to the target
// status. Whether the edge is actually legal is decided by the aggregate at
// handling time; the constructor only checks the target is a known status.
func NewAdvanceOrderCommand(orderID kernel.UUID, target order.Status, actor string) (AdvanceOrderCommand, error) {
	cmd := AdvanceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the status the order should advance to.
func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c AdvanceOrderCommand) Actor() string {
	return c.actor
}

func (c *AdvanceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *AdvanceOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
