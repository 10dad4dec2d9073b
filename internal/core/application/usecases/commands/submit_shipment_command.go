package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrSubmitShipmentCommandIsNotConstructed = errors.New(
	"SubmitShipmentCommand must be created via NewSubmitShipmentCommand constructor",
)

// SubmitShipmentCommand represents a request to hand the order to the freight
// forwarder. Legal for orders in BUYER_INFO_SET, FORWARDER_SENDING (recovery
// after a crash mid-call) and RETRYING with the forwarder step as the
// interrupted operation.
type SubmitShipmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewSubmitShipmentCommand creates a command to submit the shipment.
func NewSubmitShipmentCommand(orderID kernel.UUID, actor string) (SubmitShipmentCommand, error) {
	cmd := SubmitShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SubmitShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitShipmentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitShipmentCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c SubmitShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c SubmitShipmentCommand) Actor() string {
	return c.actor
}

func (c *SubmitShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitShipmentCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
