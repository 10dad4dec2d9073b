package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrPlaceSupplierOrderCommandIsNotConstructed = errors.New(
	"PlaceSupplierOrderCommand must be created via NewPlaceSupplierOrderCommand constructor",
)

// PlaceSupplierOrderCommand represents a request to purchase the order's
// product from the supplier. Legal for orders in PENDING, SUPPLIER_ORDERING
// (recovery after a crash mid-call) and RETRYING with the supplier step as
// the interrupted operation.
type PlaceSupplierOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

// NewPlaceSupplierOrderCommand creates a command to place the supplier order.
func NewPlaceSupplierOrderCommand(orderID kernel.UUID, actor string) (PlaceSupplierOrderCommand, error) {
	cmd := PlaceSupplierOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return PlaceSupplierOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceSupplierOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceSupplierOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c PlaceSupplierOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c PlaceSupplierOrderCommand) Actor() string {
	return c.actor
}

func (c *PlaceSupplierOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceSupplierOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
