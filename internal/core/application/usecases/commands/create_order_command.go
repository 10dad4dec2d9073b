package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new order captured
// from a sales channel. The resale price is resolved from the catalog by the
// handler, so the command carries only the channel-side facts.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, "mercari", "M-12345", "prod-77", 2, "api")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID          kernel.UUID
	platform         string
	platformOrderRef string
	productID        string
	qty              int
	actor            string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID is valid, the channel fields are present and
// the quantity is positive. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	platform string,
	platformOrderRef string,
	productID string,
	qty int,
	actor string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPlatform(platform),
		cmd.setPlatformOrderRef(platformOrderRef),
		cmd.setProductID(productID),
		cmd.setQty(qty),
		cmd.setActor(actor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Platform returns the originating sales channel.
func (c CreateOrderCommand) Platform() string {
	return c.platform
}

// PlatformOrderRef returns the sales-channel order reference.
func (c CreateOrderCommand) PlatformOrderRef() string {
	return c.platformOrderRef
}

// ProductID returns the catalog entry reference.
func (c CreateOrderCommand) ProductID() string {
	return c.productID
}

// Qty returns the purchased quantity.
func (c CreateOrderCommand) Qty() int {
	return c.qty
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c CreateOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPlatform(platform string) error {
	if platform == "" {
		return errs.NewValueIsRequiredError("platform")
	}

	c.platform = platform
	return nil
}

func (c *CreateOrderCommand) setPlatformOrderRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("platformOrderRef")
	}

	c.platformOrderRef = ref
	return nil
}

func (c *CreateOrderCommand) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}

	c.productID = productID
	return nil
}

func (c *CreateOrderCommand) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidError("qty")
	}

	c.qty = qty
	return nil
}

func (c *CreateOrderCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
