package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrSetBuyerInfoCommandIsNotConstructed = errors.New(
	"SetBuyerInfoCommand must be created via NewSetBuyerInfoCommand constructor",
)

// SetBuyerInfoCommand represents a request to capture or replace the buyer's
// shipping details for an order. Field-level validation lives in the
// buyer.BuyerInfo constructor; the command only requires an order id and an
// actor so partial submissions still produce precise domain errors.
type SetBuyerInfoCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	name      string
	phone     string
	address1  string
	address2  string
	zip       string
	country   string
	customsID string
	actor     string

	guard guard.ConstructorGuard
}

// NewSetBuyerInfoCommand creates a command to set the buyer info for an order.
func NewSetBuyerInfoCommand(
	orderID kernel.UUID,
	name string,
	phone string,
	address1 string,
	address2 string,
	zip string,
	country string,
	customsID string,
	actor string,
) (SetBuyerInfoCommand, error) {
	cmd := SetBuyerInfoCommand{
		name:      name,
		phone:     phone,
		address1:  address1,
		address2:  address2,
		zip:       zip,
		country:   country,
		customsID: customsID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actor),
	); err != nil {
		return SetBuyerInfoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetBuyerInfoCommand) Validate() error {
	return c.guard.Validate(ErrSetBuyerInfoCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c SetBuyerInfoCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Name returns the recipient's full name.
func (c SetBuyerInfoCommand) Name() string {
	return c.name
}

// Phone returns the recipient's contact number.
func (c SetBuyerInfoCommand) Phone() string {
	return c.phone
}

// Address1 returns the primary address line.
func (c SetBuyerInfoCommand) Address1() string {
	return c.address1
}

// Address2 returns the optional secondary address line.
func (c SetBuyerInfoCommand) Address2() string {
	return c.address2
}

// Zip returns the postal code.
func (c SetBuyerInfoCommand) Zip() string {
	return c.zip
}

// Country returns the destination country code.
func (c SetBuyerInfoCommand) Country() string {
	return c.country
}

// CustomsID returns the optional personal customs code.
func (c SetBuyerInfoCommand) CustomsID() string {
	return c.customsID
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c SetBuyerInfoCommand) Actor() string {
	return c.actor
}

func (c *SetBuyerInfoCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetBuyerInfoCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
