package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

var ErrMarkManualReviewCommandIsNotConstructed = errors.New(
	"MarkManualReviewCommand must be created via NewMarkManualReviewCommand constructor",
)

// MarkManualReviewCommand represents a request to pull an order out of the
// pipeline into MANUAL_REVIEW, with a reason an operator will read.
type MarkManualReviewCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	actor   string

	guard guard.ConstructorGuard
}

// NewMarkManualReviewCommand creates a command to route an order to manual
// review. The reason is required: a review item without context is useless
// to the operator who picks it up.
func NewMarkManualReviewCommand(orderID kernel.UUID, reason string, actor string) (MarkManualReviewCommand, error) {
	cmd := MarkManualReviewCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setActor(actor),
	); err != nil {
		return MarkManualReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkManualReviewCommand) Validate() error {
	return c.guard.Validate(ErrMarkManualReviewCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c MarkManualReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the operator-facing explanation for the review.
func (c MarkManualReviewCommand) Reason() string {
	return c.reason
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c MarkManualReviewCommand) Actor() string {
	return c.actor
}

func (c *MarkManualReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *MarkManualReviewCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *MarkManualReviewCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
