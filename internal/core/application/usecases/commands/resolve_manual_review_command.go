package commands

import (
	"errors"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
	"dropship/internal/pkg/guard"
)

// Verdicts an operator can reach when resolving a manual review item.
const (
	// VerdictResume returns the order to the pipeline state it departed.
	VerdictResume = "resume"

	// VerdictFail closes the order as FAILED.
	VerdictFail = "fail"
)

var ErrResolveManualReviewCommandIsNotConstructed = errors.New(
	"ResolveManualReviewCommand must be created via NewResolveManualReviewCommand constructor",
)

// ResolveManualReviewCommand represents an operator's decision on an order
// sitting in MANUAL_REVIEW: send it back into the pipeline or close it as
// failed.
type ResolveManualReviewCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	verdict string
	note    string
	actor   string

	guard guard.ConstructorGuard
}

// NewResolveManualReviewCommand creates a command to resolve a review item.
// The verdict must be VerdictResume or VerdictFail; a note is required when
// failing so the closure is explained in the audit trail.
func NewResolveManualReviewCommand(
	orderID kernel.UUID,
	verdict string,
	note string,
	actor string,
) (ResolveManualReviewCommand, error) {
	cmd := ResolveManualReviewCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setVerdict(verdict, note),
		cmd.setActor(actor),
	); err != nil {
		return ResolveManualReviewCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveManualReviewCommand) Validate() error {
	return c.guard.Validate(ErrResolveManualReviewCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c ResolveManualReviewCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Verdict returns the operator's decision, VerdictResume or VerdictFail.
func (c ResolveManualReviewCommand) Verdict() string {
	return c.verdict
}

// Note returns the operator's free-form explanation.
func (c ResolveManualReviewCommand) Note() string {
	return c.note
}

// Actor returns who initiated the command, recorded in the audit trail.
func (c ResolveManualReviewCommand) Actor() string {
	return c.actor
}

func (c *ResolveManualReviewCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveManualReviewCommand) setVerdict(verdict string, note string) error {
	if verdict != VerdictResume && verdict != VerdictFail {
		return errs.NewValueIsInvalidError("verdict")
	}
	if verdict == VerdictFail && note == "" {
		return errs.NewValueIsRequiredError("note")
	}

	c.verdict = verdict
	return nil
}

func (c *ResolveManualReviewCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
