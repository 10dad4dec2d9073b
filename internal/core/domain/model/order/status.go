package order

import (
	"errors"
	"fmt"

	"dropship/internal/pkg/errs"
)

// ErrIllegalTransition is the unwrap target for IllegalTransitionError.
// Use errors.Is to detect rejected status transitions.
var ErrIllegalTransition = errors.New("illegal status transition")

// IllegalTransitionError is returned when a requested status change does not
// match any edge of the lifecycle. It is a programming or operations error
// and is surfaced to the caller without mutating the order.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal status transition: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Status represents the lifecycle state of a dropship order.
// It implements a state machine with an explicit transition table so that
// orders only ever move along defined edges.
//
// Happy path:
//
//	PENDING → SUPPLIER_ORDERING → ORDERED_SUPPLIER → BUYER_INFO_SET
//	        → FORWARDER_SENDING → SENT_TO_FORWARDER → DONE
//
// Exception edges: every non-terminal state may enter MANUAL_REVIEW (policy
// violation) and every pipeline state may enter RETRYING (transient failure).
// Both exception states return to the state the order departed, or end in
// FAILED. DONE and FAILED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order.
	Pending

	// SupplierOrdering means a purchase attempt against the supplier
	// marketplace is in flight.
	SupplierOrdering

	// OrderedSupplier means the supplier purchase succeeded and a
	// supplier order id is recorded.
	OrderedSupplier

	// BuyerInfoSet means complete shipping and customs data has been
	// captured for the buyer.
	BuyerInfoSet

	// ForwarderSending means a shipment submission to the forwarder is
	// in flight.
	ForwarderSending

	// SentToForwarder means the forwarder accepted the shipment and a
	// forwarder job id is recorded.
	SentToForwarder

	// Done is the terminal success state.
	Done

	// ManualReview means a policy violation stopped the pipeline and an
	// operator must resolve the order.
	ManualReview

	// Retrying means a transient failure interrupted the pipeline and the
	// operation will be re-attempted up to the configured retry budget.
	Retrying

	// Failed is the terminal failure state.
	Failed
)

// getStatusStrings returns a map of Status values to their wire names.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "UNKNOWN",
		Pending:          "PENDING",
		SupplierOrdering: "SUPPLIER_ORDERING",
		OrderedSupplier:  "ORDERED_SUPPLIER",
		BuyerInfoSet:     "BUYER_INFO_SET",
		ForwarderSending: "FORWARDER_SENDING",
		SentToForwarder:  "SENT_TO_FORWARDER",
		Done:             "DONE",
		ManualReview:     "MANUAL_REVIEW",
		Retrying:         "RETRYING",
		Failed:           "FAILED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	m := getStatusStrings()
	delete(m, Unknown)
	return m
}

// getPipelineSuccessors is the happy-path transition table: each pipeline
// state maps to the single state that follows it.
func getPipelineSuccessors() map[Status]Status {
	return map[Status]Status{
		Pending:          SupplierOrdering,
		SupplierOrdering: OrderedSupplier,
		OrderedSupplier:  BuyerInfoSet,
		BuyerInfoSet:     ForwarderSending,
		ForwarderSending: SentToForwarder,
		SentToForwarder:  Done,
	}
}

// StatusFromString parses a wire name (e.g. "PENDING") into a Status.
// Returns an error for unknown names, including "UNKNOWN" itself.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, e.g. "SUPPLIER_ORDERING".
// Implements fmt.Stringer; safe on any value, invalid values render "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status is DONE or FAILED.
// Terminal statuses are immutable with respect to further transitions.
func (s Status) IsTerminal() bool {
	return s == Done || s == Failed
}

// IsExceptional reports whether the status is one of the exception states
// (MANUAL_REVIEW or RETRYING).
func (s Status) IsExceptional() bool {
	return s == ManualReview || s == Retrying
}

// IsPipeline reports whether the status is one of the happy-path states
// (PENDING through SENT_TO_FORWARDER).
func (s Status) IsPipeline() bool {
	_, ok := getPipelineSuccessors()[s]
	return ok
}

// Next returns the happy-path successor of a pipeline status.
// Returns an IllegalTransitionError when the status has no successor.
func (s Status) Next() (Status, error) {
	next, ok := getPipelineSuccessors()[s]
	if !ok {
		return Unknown, &IllegalTransitionError{From: s, To: Unknown}
	}
	return next, nil
}

// Advance validates the happy-path edge from the current status to target
// and returns target. Any other pair yields an IllegalTransitionError.
func (s Status) Advance(target Status) (Status, error) {
	next, ok := getPipelineSuccessors()[s]
	if !ok || next != target {
		return Unknown, &IllegalTransitionError{From: s, To: target}
	}
	return target, nil
}

// EnterManualReview transitions to MANUAL_REVIEW.
// Legal from every non-terminal state, including RETRYING and MANUAL_REVIEW
// itself: re-marking an order already under review just refreshes the reason.
func (s Status) EnterManualReview() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, &IllegalTransitionError{From: s, To: ManualReview}
	}
	return ManualReview, nil
}

// EnterRetrying transitions to RETRYING. Legal only from a pipeline state:
// a retry is always anchored to the operation it interrupted.
func (s Status) EnterRetrying() (Status, error) {
	if !s.IsPipeline() {
		return Unknown, &IllegalTransitionError{From: s, To: Retrying}
	}
	return Retrying, nil
}

// EnterFailed transitions to FAILED. Legal from every non-terminal state.
func (s Status) EnterFailed() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, &IllegalTransitionError{From: s, To: Failed}
	}
	return Failed, nil
}

// ValidateCanHaveSupplierOrder checks the consistency between a status and
// the presence of a supplier order id.
//
// Rules:
//   - Pipeline states before ORDERED_SUPPLIER must not carry a supplier order id
//   - Pipeline states at or past ORDERED_SUPPLIER (and DONE) must carry one
//   - Exception and FAILED states may or may not, depending on how far the
//     order got before leaving the pipeline
func (s Status) ValidateCanHaveSupplierOrder(present bool) error {
	if s.IsExceptional() || s == Failed {
		return nil
	}
	atOrPast := s >= OrderedSupplier && s <= Done
	if present && !atOrPast {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s must not have a supplier order id", s))
	}
	if !present && atOrPast {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s must have a supplier order id", s))
	}
	return nil
}

// ValidateCanHaveForwarderJob checks the consistency between a status and
// the presence of a forwarder job id, mirroring ValidateCanHaveSupplierOrder
// for the SENT_TO_FORWARDER milestone.
func (s Status) ValidateCanHaveForwarderJob(present bool) error {
	if s.IsExceptional() || s == Failed {
		return nil
	}
	atOrPast := s >= SentToForwarder && s <= Done
	if present && !atOrPast {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s must not have a forwarder job id", s))
	}
	if !present && atOrPast {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s must have a forwarder job id", s))
	}
	return nil
}
