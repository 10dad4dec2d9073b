// Package audit provides the append-only audit trail domain model for the
// order lifecycle. Every status transition produces exactly one Entry,
// persisted in the same atomic unit as the status change, so the trail is a
// complete and trustworthy history of each order.
//
// Entries are immutable: they are never updated or deleted in normal
// operation. Corrections to terminal orders are recorded as new entries.
package audit

import (
	"errors"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
)

// Action names recorded in the audit trail, one per lifecycle operation.
const (
	ActionOrderCreated   = "order.created"
	ActionOrderAdvanced  = "order.advanced"
	ActionSupplierOrder  = "order.supplier_ordered"
	ActionBuyerInfoSet   = "order.buyer_info_set"
	ActionShipmentSent   = "order.shipment_sent"
	ActionManualReview   = "order.manual_review"
	ActionRetryScheduled = "order.retry_scheduled"
	ActionRetryAttempted = "order.retry_attempted"
	ActionReviewResolved = "order.review_resolved"
	ActionFailed         = "order.failed"
)

// Meta keys used in entry snapshots.
const (
	MetaKeyFromStatus = "from_status"
	MetaKeyToStatus   = "to_status"
	MetaKeyReason     = "reason"
	MetaKeyRetryCount = "retry_count"
)

// ErrEntryIsNotConstructed is returned when using an improperly initialized Entry.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry or RestoreEntry constructor")

// Entry is one immutable record in the order audit trail: who did what to
// which order, when, with a snapshot of the relevant context.
type Entry struct {
	// orderID references the order this entry belongs to
	orderID kernel.UUID

	// actor identifies who or what triggered the change, e.g. "api",
	// "pipeline-worker" or an operator login
	actor string

	// action is one of the Action* names above
	action string

	// meta is a snapshot of the transition context (from/to status,
	// reasons, provider references)
	meta map[string]string

	// ts is the wall-clock time of the change
	ts time.Time

	isConstructed bool
}

// NewEntry creates an audit entry timestamped now.
func NewEntry(orderID kernel.UUID, actor string, action string, meta map[string]string) (*Entry, error) {
	return RestoreEntry(orderID, actor, action, meta, time.Now().UTC())
}

// RestoreEntry reconstructs an entry from persistence with its original timestamp.
func RestoreEntry(orderID kernel.UUID, actor string, action string, meta map[string]string, ts time.Time) (*Entry, error) {
	e := &Entry{
		meta:          map[string]string{},
		ts:            ts,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setOrderID(orderID),
		e.setActor(actor),
		e.setAction(action),
	); err != nil {
		return nil, err
	}

	for k, v := range meta {
		e.meta[k] = v
	}

	return e, nil
}

// Validate ensures the Entry instance was properly constructed.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// OrderID returns the identifier of the audited order.
func (e *Entry) OrderID() kernel.UUID {
	return e.orderID
}

// Actor returns who or what triggered the change.
func (e *Entry) Actor() string {
	return e.actor
}

// Action returns the recorded action name.
func (e *Entry) Action() string {
	return e.action
}

// Meta returns a copy of the context snapshot.
func (e *Entry) Meta() map[string]string {
	m := make(map[string]string, len(e.meta))
	for k, v := range e.meta {
		m[k] = v
	}
	return m
}

// Timestamp returns the wall-clock time of the change.
func (e *Entry) Timestamp() time.Time {
	return e.ts
}

func (e *Entry) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	e.orderID = orderID
	return nil
}

func (e *Entry) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	e.actor = actor
	return nil
}

func (e *Entry) setAction(action string) error {
	if action == "" {
		return errs.NewValueIsRequiredError("action")
	}
	e.action = action
	return nil
}
