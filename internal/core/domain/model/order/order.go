package order

import (
	"errors"
	"fmt"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/errs"
)

// Meta keys written by lifecycle operations. Values end up in the persisted
// meta document and in audit entry snapshots.
const (
	MetaKeyLastError     = "last_error"
	MetaKeyReviewReason  = "review_reason"
	MetaKeyFailureReason = "failure_reason"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrStaleState is the unwrap target for StaleStateError.
	ErrStaleState = errors.New("stale order state")
)

// StaleStateError is returned when the expected-status guard of a persisted
// update trips: the order's stored status no longer matches what the caller
// observed. The caller should re-read the order and decide whether its intent
// still applies. No mutation has happened.
type StaleStateError struct {
	OrderID  kernel.UUID
	Expected Status
}

func (e *StaleStateError) Error() string {
	return fmt.Sprintf("stale order state: order %s is no longer in %s", e.OrderID, e.Expected)
}

func (e *StaleStateError) Unwrap() error {
	return ErrStaleState
}

// Order is the aggregate root of the dropship order lifecycle. It carries the
// commercial terms captured from the sales channel, the references produced
// by the supplier and forwarder integrations, and the lifecycle status.
//
// Invariants:
//   - Identity, platform reference and commercial terms are immutable after creation
//   - Status only moves along edges of the Status state machine
//   - The supplier order id is set exactly when the supplier purchase is confirmed
//   - The forwarder job id is set exactly when the forwarder accepts the shipment
//   - Terminal orders (DONE, FAILED) reject every further mutation
//
// All status mutations go through the methods below; no other component may
// write the status directly.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// platform names the originating sales channel (e.g. "mercari")
	platform string

	// platformOrderRef is the sales-channel order reference
	platformOrderRef string

	// productID is a weak reference to the catalog entry being resold
	productID string

	// qty is the purchased quantity
	qty int

	// unitPrice is the resale price per unit
	unitPrice kernel.Money

	// status is the current state in the order lifecycle
	status Status

	// resumeStatus is the pipeline state the order departed when entering
	// RETRYING or MANUAL_REVIEW; Unknown otherwise
	resumeStatus Status

	// retryCount counts consecutive transient failures of the interrupted
	// operation; reset when the operation eventually succeeds
	retryCount int

	// supplierOrderID is set after a successful supplier purchase
	supplierOrderID *string

	// forwarderJobID is set after a successful forwarder submission
	forwarderJobID *string

	// meta holds free-form annotations (error details, provider responses)
	meta map[string]string

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in PENDING status.
//
// Parameters:
//   - id: unique order identifier
//   - platform: originating sales channel, required
//   - platformOrderRef: sales-channel order reference, required
//   - productID: catalog entry reference, required
//   - qty: purchased quantity, must be positive
//   - unitPrice: resale price per unit
//
// All parameters are validated; errors are joined so a caller sees every
// violation at once.
func NewOrder(
	id kernel.UUID,
	platform string,
	platformOrderRef string,
	productID string,
	qty int,
	unitPrice kernel.Money,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        Pending,
		resumeStatus:  Unknown,
		meta:          map[string]string{},
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setPlatform(platform),
		o.setPlatformOrderRef(platformOrderRef),
		o.setProductID(productID),
		o.setQty(qty),
		o.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. It revalidates the
// cross-field invariants (status vs. supplier order id and forwarder job id)
// so corrupt rows surface as errors instead of invalid aggregates.
func RestoreOrder(
	id kernel.UUID,
	platform string,
	platformOrderRef string,
	productID string,
	qty int,
	unitPrice kernel.Money,
	status Status,
	resumeStatus Status,
	retryCount int,
	supplierOrderID *string,
	forwarderJobID *string,
	meta map[string]string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, platform, platformOrderRef, productID, qty, unitPrice)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveSupplierOrder(supplierOrderID != nil); err != nil {
		return nil, err
	}
	if err = status.ValidateCanHaveForwarderJob(forwarderJobID != nil); err != nil {
		return nil, err
	}
	if status.IsExceptional() && !resumeStatus.IsPipeline() {
		return nil, errs.NewValueIsInvalidErrorWithCause("resumeStatus",
			fmt.Errorf("%s requires a pipeline resume status, got %s", status, resumeStatus))
	}
	if retryCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("retryCount",
			fmt.Errorf("%d is negative", retryCount))
	}

	o.status = status
	o.resumeStatus = resumeStatus
	o.retryCount = retryCount
	o.supplierOrderID = supplierOrderID
	o.forwarderJobID = forwarderJobID
	if meta != nil {
		o.meta = meta
	}
	o.createdAt = createdAt
	o.updatedAt = updatedAt

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Platform returns the originating sales channel.
func (o *Order) Platform() string {
	return o.platform
}

// PlatformOrderRef returns the sales-channel order reference.
func (o *Order) PlatformOrderRef() string {
	return o.platformOrderRef
}

// ProductID returns the catalog entry reference.
func (o *Order) ProductID() string {
	return o.productID
}

// Qty returns the purchased quantity.
func (o *Order) Qty() int {
	return o.qty
}

// UnitPrice returns the resale price per unit.
func (o *Order) UnitPrice() kernel.Money {
	return o.unitPrice
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// ResumeStatus returns the pipeline state the order departed when entering
// an exception state, or Unknown.
func (o *Order) ResumeStatus() Status {
	return o.resumeStatus
}

// RetryCount returns the number of consecutive transient failures recorded
// for the interrupted operation.
func (o *Order) RetryCount() int {
	return o.retryCount
}

// SupplierOrderID returns the supplier order reference, nil before the
// supplier purchase is confirmed.
func (o *Order) SupplierOrderID() *string {
	return o.supplierOrderID
}

// ForwarderJobID returns the forwarder job reference, nil before the
// forwarder accepts the shipment.
func (o *Order) ForwarderJobID() *string {
	return o.forwarderJobID
}

// Meta returns a copy of the order's annotations.
func (o *Order) Meta() map[string]string {
	m := make(map[string]string, len(o.meta))
	for k, v := range o.meta {
		m[k] = v
	}
	return m
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Advance moves the order along the happy-path edge to target. Only the
// edges into SUPPLIER_ORDERING and DONE are open here.
//
// The edges into ORDERED_SUPPLIER and SENT_TO_FORWARDER carry evidence from
// an external call and must go through ConfirmSupplierOrder and
// ConfirmShipment instead; Advance rejects them so the supplier-order-id and
// forwarder-job-id invariants cannot be bypassed. The edges into
// BUYER_INFO_SET and FORWARDER_SENDING require a complete buyer record and
// must go through CompleteBuyerInfo and BeginShipment.
func (o *Order) Advance(target Status) error {
	switch target {
	case OrderedSupplier, SentToForwarder, BuyerInfoSet, ForwarderSending:
		return &IllegalTransitionError{From: o.status, To: target}
	}

	newStatus, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// CompleteBuyerInfo moves the order ORDERED_SUPPLIER → BUYER_INFO_SET. The
// caller must have stored a complete buyer record for the order first.
func (o *Order) CompleteBuyerInfo() error {
	newStatus, err := o.status.Advance(BuyerInfoSet)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// BeginShipment claims the order for forwarder submission, moving it
// BUYER_INFO_SET → FORWARDER_SENDING.
func (o *Order) BeginShipment() error {
	newStatus, err := o.status.Advance(ForwarderSending)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// ConfirmSupplierOrder records a successful supplier purchase: the order
// moves SUPPLIER_ORDERING → ORDERED_SUPPLIER and the supplier order id is
// set. The retry bookkeeping is cleared because the operation succeeded.
func (o *Order) ConfirmSupplierOrder(supplierOrderID string) error {
	if o.status != SupplierOrdering {
		return &IllegalTransitionError{From: o.status, To: OrderedSupplier}
	}
	if supplierOrderID == "" {
		return errs.NewValueIsRequiredError("supplierOrderID")
	}

	o.status = OrderedSupplier
	o.supplierOrderID = &supplierOrderID
	o.clearRetryState()
	o.touch()
	return nil
}

// ConfirmShipment records a successful forwarder submission: the order moves
// FORWARDER_SENDING → SENT_TO_FORWARDER and the forwarder job id is set.
func (o *Order) ConfirmShipment(forwarderJobID string) error {
	if o.status != ForwarderSending {
		return &IllegalTransitionError{From: o.status, To: SentToForwarder}
	}
	if forwarderJobID == "" {
		return errs.NewValueIsRequiredError("forwarderJobID")
	}

	o.status = SentToForwarder
	o.forwarderJobID = &forwarderJobID
	o.clearRetryState()
	o.touch()
	return nil
}

// MarkManualReview routes the order to MANUAL_REVIEW with the given reason.
// When leaving a pipeline state, that state is remembered so an operator can
// send the order back into the pipeline where it left. When leaving RETRYING,
// the original departed state is kept, and re-marking an order already under
// review refreshes the reason without touching the departed state.
func (o *Order) MarkManualReview(reason string) error {
	newStatus, err := o.status.EnterManualReview()
	if err != nil {
		return err
	}

	if o.status.IsPipeline() {
		o.resumeStatus = o.status
	}
	o.status = newStatus
	o.annotate(MetaKeyReviewReason, reason)
	o.touch()
	return nil
}

// MarkRetrying routes the order to RETRYING after the first transient failure
// of the operation running in the current pipeline state. The retry counter
// starts at one failure.
func (o *Order) MarkRetrying(reason string) error {
	newStatus, err := o.status.EnterRetrying()
	if err != nil {
		return err
	}

	o.resumeStatus = o.status
	o.status = newStatus
	o.retryCount = 1
	o.annotate(MetaKeyLastError, reason)
	o.touch()
	return nil
}

// RecordRetryFailure registers another consecutive transient failure while in
// RETRYING. When the counter exceeds maxRetries the order is forced to FAILED
// and true is returned; otherwise the order stays in RETRYING.
func (o *Order) RecordRetryFailure(reason string, maxRetries int) (bool, error) {
	if o.status != Retrying {
		return false, &IllegalTransitionError{From: o.status, To: Retrying}
	}

	o.retryCount++
	o.annotate(MetaKeyLastError, reason)
	if o.retryCount > maxRetries {
		if err := o.Fail(fmt.Sprintf("retry budget of %d exceeded: %s", maxRetries, reason)); err != nil {
			return false, err
		}
		return true, nil
	}

	o.touch()
	return false, nil
}

// ResumeFromRetry returns a RETRYING order to the pipeline state it departed,
// clearing the retry bookkeeping. Called when a re-attempt of the interrupted
// operation succeeded (or is about to be confirmed).
func (o *Order) ResumeFromRetry() error {
	if o.status != Retrying {
		return &IllegalTransitionError{From: o.status, To: o.resumeStatus}
	}
	if !o.resumeStatus.IsPipeline() {
		return errs.NewValueIsInvalidErrorWithCause("resumeStatus",
			fmt.Errorf("%s is not a pipeline status", o.resumeStatus))
	}

	o.status = o.resumeStatus
	o.clearRetryState()
	o.touch()
	return nil
}

// ReturnFromReview sends a MANUAL_REVIEW order back into the pipeline at the
// state it departed. Only an explicit operator action calls this.
func (o *Order) ReturnFromReview() error {
	if o.status != ManualReview {
		return &IllegalTransitionError{From: o.status, To: o.resumeStatus}
	}
	if !o.resumeStatus.IsPipeline() {
		return errs.NewValueIsInvalidErrorWithCause("resumeStatus",
			fmt.Errorf("%s is not a pipeline status", o.resumeStatus))
	}

	o.status = o.resumeStatus
	o.clearRetryState()
	o.touch()
	return nil
}

// Fail moves the order to the terminal FAILED status with the given reason.
// Legal from every non-terminal state.
func (o *Order) Fail(reason string) error {
	newStatus, err := o.status.EnterFailed()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.resumeStatus = Unknown
	o.annotate(MetaKeyFailureReason, reason)
	o.touch()
	return nil
}

func (o *Order) clearRetryState() {
	o.resumeStatus = Unknown
	o.retryCount = 0
}

func (o *Order) annotate(key, value string) {
	if value == "" {
		return
	}
	o.meta[key] = value
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setPlatform(platform string) error {
	if platform == "" {
		return errs.NewValueIsRequiredError("platform")
	}
	o.platform = platform
	return nil
}

func (o *Order) setPlatformOrderRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("platformOrderRef")
	}
	o.platformOrderRef = ref
	return nil
}

func (o *Order) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productID")
	}
	o.productID = productID
	return nil
}

func (o *Order) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	o.qty = qty
	return nil
}

func (o *Order) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}
	o.unitPrice = unitPrice
	return nil
}
