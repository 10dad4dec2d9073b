package queries

import (
	"errors"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/pkg/guard"
)

var ErrGetOrderAuditTrailQueryIsNotConstructed = errors.New(
	"GetOrderAuditTrailQuery must be created via NewGetOrderAuditTrailQuery constructor",
)

// GetOrderAuditTrailQuery retrieves the full audit history of one order,
// oldest entry first.
type GetOrderAuditTrailQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderAuditTrailQuery creates a query for an order's audit trail.
func NewGetOrderAuditTrailQuery(orderID kernel.UUID) (GetOrderAuditTrailQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderAuditTrailQuery{}, err
	}

	return GetOrderAuditTrailQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderAuditTrailQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderAuditTrailQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q GetOrderAuditTrailQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderAuditTrailQueryResponse is one entry of the audit trail.
type GetOrderAuditTrailQueryResponse struct {
	Actor     string
	Action    string
	Meta      map[string]string
	Timestamp time.Time
}
