// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read the database directly and return flat response types,
// bypassing the aggregates and their invariant checks.
package queries

import (
	"errors"
	"time"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/pkg/guard"
)

var ErrGetOrdersByStatusQueryIsNotConstructed = errors.New(
	"GetOrdersByStatusQuery must be created via NewGetOrdersByStatusQuery constructor",
)

// GetOrdersByStatusQuery retrieves orders filtered by lifecycle status.
// With no statuses given it returns every order. Results are newest first.
//
// Example:
//
//	query, _ := NewGetOrdersByStatusQuery(order.ManualReview)
//	handler := NewGetOrdersByStatusQueryHandler(db)
//	items, err := handler.Handle(ctx, query)
type GetOrdersByStatusQuery struct {
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewGetOrdersByStatusQuery creates a query for orders in the given statuses.
// Each status must be a known lifecycle status.
func NewGetOrdersByStatusQuery(statuses ...order.Status) (GetOrdersByStatusQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetOrdersByStatusQuery{}, err
		}
	}

	return GetOrdersByStatusQuery{
		statuses: statuses,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStatusQueryIsNotConstructed)
}

// Statuses returns the status filter, empty meaning no filter.
func (q GetOrdersByStatusQuery) Statuses() []order.Status {
	return q.statuses
}

// GetOrdersByStatusQueryResponse is one row of the order listing.
type GetOrdersByStatusQueryResponse struct {
	ID               kernel.UUID
	Platform         string
	PlatformOrderRef string
	ProductID        string
	Qty              int
	UnitPrice        kernel.Money
	Status           order.Status
	RetryCount       int
	SupplierOrderID  *string
	ForwarderJobID   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
