// Package ports defines the contracts between the application core and the
// infrastructure adapters: repositories, the transactional unit of work, and
// the external integrations (supplier, forwarder, catalog).
package ports

import (
	"context"

	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate without a
	// status guard. Used for non-transition corrections only; lifecycle
	// transitions go through UpdateInStatus.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists changes to an order only if its stored
	// status still equals expected. This is the optimistic-concurrency
	// guard of the lifecycle: when another writer moved the order first,
	// an order.StaleStateError is returned and nothing is written.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStatuses retrieves all orders currently in any of the given
	// statuses, ordered by creation time descending. Used by the pipeline
	// workers to find work.
	GetAllInStatuses(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
}
