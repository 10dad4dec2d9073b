package ports

import (
	"context"

	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/kernel"
)

// BuyerInfoRepository defines the persistence contract for the buyer info
// companion records. One record per order.
type BuyerInfoRepository interface {
	// Add persists buyer info for an order. Fails if a record for the
	// order already exists.
	Add(ctx context.Context, info *buyer.BuyerInfo) error

	// Update replaces the buyer info for an order.
	Update(ctx context.Context, info *buyer.BuyerInfo) error

	// GetByOrderID retrieves the buyer info for an order.
	// Returns errs.ObjectNotFoundError when none has been captured yet.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*buyer.BuyerInfo, error)
}
