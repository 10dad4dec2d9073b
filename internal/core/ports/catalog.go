package ports

import (
	"context"

	"dropship/internal/core/domain/model/kernel"
)

// Product is a read model of a catalog item used to validate and price
// incoming orders.
type Product struct {
	ID        string
	SKU       string
	Title     string
	UnitPrice kernel.Money
	Available bool
}

// CatalogClient resolves product data from the catalog service.
type CatalogClient interface {
	// GetProduct fetches a product by ID.
	// Returns errs.ObjectNotFoundError when the catalog has no such product.
	GetProduct(ctx context.Context, productID string) (*Product, error)
}
