package ports

import (
	"context"

	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/order"
)

// SupplierGateway places purchase orders with the upstream supplier.
// Implementations translate transport failures into services.ExternalCallError
// so callers can classify them.
type SupplierGateway interface {
	// PlaceOrder submits the order to the supplier and returns the
	// supplier-side order identifier.
	PlaceOrder(ctx context.Context, aggregate *order.Order) (string, error)
}

// ForwarderGateway hands completed orders to the freight forwarder.
// Implementations translate transport failures into services.ExternalCallError
// so callers can classify them.
type ForwarderGateway interface {
	// SubmitShipment registers the shipment with the forwarder and returns
	// the forwarder-side job identifier.
	SubmitShipment(ctx context.Context, aggregate *order.Order, info *buyer.BuyerInfo) (string, error)
}
