package commands

import (
	"context"
	"fmt"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/ports"
	"dropship/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Resolves the product from the catalog, creates the order in PENDING status
// and writes the creation audit entry in the same transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, catalog)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "mercari", "M-12345", "prod-77", 1, "api")
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogClient
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence and a CatalogClient
// to price and validate the product.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, catalog ports.CatalogClient) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the order creation command.
// The catalog lookup happens before the transaction opens; an unknown or
// unavailable product rejects the command without touching the database.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	product, err := h.catalog.GetProduct(ctx, cmd.ProductID())
	if err != nil {
		return fmt.Errorf("resolve product %s: %w", cmd.ProductID(), err)
	}
	if !product.Available {
		return errs.NewValueIsInvalidErrorWithCause("productID",
			fmt.Errorf("product %s is not available", cmd.ProductID()))
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Platform(),
		cmd.PlatformOrderRef(),
		cmd.ProductID(),
		cmd.Qty(),
		product.UnitPrice,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionOrderCreated, map[string]string{
			audit.MetaKeyToStatus: aggregate.Status().String(),
		}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
