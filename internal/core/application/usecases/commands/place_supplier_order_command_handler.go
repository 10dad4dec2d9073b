package commands

import (
	"context"
	"fmt"
	"strconv"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/core/ports"
)

// PlaceSupplierOrderCommandHandler runs the supplier purchase step of the
// pipeline. The external call is the slow and unreliable part, so the handler
// works in two phases around it:
//
//  1. Claim: the order is moved to SUPPLIER_ORDERING and committed, with the
//     expected-status guard rejecting a concurrent claim of the same order.
//  2. Settle: after the call, a second guarded transaction either confirms
//     the purchase (recording the supplier order id) or routes the failure
//     per the retry policy.
//
// A crash between the phases leaves the order parked in SUPPLIER_ORDERING,
// where the recovery sweep picks it up again.
type PlaceSupplierOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	supplier   ports.SupplierGateway
	router     services.FailureRouter
	maxRetries int
}

// NewPlaceSupplierOrderCommandHandler creates a handler for the supplier
// purchase step.
func NewPlaceSupplierOrderCommandHandler(
	uowFactory OrderUoWFactory,
	supplier ports.SupplierGateway,
	router services.FailureRouter,
	maxRetries int,
) PlaceSupplierOrderCommandHandler {
	return PlaceSupplierOrderCommandHandler{
		uowFactory: uowFactory,
		supplier:   supplier,
		router:     router,
		maxRetries: maxRetries,
	}
}

// Handle processes the supplier purchase command.
func (h *PlaceSupplierOrderCommandHandler) Handle(ctx context.Context, cmd PlaceSupplierOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := h.claim(ctx, cmd)
	if err != nil {
		return err
	}

	supplierOrderID, callErr := h.supplier.PlaceOrder(ctx, aggregate)
	if callErr != nil {
		if routeErr := routeExternalFailure(
			ctx, h.uowFactory.Create(), cmd.OrderID(), cmd.Actor(), callErr, h.router, h.maxRetries,
		); routeErr != nil {
			return routeErr
		}
		return fmt.Errorf("place supplier order %s: %w", cmd.OrderID(), callErr)
	}

	return h.settle(ctx, cmd, supplierOrderID)
}

// claim moves the order into SUPPLIER_ORDERING and commits, so a concurrent
// worker claiming the same order trips the status guard. Orders already in
// SUPPLIER_ORDERING or RETRYING (with the supplier step interrupted) are
// accepted as-is.
func (h *PlaceSupplierOrderCommandHandler) claim(
	ctx context.Context,
	cmd PlaceSupplierOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	switch aggregate.Status() {
	case order.Pending:
		expected := aggregate.Status()
		if err = aggregate.Advance(order.SupplierOrdering); err != nil {
			return nil, err
		}
		if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
			return nil, err
		}
		if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
			audit.ActionOrderAdvanced, transitionMeta(expected.String(), aggregate.Status().String())); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return aggregate, nil

	case order.SupplierOrdering:
		return aggregate, nil

	case order.Retrying:
		if aggregate.ResumeStatus() != order.SupplierOrdering {
			return nil, &order.IllegalTransitionError{From: aggregate.Status(), To: order.SupplierOrdering}
		}
		if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
			audit.ActionRetryAttempted, map[string]string{
				audit.MetaKeyRetryCount: strconv.Itoa(aggregate.RetryCount()),
			}); err != nil {
			return nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return aggregate, nil

	default:
		return nil, &order.IllegalTransitionError{From: aggregate.Status(), To: order.SupplierOrdering}
	}
}

// settle records the successful purchase in a fresh guarded transaction. The
// order is re-read because the claim transaction closed before the call.
func (h *PlaceSupplierOrderCommandHandler) settle(
	ctx context.Context,
	cmd PlaceSupplierOrderCommand,
	supplierOrderID string,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expected := aggregate.Status()
	if expected == order.Retrying {
		if err = aggregate.ResumeFromRetry(); err != nil {
			return err
		}
	}

	if err = aggregate.ConfirmSupplierOrder(supplierOrderID); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	meta := transitionMeta(expected.String(), aggregate.Status().String())
	meta["supplier_order_id"] = supplierOrderID
	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionSupplierOrder, meta); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
