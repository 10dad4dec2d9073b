package commands

import (
	"context"

	"dropship/internal/core/domain/model/order"
)

// Step handlers the retry dispatcher delegates to. Narrow interfaces so
// tests can substitute the real handlers.
type (
	// SupplierOrderPlacer re-attempts the supplier purchase step.
	SupplierOrderPlacer interface {
		Handle(ctx context.Context, cmd PlaceSupplierOrderCommand) error
	}

	// ShipmentSubmitter re-attempts the forwarder handoff step.
	ShipmentSubmitter interface {
		Handle(ctx context.Context, cmd SubmitShipmentCommand) error
	}
)

// RetryOrderCommandHandler re-runs the interrupted operation of an order in
// RETRYING. The order's remembered departure state decides which step is
// re-attempted; the step handlers themselves settle the outcome, including
// burning retry budget on another transient failure.
type RetryOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	supplier   SupplierOrderPlacer
	forwarder  ShipmentSubmitter
}

// NewRetryOrderCommandHandler creates the retry dispatcher.
func NewRetryOrderCommandHandler(
	uowFactory OrderUoWFactory,
	supplier SupplierOrderPlacer,
	forwarder ShipmentSubmitter,
) RetryOrderCommandHandler {
	return RetryOrderCommandHandler{
		uowFactory: uowFactory,
		supplier:   supplier,
		forwarder:  forwarder,
	}
}

// Handle processes the retry command. Only orders in RETRYING are accepted.
func (h *RetryOrderCommandHandler) Handle(ctx context.Context, cmd RetryOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	_ = uow.Rollback(ctx)
	if err != nil {
		return err
	}

	if aggregate.Status() != order.Retrying {
		return &order.IllegalTransitionError{From: aggregate.Status(), To: order.Retrying}
	}

	switch aggregate.ResumeStatus() {
	case order.SupplierOrdering:
		stepCmd, err := NewPlaceSupplierOrderCommand(cmd.OrderID(), cmd.Actor())
		if err != nil {
			return err
		}
		return h.supplier.Handle(ctx, stepCmd)
	case order.ForwarderSending:
		stepCmd, err := NewSubmitShipmentCommand(cmd.OrderID(), cmd.Actor())
		if err != nil {
			return err
		}
		return h.forwarder.Handle(ctx, stepCmd)
	default:
		return &order.IllegalTransitionError{From: aggregate.Status(), To: aggregate.ResumeStatus()}
	}
}
