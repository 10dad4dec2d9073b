package commands

import (
	"context"
	"fmt"
	"strconv"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/core/ports"
	"dropship/internal/pkg/errs"
)

// SubmitShipmentCommandHandler runs the forwarder handoff step of the
// pipeline. Follows the same claim/settle shape as the supplier step: the
// order is parked in FORWARDER_SENDING before the external call and the
// outcome is settled in a second guarded transaction afterwards.
type SubmitShipmentCommandHandler struct {
	uowFactory UoWFactory
	forwarder  ports.ForwarderGateway
	router     services.FailureRouter
	maxRetries int
}

// NewSubmitShipmentCommandHandler creates a handler for the forwarder
// handoff step.
func NewSubmitShipmentCommandHandler(
	uowFactory UoWFactory,
	forwarder ports.ForwarderGateway,
	router services.FailureRouter,
	maxRetries int,
) SubmitShipmentCommandHandler {
	return SubmitShipmentCommandHandler{
		uowFactory: uowFactory,
		forwarder:  forwarder,
		router:     router,
		maxRetries: maxRetries,
	}
}

// Handle processes the shipment submission command. The buyer info must be
// complete before the forwarder is called; an incomplete record rejects the
// command without claiming the order.
func (h *SubmitShipmentCommandHandler) Handle(ctx context.Context, cmd SubmitShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, info, err := h.claim(ctx, cmd)
	if err != nil {
		return err
	}

	forwarderJobID, callErr := h.forwarder.SubmitShipment(ctx, aggregate, info)
	if callErr != nil {
		if routeErr := routeExternalFailure(
			ctx, h.uowFactory.Create(), cmd.OrderID(), cmd.Actor(), callErr, h.router, h.maxRetries,
		); routeErr != nil {
			return routeErr
		}
		return fmt.Errorf("submit shipment for order %s: %w", cmd.OrderID(), callErr)
	}

	return h.settle(ctx, cmd, forwarderJobID)
}

// claim loads the buyer info and moves the order into FORWARDER_SENDING.
// Orders already in FORWARDER_SENDING or RETRYING (with the forwarder step
// interrupted) are accepted as-is.
func (h *SubmitShipmentCommandHandler) claim(
	ctx context.Context,
	cmd SubmitShipmentCommand,
) (*order.Order, *buyer.BuyerInfo, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	info, err := uow.BuyerInfoRepository().GetByOrderID(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}
	if !info.IsComplete() {
		return nil, nil, errs.NewValueIsInvalidErrorWithCause("buyerInfo",
			fmt.Errorf("buyer info for order %s is incomplete", cmd.OrderID()))
	}

	switch aggregate.Status() {
	case order.BuyerInfoSet:
		expected := aggregate.Status()
		if err = aggregate.BeginShipment(); err != nil {
			return nil, nil, err
		}
		if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
			return nil, nil, err
		}
		if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
			audit.ActionOrderAdvanced, transitionMeta(expected.String(), aggregate.Status().String())); err != nil {
			return nil, nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, nil, err
		}
		return aggregate, info, nil

	case order.ForwarderSending:
		return aggregate, info, nil

	case order.Retrying:
		if aggregate.ResumeStatus() != order.ForwarderSending {
			return nil, nil, &order.IllegalTransitionError{From: aggregate.Status(), To: order.ForwarderSending}
		}
		if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
			audit.ActionRetryAttempted, map[string]string{
				audit.MetaKeyRetryCount: strconv.Itoa(aggregate.RetryCount()),
			}); err != nil {
			return nil, nil, err
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, nil, err
		}
		return aggregate, info, nil

	default:
		return nil, nil, &order.IllegalTransitionError{From: aggregate.Status(), To: order.ForwarderSending}
	}
}

// settle records the successful handoff in a fresh guarded transaction.
func (h *SubmitShipmentCommandHandler) settle(
	ctx context.Context,
	cmd SubmitShipmentCommand,
	forwarderJobID string,
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

	if err = aggregate.ConfirmShipment(forwarderJobID); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	meta := transitionMeta(expected.String(), aggregate.Status().String())
	meta["forwarder_job_id"] = forwarderJobID
	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionShipmentSent, meta); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
