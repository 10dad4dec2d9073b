package commands

import (
	"context"

	"dropship/internal/core/domain/model/audit"
)

// MarkManualReviewCommandHandler routes an order to MANUAL_REVIEW.
type MarkManualReviewCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkManualReviewCommandHandler creates a handler for manual review routing.
func NewMarkManualReviewCommandHandler(uowFactory OrderUoWFactory) MarkManualReviewCommandHandler {
	return MarkManualReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual review command with the expected-status guard.
func (h *MarkManualReviewCommandHandler) Handle(ctx context.Context, cmd MarkManualReviewCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

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
	if err = aggregate.MarkManualReview(cmd.Reason()); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	meta := transitionMeta(expected.String(), aggregate.Status().String())
	meta[audit.MetaKeyReason] = cmd.Reason()
	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionManualReview, meta); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
