package commands

import (
	"context"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/order"
)

// ResolveManualReviewCommandHandler applies an operator's verdict to an order
// in MANUAL_REVIEW. The guard expects MANUAL_REVIEW, so two operators
// resolving the same item concurrently cannot both win.
type ResolveManualReviewCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResolveManualReviewCommandHandler creates a handler for review resolution.
func NewResolveManualReviewCommandHandler(uowFactory OrderUoWFactory) ResolveManualReviewCommandHandler {
	return ResolveManualReviewCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command.
func (h *ResolveManualReviewCommandHandler) Handle(ctx context.Context, cmd ResolveManualReviewCommand) error {
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
	if expected != order.ManualReview {
		return &order.IllegalTransitionError{From: expected, To: order.ManualReview}
	}

	if cmd.Verdict() == VerdictFail {
		err = aggregate.Fail(cmd.Note())
	} else {
		err = aggregate.ReturnFromReview()
	}
	if err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	meta := transitionMeta(expected.String(), aggregate.Status().String())
	meta["verdict"] = cmd.Verdict()
	if cmd.Note() != "" {
		meta[audit.MetaKeyReason] = cmd.Note()
	}
	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionReviewResolved, meta); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
