package commands

import (
	"context"
	"strconv"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
)

// routeExternalFailure applies the failure policy after an external call
// failed: transient errors send the order to RETRYING (or burn retry budget
// when it is already there), fatal errors to FAILED, everything else to
// MANUAL_REVIEW. Runs in its own transaction (uow must be fresh) because the
// failed call happened outside any transaction.
//
// Returns the routing persistence error, not the call error; the caller is
// expected to surface the original failure to its own caller.
func routeExternalFailure(
	ctx context.Context,
	uow OrderUoW,
	orderID kernel.UUID,
	actor string,
	callErr error,
	router services.FailureRouter,
	maxRetries int,
) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	expected := aggregate.Status()
	reason := callErr.Error()
	action := ""

	switch router.Classify(callErr) {
	case services.RouteRetry:
		if expected == order.Retrying {
			failed, recordErr := aggregate.RecordRetryFailure(reason, maxRetries)
			if recordErr != nil {
				return recordErr
			}
			action = audit.ActionRetryScheduled
			if failed {
				action = audit.ActionFailed
			}
		} else {
			if err = aggregate.MarkRetrying(reason); err != nil {
				return err
			}
			action = audit.ActionRetryScheduled
		}
	case services.RouteFail:
		if err = aggregate.Fail(reason); err != nil {
			return err
		}
		action = audit.ActionFailed
	default:
		if err = aggregate.MarkManualReview(reason); err != nil {
			return err
		}
		action = audit.ActionManualReview
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	meta := transitionMeta(expected.String(), aggregate.Status().String())
	meta[audit.MetaKeyReason] = reason
	if aggregate.RetryCount() > 0 {
		meta[audit.MetaKeyRetryCount] = strconv.Itoa(aggregate.RetryCount())
	}

	if err = appendAudit(ctx, uow.AuditLogRepository(), orderID, actor, action, meta); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
