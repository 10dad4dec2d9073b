package commands

import (
	"context"

	"dropship/internal/core/domain/model/audit"
)

// AdvanceOrderCommandHandler moves an order along one happy-path edge.
// The persisted update is guarded on the status the handler read, so a
// concurrent transition makes this command fail with order.StaleStateError
// instead of silently overwriting the newer state.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAdvanceOrderCommandHandler creates a handler for advance operations.
func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the advance command: load, transition in memory, persist
// with the expected-status guard, append the audit entry, commit.
func (h *AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
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
	if err = aggregate.Advance(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
		return err
	}

	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionOrderAdvanced, transitionMeta(expected.String(), aggregate.Status().String())); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
