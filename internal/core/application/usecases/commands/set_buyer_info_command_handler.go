package commands

import (
	"context"
	"errors"

	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/pkg/errs"
)

// SetBuyerInfoCommandHandler captures the buyer's shipping details. When the
// order is waiting in ORDERED_SUPPLIER and the captured record is complete,
// the order advances to BUYER_INFO_SET in the same transaction; otherwise the
// record is stored and the order stays where it is.
type SetBuyerInfoCommandHandler struct {
	uowFactory UoWFactory
}

// NewSetBuyerInfoCommandHandler creates a handler for buyer info capture.
func NewSetBuyerInfoCommandHandler(uowFactory UoWFactory) SetBuyerInfoCommandHandler {
	return SetBuyerInfoCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the buyer info command. Capturing details is legal for any
// non-terminal order; the status transition only fires from ORDERED_SUPPLIER.
func (h *SetBuyerInfoCommandHandler) Handle(ctx context.Context, cmd SetBuyerInfoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	info, err := buyer.NewBuyerInfo(
		cmd.OrderID(),
		cmd.Name(),
		cmd.Phone(),
		cmd.Address1(),
		cmd.Address2(),
		cmd.Zip(),
		cmd.Country(),
		cmd.CustomsID(),
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if aggregate.Status().IsTerminal() {
		return &order.IllegalTransitionError{From: aggregate.Status(), To: order.BuyerInfoSet}
	}

	buyerRepo := uow.BuyerInfoRepository()
	_, err = buyerRepo.GetByOrderID(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if err = buyerRepo.Update(ctx, info); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		if err = buyerRepo.Add(ctx, info); err != nil {
			return err
		}
	default:
		return err
	}

	meta := map[string]string{"country": info.Country()}
	if aggregate.Status() == order.OrderedSupplier && info.IsComplete() {
		expected := aggregate.Status()
		if err = aggregate.CompleteBuyerInfo(); err != nil {
			return err
		}
		if err = orderRepo.UpdateInStatus(ctx, aggregate, expected); err != nil {
			return err
		}
		meta[audit.MetaKeyFromStatus] = expected.String()
		meta[audit.MetaKeyToStatus] = aggregate.Status().String()
	}

	if err = appendAudit(ctx, uow.AuditLogRepository(), aggregate.ID(), cmd.Actor(),
		audit.ActionBuyerInfoSet, meta); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
