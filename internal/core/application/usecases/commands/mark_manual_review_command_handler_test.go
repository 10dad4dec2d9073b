package commands_test

import (
	"testing"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewMarkManualReviewCommand_ReasonRequired(t *testing.T) {
	_, err := commands.NewMarkManualReviewCommand(kernel.NewUUID(), "", "api")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestMarkManualReviewCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewMarkManualReviewCommand(id, "price mismatch on channel", "operator:kei")

	aggregate := restoreTestOrder(id, order.OrderedSupplier)
	orderRepo := new(MockOrderRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.OrderedSupplier).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkManualReviewCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.ManualReview, aggregate.Status())
	assert.Equal(t, order.OrderedSupplier, aggregate.ResumeStatus())
	assert.Equal(t, "price mismatch on channel", aggregate.Meta()[order.MetaKeyReviewReason])
}

func TestMarkManualReviewCommandHandler_Handle_TerminalOrderRejected(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewMarkManualReviewCommand(id, "anything", "api")

	aggregate := restoreTestOrder(id, order.Failed)
	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewMarkManualReviewCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
}
