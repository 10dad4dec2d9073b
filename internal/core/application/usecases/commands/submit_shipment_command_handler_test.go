package commands_test

import (
	"testing"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/domain/services"
	"dropship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubmitShipmentCommandHandler_Handle_SuccessFromBuyerInfoSet(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSubmitShipmentCommand(id, "job:forwarder")

	aggregate := restoreTestOrder(id, order.BuyerInfoSet)
	info := testBuyerInfo(id)
	forwarder := new(MockForwarderGateway)
	forwarder.On("SubmitShipment", mock.Anything, aggregate, info).Return("FWD-7", nil).Once()

	orderRepo := new(MockOrderRepository)
	buyerRepo := new(MockBuyerInfoRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		// claim: BUYER_INFO_SET -> FORWARDER_SENDING
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		uow.On("BuyerInfoRepository").Return(buyerRepo).Once(),
		buyerRepo.On("GetByOrderID", mock.Anything, id).Return(info, nil).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.BuyerInfoSet).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		// settle: FORWARDER_SENDING -> SENT_TO_FORWARDER
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.ForwarderSending).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewSubmitShipmentCommandHandler(factory, forwarder, services.NewDefaultFailureRouter(), testMaxRetries)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.SentToForwarder, aggregate.Status())
	require.NotNil(t, aggregate.ForwarderJobID())
	assert.Equal(t, "FWD-7", *aggregate.ForwarderJobID())
	forwarder.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitShipmentCommandHandler_Handle_MissingBuyerInfo(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSubmitShipmentCommand(id, "job:forwarder")

	aggregate := restoreTestOrder(id, order.BuyerInfoSet)
	orderRepo := new(MockOrderRepository)
	buyerRepo := new(MockBuyerInfoRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		uow.On("BuyerInfoRepository").Return(buyerRepo).Once(),
		buyerRepo.On("GetByOrderID", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("orderID", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitShipmentCommandHandler(
		factory, new(MockForwarderGateway), services.NewDefaultFailureRouter(), testMaxRetries)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, order.BuyerInfoSet, aggregate.Status())
}

func TestSubmitShipmentCommandHandler_Handle_TransientFailureSchedulesRetry(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSubmitShipmentCommand(id, "job:forwarder")

	aggregate := restoreTestOrder(id, order.BuyerInfoSet)
	info := testBuyerInfo(id)
	callErr := services.NewExternalCallError(services.CodeRateLimited, nil)
	forwarder := new(MockForwarderGateway)
	forwarder.On("SubmitShipment", mock.Anything, aggregate, info).Return("", callErr).Once()

	orderRepo := new(MockOrderRepository)
	buyerRepo := new(MockBuyerInfoRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		// claim
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		uow.On("BuyerInfoRepository").Return(buyerRepo).Once(),
		buyerRepo.On("GetByOrderID", mock.Anything, id).Return(info, nil).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.BuyerInfoSet).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		// failure routing: FORWARDER_SENDING -> RETRYING
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.ForwarderSending).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewSubmitShipmentCommandHandler(factory, forwarder, services.NewDefaultFailureRouter(), testMaxRetries)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrExternalCall)
	assert.Equal(t, order.Retrying, aggregate.Status())
	assert.Equal(t, order.ForwarderSending, aggregate.ResumeStatus())
	assert.Equal(t, 1, aggregate.RetryCount())
}

func TestSubmitShipmentCommandHandler_Handle_UnknownRejectionGoesToReview(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSubmitShipmentCommand(id, "job:forwarder")

	aggregate := restoreTestOrder(id, order.ForwarderSending)
	info := testBuyerInfo(id)
	callErr := services.NewExternalCallError("CUSTOMS_DATA_REJECTED", nil)
	forwarder := new(MockForwarderGateway)
	forwarder.On("SubmitShipment", mock.Anything, aggregate, info).Return("", callErr).Once()

	orderRepo := new(MockOrderRepository)
	buyerRepo := new(MockBuyerInfoRepository)
	auditRepo := new(MockAuditLogRepository)
	uow := new(MockUoW)
	mock.InOrder(
		// claim accepts FORWARDER_SENDING as-is, read only
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		uow.On("BuyerInfoRepository").Return(buyerRepo).Once(),
		buyerRepo.On("GetByOrderID", mock.Anything, id).Return(info, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		// failure routing: FORWARDER_SENDING -> MANUAL_REVIEW
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, id).Return(aggregate, nil).Once(),
		orderRepo.On("UpdateInStatus", mock.Anything, aggregate, order.ForwarderSending).Return(nil).Once(),
		uow.On("AuditLogRepository").Return(auditRepo).Once(),
		auditRepo.On("Append", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Twice()

	h := commands.NewSubmitShipmentCommandHandler(factory, forwarder, services.NewDefaultFailureRouter(), testMaxRetries)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, services.ErrExternalCall)
	assert.Equal(t, order.ManualReview, aggregate.Status())
	assert.Equal(t, order.ForwarderSending, aggregate.ResumeStatus())
}
