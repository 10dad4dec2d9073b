package commands_test

import (
	"context"
	"errors"
	"time"

	"dropship/internal/core/application/usecases/commands"
	"dropship/internal/core/domain/model/audit"
	"dropship/internal/core/domain/model/buyer"
	"dropship/internal/core/domain/model/kernel"
	"dropship/internal/core/domain/model/order"
	"dropship/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateInStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatuses(_ context.Context, _ ...order.Status) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockBuyerInfoRepository struct{ mock.Mock }

func (m *MockBuyerInfoRepository) Add(ctx context.Context, info *buyer.BuyerInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

func (m *MockBuyerInfoRepository) Update(ctx context.Context, info *buyer.BuyerInfo) error {
	args := m.Called(ctx, info)
	return args.Error(0)
}

func (m *MockBuyerInfoRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*buyer.BuyerInfo, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*buyer.BuyerInfo), args.Error(1)
}

type MockAuditLogRepository struct{ mock.Mock }

func (m *MockAuditLogRepository) Append(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogRepository) ListByOrderID(_ context.Context, _ kernel.UUID) ([]*audit.Entry, error) {
	return nil, errors.New("not implemented in mock")
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) AuditLogRepository() ports.AuditLogRepository {
	args := m.Called()
	return args.Get(0).(ports.AuditLogRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockUoW struct {
	MockOrderUoW
}

func (m *MockUoW) BuyerInfoRepository() ports.BuyerInfoRepository {
	args := m.Called()
	return args.Get(0).(ports.BuyerInfoRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockCatalogClient struct{ mock.Mock }

func (m *MockCatalogClient) GetProduct(ctx context.Context, productID string) (*ports.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Product), args.Error(1)
}

type MockSupplierGateway struct{ mock.Mock }

func (m *MockSupplierGateway) PlaceOrder(ctx context.Context, o *order.Order) (string, error) {
	args := m.Called(ctx, o)
	return args.String(0), args.Error(1)
}

type MockForwarderGateway struct{ mock.Mock }

func (m *MockForwarderGateway) SubmitShipment(
	ctx context.Context,
	o *order.Order,
	info *buyer.BuyerInfo,
) (string, error) {
	args := m.Called(ctx, o, info)
	return args.String(0), args.Error(1)
}

// newTestOrder builds a pending order for handler tests.
func newTestOrder(id kernel.UUID) *order.Order {
	price, _ := kernel.NewMoney(1999, "USD")
	o, _ := order.NewOrder(id, "mercari", "M-1001", "prod-1", 1, price)
	return o
}

// restoreTestOrder rebuilds an order in the given status, with plausible
// companion fields for that status.
func restoreTestOrder(id kernel.UUID, status order.Status) *order.Order {
	price, _ := kernel.NewMoney(1999, "USD")
	now := time.Now().UTC()

	var supplierID, forwarderID *string
	resume := order.Unknown
	retries := 0
	switch status {
	case order.OrderedSupplier, order.BuyerInfoSet, order.ForwarderSending:
		s := "SUP-1"
		supplierID = &s
	case order.SentToForwarder, order.Done:
		s, f := "SUP-1", "FWD-1"
		supplierID, forwarderID = &s, &f
	case order.Retrying:
		resume = order.SupplierOrdering
		retries = 1
	case order.ManualReview:
		resume = order.SupplierOrdering
	}

	o, err := order.RestoreOrder(
		id, "mercari", "M-1001", "prod-1", 1, price,
		status, resume, retries, supplierID, forwarderID, nil, now, now,
	)
	if err != nil {
		panic(err)
	}
	return o
}

// retryingTestOrder rebuilds an order in RETRYING with the given departed
// state and retry count.
func retryingTestOrder(id kernel.UUID, resume order.Status, retries int) *order.Order {
	price, _ := kernel.NewMoney(1999, "USD")
	now := time.Now().UTC()

	var supplierID *string
	if resume == order.ForwarderSending {
		s := "SUP-1"
		supplierID = &s
	}

	o, err := order.RestoreOrder(
		id, "mercari", "M-1001", "prod-1", 1, price,
		order.Retrying, resume, retries, supplierID, nil, nil, now, now,
	)
	if err != nil {
		panic(err)
	}
	return o
}

// testBuyerInfo builds a complete buyer info record for an order.
func testBuyerInfo(orderID kernel.UUID) *buyer.BuyerInfo {
	info, _ := buyer.NewBuyerInfo(orderID, "Taro Yamada", "+81-90-0000-0000",
		"1-2-3 Chuo", "", "100-0001", "JP", "")
	return info
}
