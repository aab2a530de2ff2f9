package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/auth"
	"orderflow/internal/core/domain/model/bucket"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) AddItems(ctx context.Context, items []order.Item) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetItems(ctx context.Context, orderID kernel.UUID) ([]order.Item, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Item), args.Error(1)
}

func (m *MockOrderRepository) Complete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) SetRating(ctx context.Context, id kernel.UUID, rating int) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

func (m *MockOrderRepository) RecentCourierRatings(ctx context.Context, courierID kernel.UUID, limit int) ([]int, error) {
	args := m.Called(ctx, courierID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// MockBucketRepository is a mock implementation of ports.BucketRepository.
type MockBucketRepository struct {
	mock.Mock
}

func (m *MockBucketRepository) Add(ctx context.Context, item bucket.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBucketRepository) GetByUser(ctx context.Context, userID kernel.UUID) ([]bucket.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bucket.Item), args.Error(1)
}

func (m *MockBucketRepository) RemoveItem(ctx context.Context, userID, productID kernel.UUID) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockBucketRepository) Clear(ctx context.Context, userID kernel.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockBucketRepository) ClearOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of ports.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

// MockCheckoutUoW is a mock implementation of commands.CheckoutUoW.
type MockCheckoutUoW struct {
	mock.Mock
}

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockCheckoutUoW) BucketRepository() ports.BucketRepository {
	args := m.Called()
	return args.Get(0).(ports.BucketRepository)
}

// MockCheckoutUoWFactory is a mock implementation of commands.CheckoutUoWFactory.
type MockCheckoutUoWFactory struct {
	mock.Mock
}

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

// MockOrderUoW is a mock implementation of commands.OrderUoW.
type MockOrderUoW struct {
	mock.Mock
}

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

// MockOrderUoWFactory is a mock implementation of commands.OrderUoWFactory.
type MockOrderUoWFactory struct {
	mock.Mock
}

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// MockBucketUoW is a mock implementation of commands.BucketUoW.
type MockBucketUoW struct {
	mock.Mock
}

func (m *MockBucketUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBucketUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBucketUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBucketUoW) BucketRepository() ports.BucketRepository {
	args := m.Called()
	return args.Get(0).(ports.BucketRepository)
}

// MockBucketUoWFactory is a mock implementation of commands.BucketUoWFactory.
type MockBucketUoWFactory struct {
	mock.Mock
}

func (m *MockBucketUoWFactory) Create() commands.BucketUoW {
	args := m.Called()
	return args.Get(0).(commands.BucketUoW)
}

// MockProductUoW is a mock implementation of commands.ProductUoW.
type MockProductUoW struct {
	mock.Mock
}

func (m *MockProductUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProductUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

// MockProductUoWFactory is a mock implementation of commands.ProductUoWFactory.
type MockProductUoWFactory struct {
	mock.Mock
}

func (m *MockProductUoWFactory) Create() commands.ProductUoW {
	args := m.Called()
	return args.Get(0).(commands.ProductUoW)
}

// MockCourierClient is a mock implementation of ports.CourierClient.
type MockCourierClient struct {
	mock.Mock
}

func (m *MockCourierClient) FindCourier(ctx context.Context, userID kernel.UUID) (kernel.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

func (m *MockCourierClient) WaitForCourier(ctx context.Context, userID kernel.UUID) (ports.QueueStatus, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(ports.QueueStatus), args.Error(1)
}

func (m *MockCourierClient) UpdateCourierRating(ctx context.Context, courierID kernel.UUID, rating float64) error {
	args := m.Called(ctx, courierID, rating)
	return args.Error(0)
}

// MockOrderEventPublisher is a mock implementation of ports.OrderEventPublisher.
type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) PublishOrderChanged(ctx context.Context, event ports.OrderChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func claimsFor(t *testing.T, userID kernel.UUID, role auth.Role) auth.Claims {
	t.Helper()
	claims, err := auth.NewClaims(userID, role)
	require.NoError(t, err)
	return claims
}

func mustBucketItem(t *testing.T, userID, productID kernel.UUID, amount int) bucket.Item {
	t.Helper()
	item, err := bucket.NewItem(userID, productID, amount)
	require.NoError(t, err)
	return item
}
