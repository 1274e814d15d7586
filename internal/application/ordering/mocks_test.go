package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByExternalID(ctx context.Context, externalID string) (*ordering.Order, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status ordering.OrderStatus, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpsertImported(ctx context.Context, order *ordering.Order) (bool, error) {
	args := m.Called(ctx, order)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status ordering.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Product, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, threshold int) ([]catalog.Product, error) {
	args := m.Called(ctx, threshold)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpsertByExternalID(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
