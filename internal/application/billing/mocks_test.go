package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/flamenca/backend/internal/domain/billing"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
)

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByStatus(ctx context.Context, status ordering.OrderStatus, filter shared.Filter) ([]ordering.Order, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

type MockAccountingGateway struct {
	mock.Mock
}

func (m *MockAccountingGateway) FindContactByEmail(ctx context.Context, email string) (*billing.Contact, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contact), args.Error(1)
}

func (m *MockAccountingGateway) CreateContact(ctx context.Context, contact *billing.Contact) (*billing.Contact, error) {
	args := m.Called(ctx, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Contact), args.Error(1)
}

func (m *MockAccountingGateway) CreateInvoice(ctx context.Context, req *billing.InvoiceRequest) (*billing.InvoiceDocument, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceDocument), args.Error(1)
}

func (m *MockAccountingGateway) Simulated() bool {
	return false
}
