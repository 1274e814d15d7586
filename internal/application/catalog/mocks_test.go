package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
)

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, threshold int) ([]catalog.Product, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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

// fakeStorefront serves canned product pages and records pushed updates
type fakeStorefront struct {
	pages    [][]integration.StorefrontProduct
	total    int64
	products map[string]*integration.StorefrontProduct

	updated   []*integration.StorefrontProduct
	updateErr error
	listErr   error
}

func (f *fakeStorefront) ListOrders(_ context.Context, _ *integration.OrderListRequest) (*integration.OrderListResponse, error) {
	return &integration.OrderListResponse{}, nil
}

func (f *fakeStorefront) GetOrder(_ context.Context, _ string) (*integration.StorefrontOrder, error) {
	return nil, integration.ErrOrderNotFound
}

func (f *fakeStorefront) ListProducts(_ context.Context, req *integration.ProductListRequest) (*integration.ProductListResponse, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	resp := &integration.ProductListResponse{Total: f.total, TotalPages: len(f.pages)}
	if req.Page >= 1 && req.Page <= len(f.pages) {
		resp.Products = f.pages[req.Page-1]
	}
	return resp, nil
}

func (f *fakeStorefront) GetProduct(_ context.Context, externalID string) (*integration.StorefrontProduct, error) {
	product, ok := f.products[externalID]
	if !ok {
		return nil, integration.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeStorefront) UpdateProduct(_ context.Context, product *integration.StorefrontProduct) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, product)
	return nil
}

// minimal fakes for the notification stack behind AutoNotifyService

type fakeSettingsRepository struct {
	settings *notification.Settings
}

func (f *fakeSettingsRepository) FindByUser(_ context.Context, _ uuid.UUID) (*notification.Settings, error) {
	if f.settings == nil {
		return nil, shared.ErrNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepository) FindAdminSettings(_ context.Context) (*notification.Settings, error) {
	if f.settings == nil {
		return nil, shared.ErrNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepository) Save(_ context.Context, _ *notification.Settings) error {
	return nil
}

type fakeDeliveryRepository struct {
	saved []*notification.Delivery
}

func (f *fakeDeliveryRepository) FindByID(_ context.Context, _ uuid.UUID) (*notification.Delivery, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeDeliveryRepository) FindAll(_ context.Context, _ shared.Filter) ([]notification.Delivery, error) {
	return nil, nil
}

func (f *fakeDeliveryRepository) FindByUser(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]notification.Delivery, error) {
	return nil, nil
}

func (f *fakeDeliveryRepository) Save(_ context.Context, delivery *notification.Delivery) error {
	f.saved = append(f.saved, delivery)
	return nil
}

func (f *fakeDeliveryRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.saved)), nil
}

type stubSender struct {
	channel notification.Channel
	sent    []*notification.Message
}

func (s *stubSender) Channel() notification.Channel {
	return s.channel
}

func (s *stubSender) Send(_ context.Context, msg *notification.Message) (*notification.SendResult, error) {
	s.sent = append(s.sent, msg)
	return &notification.SendResult{ProviderMessageID: "test_msg_1", Simulated: true}, nil
}
