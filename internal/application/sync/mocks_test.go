package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/flamenca/backend/internal/domain/billing"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/domain/workforce"
)

// fakeStorefront serves canned pages of orders, keyed by external ID for
// single-order lookups
type fakeStorefront struct {
	pages      [][]integration.StorefrontOrder
	total      int64
	orders     map[string]*integration.StorefrontOrder
	listErr    error
	getErr     error
	getCalls   int
	listCalls  int
	lastListed *integration.OrderListRequest
	// noTotalPages mimics a storefront that omits the total pages header
	noTotalPages bool
}

func (f *fakeStorefront) ListOrders(_ context.Context, req *integration.OrderListRequest) (*integration.OrderListResponse, error) {
	f.listCalls++
	f.lastListed = req
	if f.listErr != nil {
		return nil, f.listErr
	}
	resp := &integration.OrderListResponse{Total: f.total, TotalPages: len(f.pages)}
	if f.noTotalPages {
		resp.TotalPages = 0
	}
	if req.Page >= 1 && req.Page <= len(f.pages) {
		resp.Orders = f.pages[req.Page-1]
	}
	return resp, nil
}

func (f *fakeStorefront) GetOrder(_ context.Context, externalID string) (*integration.StorefrontOrder, error) {
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	order, ok := f.orders[externalID]
	if !ok {
		return nil, integration.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeStorefront) ListProducts(_ context.Context, _ *integration.ProductListRequest) (*integration.ProductListResponse, error) {
	return &integration.ProductListResponse{}, nil
}

func (f *fakeStorefront) GetProduct(_ context.Context, _ string) (*integration.StorefrontProduct, error) {
	return nil, integration.ErrOrderNotFound
}

func (f *fakeStorefront) UpdateProduct(_ context.Context, _ *integration.StorefrontProduct) error {
	return nil
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

// quiet fakes so AutoNotifyService can run without the full notification stack

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

type fakeTimeEntryRepository struct{}

func (f *fakeTimeEntryRepository) FindByID(_ context.Context, _ uuid.UUID) (*workforce.TimeEntry, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeTimeEntryRepository) FindOpenByEmployee(_ context.Context, _ uuid.UUID) (*workforce.TimeEntry, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeTimeEntryRepository) FindOpen(_ context.Context) ([]workforce.TimeEntry, error) {
	return nil, nil
}

func (f *fakeTimeEntryRepository) FindByEmployee(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]workforce.TimeEntry, error) {
	return nil, nil
}

func (f *fakeTimeEntryRepository) Save(_ context.Context, _ *workforce.TimeEntry) error {
	return nil
}

// fakeInvoiceRepository keeps invoices in memory keyed by order ID
type fakeInvoiceRepository struct {
	byOrder map[uuid.UUID]*billing.Invoice
}

func newFakeInvoiceRepository() *fakeInvoiceRepository {
	return &fakeInvoiceRepository{byOrder: map[uuid.UUID]*billing.Invoice{}}
}

func (f *fakeInvoiceRepository) FindByID(_ context.Context, _ uuid.UUID) (*billing.Invoice, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeInvoiceRepository) FindByOrderID(_ context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	invoice, ok := f.byOrder[orderID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return invoice, nil
}

func (f *fakeInvoiceRepository) FindAll(_ context.Context, _ shared.Filter) ([]billing.Invoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepository) Save(_ context.Context, invoice *billing.Invoice) error {
	if invoice.OrderID != nil {
		f.byOrder[*invoice.OrderID] = invoice
	}
	return nil
}

func (f *fakeInvoiceRepository) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(f.byOrder)), nil
}

// fakeAccountingGateway resolves contacts by email and fabricates invoice
// documents with sequential numbers
type fakeAccountingGateway struct {
	contacts  map[string]*billing.Contact
	created   int
	createErr error
}

func newFakeAccountingGateway() *fakeAccountingGateway {
	return &fakeAccountingGateway{contacts: map[string]*billing.Contact{}}
}

func (f *fakeAccountingGateway) FindContactByEmail(_ context.Context, email string) (*billing.Contact, error) {
	contact, ok := f.contacts[email]
	if !ok {
		return nil, billing.ErrContactNotFound
	}
	return contact, nil
}

func (f *fakeAccountingGateway) CreateContact(_ context.Context, contact *billing.Contact) (*billing.Contact, error) {
	created := *contact
	created.ExternalID = fmt.Sprintf("c_%d", len(f.contacts)+1)
	f.contacts[contact.Email] = &created
	return &created, nil
}

func (f *fakeAccountingGateway) CreateInvoice(_ context.Context, req *billing.InvoiceRequest) (*billing.InvoiceDocument, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &billing.InvoiceDocument{
		ExternalID: fmt.Sprintf("doc-%d", f.created),
		Number:     fmt.Sprintf("F26%04d", f.created),
	}, nil
}

func (f *fakeAccountingGateway) Simulated() bool {
	return false
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
	return &notification.SendResult{ProviderMessageID: "test_sms_1", Simulated: true}, nil
}
