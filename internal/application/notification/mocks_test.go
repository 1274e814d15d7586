package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/domain/workforce"
)

// stubSender is a controllable Sender for dispatcher tests
type stubSender struct {
	channel notification.Channel
	result  *notification.SendResult
	err     error
	sent    []*notification.Message
}

func (s *stubSender) Channel() notification.Channel {
	return s.channel
}

func (s *stubSender) Send(ctx context.Context, msg *notification.Message) (*notification.SendResult, error) {
	s.sent = append(s.sent, msg)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

// MockDeliveryRepository is a mock implementation of notification.DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Delivery, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]notification.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Delivery, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]notification.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, delivery *notification.Delivery) error {
	args := m.Called(ctx, delivery)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockTemplateRepository is a mock implementation of notification.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindByTypeAndChannel(ctx context.Context, typ notification.Type, channel notification.Channel) (*notification.Template, error) {
	args := m.Called(ctx, typ, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Template, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]notification.Template), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *notification.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of notification.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*notification.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Settings), args.Error(1)
}

func (m *MockSettingsRepository) FindAdminSettings(ctx context.Context) (*notification.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, settings *notification.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockTimeEntryRepository is a mock implementation of workforce.TimeEntryRepository
type MockTimeEntryRepository struct {
	mock.Mock
}

func (m *MockTimeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.TimeEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*workforce.TimeEntry, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindOpen(ctx context.Context) ([]workforce.TimeEntry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]workforce.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]workforce.TimeEntry, error) {
	args := m.Called(ctx, employeeID, from, to)
	return args.Get(0).([]workforce.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) Save(ctx context.Context, entry *workforce.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
