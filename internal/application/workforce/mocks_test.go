package workforce

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]workforce.TimeEntry, error) {
	args := m.Called(ctx, employeeID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.TimeEntry), args.Error(1)
}

func (m *MockTimeEntryRepository) Save(ctx context.Context, entry *workforce.TimeEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockIncidentRepository struct {
	mock.Mock
}

func (m *MockIncidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Incident, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workforce.Incident), args.Error(1)
}

func (m *MockIncidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Incident, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Incident), args.Error(1)
}

func (m *MockIncidentRepository) FindByStatus(ctx context.Context, status workforce.IncidentStatus, filter shared.Filter) ([]workforce.Incident, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]workforce.Incident), args.Error(1)
}

func (m *MockIncidentRepository) Save(ctx context.Context, incident *workforce.Incident) error {
	args := m.Called(ctx, incident)
	return args.Error(0)
}

func (m *MockIncidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
	err     error
	sent    []*notification.Message
}

func (s *stubSender) Channel() notification.Channel {
	return s.channel
}

func (s *stubSender) Send(_ context.Context, msg *notification.Message) (*notification.SendResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.sent = append(s.sent, msg)
	return &notification.SendResult{ProviderMessageID: "test_msg_1", Simulated: true}, nil
}
