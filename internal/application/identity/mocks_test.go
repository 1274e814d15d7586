package identity

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
