package notification

import (
	"context"
	"errors"

	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsService manages per-user notification preferences
type SettingsService struct {
	settingsRepo notification.SettingsRepository
	logger       *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo notification.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get returns the settings for a user, creating a default row when none exists
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*notification.Settings, error) {
	settings, err := s.settingsRepo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			settings, err = notification.NewSettings(userID)
			if err != nil {
				return nil, err
			}
			if err := s.settingsRepo.Save(ctx, settings); err != nil {
				return nil, err
			}
			return settings, nil
		}
		return nil, err
	}
	return settings, nil
}

// Update replaces a user's notification preferences. Every enabled channel
// must carry a valid recipient.
func (s *SettingsService) Update(ctx context.Context, input SettingsInput) (*notification.Settings, error) {
	settings, err := s.Get(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	settings.SMSEnabled = false
	settings.WhatsAppEnabled = false
	settings.EmailEnabled = false
	settings.SMSPhone = input.SMSPhone
	settings.WhatsAppPhone = input.WhatsAppPhone
	settings.EmailAddress = input.EmailAddress

	if input.SMSEnabled {
		if err := settings.EnableSMS(input.SMSPhone); err != nil {
			return nil, err
		}
	}
	if input.WhatsAppEnabled {
		if err := settings.EnableWhatsApp(input.WhatsAppPhone); err != nil {
			return nil, err
		}
	}
	if input.EmailEnabled {
		if err := settings.EnableEmail(input.EmailAddress); err != nil {
			return nil, err
		}
	}

	settings.Touch()
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.logger.Error("Failed to save notification settings",
			zap.String("user_id", input.UserID.String()),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Notification settings updated",
		zap.String("user_id", input.UserID.String()),
		zap.Bool("sms", settings.SMSEnabled),
		zap.Bool("whatsapp", settings.WhatsAppEnabled),
		zap.Bool("email", settings.EmailEnabled))

	return settings, nil
}
