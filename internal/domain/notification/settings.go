package notification

import (
	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// Settings holds a user's notification preferences: which channels they
// accept and where to reach them on each.
type Settings struct {
	shared.BaseEntity
	UserID          uuid.UUID
	SMSEnabled      bool
	WhatsAppEnabled bool
	EmailEnabled    bool
	SMSPhone        string
	WhatsAppPhone   string
	EmailAddress    string
}

// NewSettings creates default settings for a user (all channels off)
func NewSettings(userID uuid.UUID) (*Settings, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	return &Settings{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
	}, nil
}

// EnableSMS turns on SMS delivery to the given phone
func (s *Settings) EnableSMS(phone string) error {
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	s.SMSEnabled = true
	s.SMSPhone = phone
	s.Touch()
	return nil
}

// EnableWhatsApp turns on WhatsApp delivery to the given phone
func (s *Settings) EnableWhatsApp(phone string) error {
	if err := ValidatePhone(phone); err != nil {
		return err
	}
	s.WhatsAppEnabled = true
	s.WhatsAppPhone = phone
	s.Touch()
	return nil
}

// EnableEmail turns on email delivery to the given address
func (s *Settings) EnableEmail(address string) error {
	if err := ValidateEmail(address); err != nil {
		return err
	}
	s.EmailEnabled = true
	s.EmailAddress = address
	s.Touch()
	return nil
}

// ChannelEnabled reports whether the channel is enabled with a recipient set
func (s *Settings) ChannelEnabled(channel Channel) bool {
	switch channel {
	case ChannelSMS:
		return s.SMSEnabled && s.SMSPhone != ""
	case ChannelWhatsApp:
		return s.WhatsAppEnabled && s.WhatsAppPhone != ""
	case ChannelEmail:
		return s.EmailEnabled && s.EmailAddress != ""
	}
	return false
}

// RecipientFor returns the configured recipient address for a channel
func (s *Settings) RecipientFor(channel Channel) string {
	switch channel {
	case ChannelSMS:
		return s.SMSPhone
	case ChannelWhatsApp:
		return s.WhatsAppPhone
	case ChannelEmail:
		return s.EmailAddress
	}
	return ""
}
