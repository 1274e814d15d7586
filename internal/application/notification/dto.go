package notification

import (
	"time"

	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/google/uuid"
)

// SendInput contains the input for sending a notification
type SendInput struct {
	UserID    *uuid.UUID
	Channel   notification.Channel
	Type      notification.Type
	Recipient string
	Subject   string
	Body      string
}

// SendResult contains the result of a dispatched notification
type SendResult struct {
	DeliveryID        uuid.UUID
	Status            notification.DeliveryStatus
	ProviderMessageID string
	Simulated         bool
}

// SendTemplateInput sends a notification rendered from a stored template
type SendTemplateInput struct {
	UserID    *uuid.UUID
	Channel   notification.Channel
	Type      notification.Type
	Recipient string
	Variables map[string]string
}

// DeliveryInfo describes a recorded delivery attempt
type DeliveryInfo struct {
	ID                uuid.UUID
	UserID            *uuid.UUID
	Channel           notification.Channel
	Type              notification.Type
	Recipient         string
	Subject           string
	Body              string
	Status            notification.DeliveryStatus
	ProviderMessageID string
	ErrorMessage      string
	Simulated         bool
	SentAt            *time.Time
	CreatedAt         time.Time
}

// SettingsInput contains the input for updating notification settings
type SettingsInput struct {
	UserID          uuid.UUID
	SMSEnabled      bool
	WhatsAppEnabled bool
	EmailEnabled    bool
	SMSPhone        string
	WhatsAppPhone   string
	EmailAddress    string
}

// TemplateInput contains the input for creating or updating a template
type TemplateInput struct {
	Name    string
	Type    notification.Type
	Channel notification.Channel
	Subject string
	Body    string
}

// AutoNotifyInput carries an event that may trigger admin notifications
type AutoNotifyInput struct {
	Type      notification.Type
	Subject   string
	Variables map[string]string
}

// AutoNotifyResult reports how many notifications an event produced
type AutoNotifyResult struct {
	Sent    int
	Skipped int
	Errors  []string
}
