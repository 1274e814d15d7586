package notification

import (
	"errors"
	"regexp"
	"strings"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrInvalidPhone     = errors.New("notification: phone must be in E.164 format")
	ErrInvalidEmail     = errors.New("notification: invalid email address")
	ErrEmptyMessage     = errors.New("notification: message cannot be empty")
	ErrSendFailed       = errors.New("notification: provider send failed")
	ErrProviderNotReady = errors.New("notification: provider not configured")
)

// Channel represents a delivery channel
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelEmail    Channel = "email"
)

// IsValid checks if the channel is a valid Channel
func (c Channel) IsValid() bool {
	switch c {
	case ChannelSMS, ChannelWhatsApp, ChannelEmail:
		return true
	}
	return false
}

// String returns the string representation of Channel
func (c Channel) String() string {
	return string(c)
}

// Type classifies what a notification is about
type Type string

const (
	TypePasswordReset Type = "password_reset"
	TypeNewOrder      Type = "new_order"
	TypeLowStock      Type = "low_stock"
	TypeCriticalStock Type = "critical_stock"
	TypeCheckIn       Type = "check_in"
	TypeCheckOut      Type = "check_out"
	TypeIncident      Type = "incident"
	TypePaymentIssue  Type = "payment_issue"
	TypeCustom        Type = "custom"
)

// IsValid checks if the type is a valid Type
func (t Type) IsValid() bool {
	switch t {
	case TypePasswordReset, TypeNewOrder, TypeLowStock, TypeCriticalStock,
		TypeCheckIn, TypeCheckOut, TypeIncident, TypePaymentIssue, TypeCustom:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

var (
	phoneRegex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidatePhone checks that the phone number is in E.164 format
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateEmail checks that the address looks like an email
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateRecipient validates the recipient address for a channel
func ValidateRecipient(channel Channel, recipient string) error {
	switch channel {
	case ChannelSMS, ChannelWhatsApp:
		return ValidatePhone(recipient)
	case ChannelEmail:
		return ValidateEmail(recipient)
	}
	return errors.New("notification: unknown channel")
}

// Message is an outbound notification ready to hand to a provider
type Message struct {
	Channel   Channel
	Type      Type
	Recipient string
	Subject   string
	Body      string
}

// Validate checks the message before any provider call or database write
func (m *Message) Validate() error {
	if !m.Channel.IsValid() {
		return errors.New("notification: unknown channel")
	}
	if strings.TrimSpace(m.Body) == "" {
		return ErrEmptyMessage
	}
	return ValidateRecipient(m.Channel, m.Recipient)
}
