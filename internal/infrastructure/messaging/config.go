package messaging

import (
	"errors"
	"time"
)

// Mode selects whether messages go through the real providers
type Mode string

const (
	// ModeLive sends messages through the configured providers
	ModeLive Mode = "live"
	// ModeSimulated fabricates provider IDs without sending anything
	ModeSimulated Mode = "simulated"
)

// IsValid checks if the mode is a valid Mode
func (m Mode) IsValid() bool {
	return m == ModeLive || m == ModeSimulated
}

// Config holds provider settings for all delivery channels
type Config struct {
	Mode Mode
	// SMS/WhatsApp provider (Twilio-style messages API)
	SMSAccountSID string
	SMSAuthToken  string
	SMSFrom       string
	WhatsAppFrom  string
	// Email provider
	EmailAPIKey string
	EmailFrom   string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Errors for messaging configuration
var (
	ErrConfigInvalidMode  = errors.New("messaging: mode must be live or simulated")
	ErrConfigMissingSMS   = errors.New("messaging: SMS credentials are required in live mode")
	ErrConfigMissingEmail = errors.New("messaging: email credentials are required in live mode")
)

// Validate checks that the configuration is complete for its mode
func (c *Config) Validate() error {
	if !c.Mode.IsValid() {
		return ErrConfigInvalidMode
	}
	if c.Mode == ModeLive {
		if c.SMSAccountSID == "" || c.SMSAuthToken == "" || c.SMSFrom == "" {
			return ErrConfigMissingSMS
		}
		if c.EmailAPIKey == "" || c.EmailFrom == "" {
			return ErrConfigMissingEmail
		}
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// Simulated reports whether provider calls are skipped
func (c *Config) Simulated() bool {
	return c.Mode == ModeSimulated
}
