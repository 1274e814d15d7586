package messaging

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/flamenca/backend/internal/domain/notification"
)

// WhatsAppSender delivers WhatsApp messages through the same Twilio-style
// messages API as the SMS sender, using whatsapp-prefixed addresses
type WhatsAppSender struct {
	config     *Config
	httpClient *http.Client
	now        func() time.Time
}

// Interface assertion
var _ notification.Sender = (*WhatsAppSender)(nil)

// NewWhatsAppSender creates a new WhatsApp sender
func NewWhatsAppSender(config *Config) (*WhatsAppSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &WhatsAppSender{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		now:        time.Now,
	}, nil
}

// Channel returns the channel this sender delivers on
func (s *WhatsAppSender) Channel() notification.Channel {
	return notification.ChannelWhatsApp
}

// Send delivers a WhatsApp message. Sender and recipient addresses carry the
// whatsapp: prefix required by the provider.
func (s *WhatsAppSender) Send(ctx context.Context, msg *notification.Message) (*notification.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if s.config.Simulated() {
		return &notification.SendResult{
			ProviderMessageID: fmt.Sprintf("test_whatsapp_%d", s.now().UnixMilli()),
			Simulated:         true,
		}, nil
	}

	from := whatsappAddress(s.config.WhatsAppFrom)
	to := whatsappAddress(msg.Recipient)
	sid, err := sendTwilioMessage(ctx, s.httpClient, s.config, from, to, msg.Body)
	if err != nil {
		return nil, err
	}
	return &notification.SendResult{ProviderMessageID: sid}, nil
}

func whatsappAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
