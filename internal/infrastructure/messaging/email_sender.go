package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/flamenca/backend/internal/domain/notification"
)

// emailAPIURL is the transactional email provider endpoint
const emailAPIURL = "https://api.sendgrid.com/v3/mail/send"

// EmailSender delivers email notifications through a transactional email API
type EmailSender struct {
	config     *Config
	httpClient *http.Client
	now        func() time.Time
}

// Interface assertion
var _ notification.Sender = (*EmailSender)(nil)

// NewEmailSender creates a new email sender
func NewEmailSender(config *Config) (*EmailSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &EmailSender{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		now:        time.Now,
	}, nil
}

// Channel returns the channel this sender delivers on
func (s *EmailSender) Channel() notification.Channel {
	return notification.ChannelEmail
}

// Send delivers an email. The message subject is required for this channel.
func (s *EmailSender) Send(ctx context.Context, msg *notification.Message) (*notification.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if s.config.Simulated() {
		return &notification.SendResult{
			ProviderMessageID: fmt.Sprintf("test_email_%d", s.now().UnixMilli()),
			Simulated:         true,
		}, nil
	}

	payload := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.Recipient}}},
		},
		"from":    map[string]string{"email": s.config.EmailFrom},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": msg.Body},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, emailAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.EmailAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", notification.ErrSendFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", notification.ErrSendFailed, resp.StatusCode)
	}

	// The provider acknowledges accepted mail with a message ID header.
	messageID := resp.Header.Get("X-Message-Id")
	if messageID == "" {
		messageID = fmt.Sprintf("email_%d", s.now().UnixMilli())
	}
	return &notification.SendResult{ProviderMessageID: messageID}, nil
}
