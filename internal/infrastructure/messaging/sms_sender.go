package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flamenca/backend/internal/domain/notification"
)

// maxResponseSize is the maximum allowed response size from provider APIs (1MB)
const maxResponseSize = 1 << 20

// twilioMessagesURL is the provider messages endpoint, parameterized by account SID
const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json"

// SMSSender delivers SMS messages through a Twilio-style messages API
type SMSSender struct {
	config     *Config
	httpClient *http.Client
	now        func() time.Time
}

// Interface assertion
var _ notification.Sender = (*SMSSender)(nil)

// NewSMSSender creates a new SMS sender
func NewSMSSender(config *Config) (*SMSSender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SMSSender{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		now:        time.Now,
	}, nil
}

// Channel returns the channel this sender delivers on
func (s *SMSSender) Channel() notification.Channel {
	return notification.ChannelSMS
}

// Send delivers an SMS. In simulated mode a test-prefixed provider ID is
// fabricated and no HTTP call is made.
func (s *SMSSender) Send(ctx context.Context, msg *notification.Message) (*notification.SendResult, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	if s.config.Simulated() {
		return &notification.SendResult{
			ProviderMessageID: fmt.Sprintf("test_sms_%d", s.now().UnixMilli()),
			Simulated:         true,
		}, nil
	}

	sid, err := sendTwilioMessage(ctx, s.httpClient, s.config, s.config.SMSFrom, msg.Recipient, msg.Body)
	if err != nil {
		return nil, err
	}
	return &notification.SendResult{ProviderMessageID: sid}, nil
}

// sendTwilioMessage posts one message to the provider and returns its SID.
// Shared by the SMS and WhatsApp senders.
func sendTwilioMessage(ctx context.Context, client *http.Client, cfg *Config, from, to, body string) (string, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf(twilioMessagesURL, cfg.SMSAccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("messaging: failed to create request: %w", err)
	}
	req.SetBasicAuth(cfg.SMSAccountSID, cfg.SMSAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", notification.ErrSendFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("messaging: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: HTTP %d", notification.ErrSendFailed, resp.StatusCode)
	}

	var result struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: %v", notification.ErrSendFailed, err)
	}
	if result.SID == "" {
		return "", notification.ErrSendFailed
	}
	return result.SID, nil
}
