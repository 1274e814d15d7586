package notification

import "context"

// SendResult is the provider's answer to a send attempt
type SendResult struct {
	// ProviderMessageID is the ID assigned by the provider
	ProviderMessageID string
	// Simulated is true when the message was not actually sent
	Simulated bool
}

// Sender defines the port interface for one delivery channel provider.
// Concrete adapters (SMS, WhatsApp, email) live in the infrastructure layer
// and run in either live or simulated mode.
type Sender interface {
	// Channel returns the channel this sender delivers on
	Channel() Channel

	// Send delivers the message. The message must already be validated.
	Send(ctx context.Context, msg *Message) (*SendResult, error)
}
