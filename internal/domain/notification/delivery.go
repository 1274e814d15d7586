package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// DeliveryStatus represents the lifecycle of one delivery attempt
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusSent, DeliveryStatusDelivered, DeliveryStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// Delivery is the persisted record of one notification send. It is written
// as pending before the provider call and updated with the outcome after.
type Delivery struct {
	shared.BaseEntity
	UserID    *uuid.UUID
	Channel   Channel
	Type      Type
	Recipient string
	Subject   string
	Body      string
	Status    DeliveryStatus
	// ProviderMessageID is the ID the provider assigned to the message
	ProviderMessageID string
	// ErrorMessage holds the provider error for failed deliveries
	ErrorMessage string
	SentAt       *time.Time
	// Simulated is true when no real provider call was made
	Simulated bool
}

// NewDelivery creates a pending delivery record for a validated message
func NewDelivery(userID *uuid.UUID, msg *Message) (*Delivery, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return &Delivery{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Channel:    msg.Channel,
		Type:       msg.Type,
		Recipient:  msg.Recipient,
		Subject:    msg.Subject,
		Body:       msg.Body,
		Status:     DeliveryStatusPending,
	}, nil
}

// MarkSent records a successful provider handoff
func (d *Delivery) MarkSent(providerMessageID string, simulated bool) {
	now := time.Now()
	d.Status = DeliveryStatusSent
	d.ProviderMessageID = providerMessageID
	d.Simulated = simulated
	d.SentAt = &now
	d.Touch()
}

// MarkDelivered records a provider delivery confirmation
func (d *Delivery) MarkDelivered() {
	d.Status = DeliveryStatusDelivered
	d.Touch()
}

// MarkFailed records a failed send
func (d *Delivery) MarkFailed(errMsg string) {
	d.Status = DeliveryStatusFailed
	d.ErrorMessage = errMsg
	d.Touch()
}
