package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/notification"
)

// DeliveryModel is the persistence model for the notification Delivery entity
type DeliveryModel struct {
	BaseModel
	UserID            *uuid.UUID `gorm:"type:uuid;index"`
	Channel           string     `gorm:"type:varchar(20);not null"`
	Type              string     `gorm:"type:varchar(30);not null;index"`
	Recipient         string     `gorm:"type:varchar(255);not null"`
	Subject           string     `gorm:"type:varchar(255)"`
	Body              string     `gorm:"type:text;not null"`
	Status            string     `gorm:"type:varchar(20);not null;index"`
	ProviderMessageID string     `gorm:"type:varchar(100)"`
	ErrorMessage      string     `gorm:"type:text"`
	SentAt            *time.Time
	Simulated         bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "notification_deliveries"
}

// ToDomain converts the persistence model to a domain Delivery entity
func (m *DeliveryModel) ToDomain() *notification.Delivery {
	return &notification.Delivery{
		BaseEntity:        m.BaseModel.ToDomain(),
		UserID:            m.UserID,
		Channel:           notification.Channel(m.Channel),
		Type:              notification.Type(m.Type),
		Recipient:         m.Recipient,
		Subject:           m.Subject,
		Body:              m.Body,
		Status:            notification.DeliveryStatus(m.Status),
		ProviderMessageID: m.ProviderMessageID,
		ErrorMessage:      m.ErrorMessage,
		SentAt:            m.SentAt,
		Simulated:         m.Simulated,
	}
}

// FromDomain populates the persistence model from a domain Delivery entity
func (m *DeliveryModel) FromDomain(d *notification.Delivery) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.UserID = d.UserID
	m.Channel = d.Channel.String()
	m.Type = d.Type.String()
	m.Recipient = d.Recipient
	m.Subject = d.Subject
	m.Body = d.Body
	m.Status = d.Status.String()
	m.ProviderMessageID = d.ProviderMessageID
	m.ErrorMessage = d.ErrorMessage
	m.SentAt = d.SentAt
	m.Simulated = d.Simulated
}

// TemplateModel is the persistence model for the notification Template entity
type TemplateModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(100);not null;uniqueIndex:idx_notification_templates_name"`
	Type    string `gorm:"type:varchar(30);not null;index:idx_notification_templates_type_channel,priority:1"`
	Channel string `gorm:"type:varchar(20);not null;index:idx_notification_templates_type_channel,priority:2"`
	Subject string `gorm:"type:varchar(255)"`
	Body    string `gorm:"type:text;not null"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TemplateModel) TableName() string {
	return "notification_templates"
}

// ToDomain converts the persistence model to a domain Template entity
func (m *TemplateModel) ToDomain() *notification.Template {
	return &notification.Template{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Type:       notification.Type(m.Type),
		Channel:    notification.Channel(m.Channel),
		Subject:    m.Subject,
		Body:       m.Body,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain Template entity
func (m *TemplateModel) FromDomain(t *notification.Template) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Type = t.Type.String()
	m.Channel = t.Channel.String()
	m.Subject = t.Subject
	m.Body = t.Body
	m.Active = t.Active
}

// SettingsModel is the persistence model for the notification Settings entity
type SettingsModel struct {
	BaseModel
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_notification_settings_user_id"`
	SMSEnabled      bool      `gorm:"not null;default:false"`
	WhatsAppEnabled bool      `gorm:"not null;default:false"`
	EmailEnabled    bool      `gorm:"not null;default:false"`
	SMSPhone        string    `gorm:"type:varchar(50)"`
	WhatsAppPhone   string    `gorm:"type:varchar(50)"`
	EmailAddress    string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "notification_settings"
}

// ToDomain converts the persistence model to a domain Settings entity
func (m *SettingsModel) ToDomain() *notification.Settings {
	return &notification.Settings{
		BaseEntity:      m.BaseModel.ToDomain(),
		UserID:          m.UserID,
		SMSEnabled:      m.SMSEnabled,
		WhatsAppEnabled: m.WhatsAppEnabled,
		EmailEnabled:    m.EmailEnabled,
		SMSPhone:        m.SMSPhone,
		WhatsAppPhone:   m.WhatsAppPhone,
		EmailAddress:    m.EmailAddress,
	}
}

// FromDomain populates the persistence model from a domain Settings entity
func (m *SettingsModel) FromDomain(s *notification.Settings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.UserID = s.UserID
	m.SMSEnabled = s.SMSEnabled
	m.WhatsAppEnabled = s.WhatsAppEnabled
	m.EmailEnabled = s.EmailEnabled
	m.SMSPhone = s.SMSPhone
	m.WhatsAppPhone = s.WhatsAppPhone
	m.EmailAddress = s.EmailAddress
}
