package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/billing"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
// The unique index on OrderID enforces at most one invoice per order; NULLs
// are distinct, so orphaned invoices pass through it.
type InvoiceModel struct {
	BaseModel
	OrderID           *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_invoices_order_id"`
	ExternalInvoiceID string          `gorm:"type:varchar(100);not null"`
	ExternalContactID string          `gorm:"type:varchar(100)"`
	Number            string          `gorm:"type:varchar(50)"`
	Status            string          `gorm:"type:varchar(20);not null"`
	Total             decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	CustomerName      string          `gorm:"type:varchar(255)"`
	CustomerEmail     string          `gorm:"type:varchar(255)"`
	IssuedAt          time.Time       `gorm:"not null"`
	Simulated         bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseEntity:        m.BaseModel.ToDomain(),
		OrderID:           m.OrderID,
		ExternalInvoiceID: m.ExternalInvoiceID,
		ExternalContactID: m.ExternalContactID,
		Number:            m.Number,
		Status:            billing.InvoiceStatus(m.Status),
		Total:             m.Total,
		Currency:          m.Currency,
		CustomerName:      m.CustomerName,
		CustomerEmail:     m.CustomerEmail,
		IssuedAt:          m.IssuedAt,
		Simulated:         m.Simulated,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.OrderID = i.OrderID
	m.ExternalInvoiceID = i.ExternalInvoiceID
	m.ExternalContactID = i.ExternalContactID
	m.Number = i.Number
	m.Status = i.Status.String()
	m.Total = i.Total
	m.Currency = i.Currency
	m.CustomerName = i.CustomerName
	m.CustomerEmail = i.CustomerEmail
	m.IssuedAt = i.IssuedAt
	m.Simulated = i.Simulated
}
