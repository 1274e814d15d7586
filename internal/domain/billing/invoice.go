package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/shared"
)

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice represents an invoice issued in the external accounting system for
// a local order. At most one invoice exists per order; the repository
// enforces this with a unique constraint on OrderID. OrderID is nullable so
// an invoice row can outlive its order.
type Invoice struct {
	shared.BaseEntity
	OrderID *uuid.UUID
	// ExternalInvoiceID is the document ID in the accounting system
	ExternalInvoiceID string
	// ExternalContactID is the contact ID in the accounting system
	ExternalContactID string
	Number            string
	Status            InvoiceStatus
	Total             decimal.Decimal
	Currency          string
	CustomerName      string
	CustomerEmail     string
	IssuedAt          time.Time
	// Simulated is true when the invoice was created in simulated mode and
	// the external IDs are fabricated
	Simulated bool
}

// NewInvoice creates an invoice record for an externally created document
func NewInvoice(orderID uuid.UUID, externalInvoiceID, externalContactID, number string, total decimal.Decimal, simulated bool) (*Invoice, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if externalInvoiceID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_INVOICE", "External invoice ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Invoice total cannot be negative")
	}

	return &Invoice{
		BaseEntity:        shared.NewBaseEntity(),
		OrderID:           &orderID,
		ExternalInvoiceID: externalInvoiceID,
		ExternalContactID: externalContactID,
		Number:            number,
		Status:            InvoiceStatusDraft,
		Total:             total,
		Currency:          "EUR",
		IssuedAt:          time.Now(),
		Simulated:         simulated,
	}, nil
}

// MarkPaid marks the invoice as paid
func (i *Invoice) MarkPaid() error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Cancelled invoices cannot be paid")
	}
	i.Status = InvoiceStatusPaid
	i.Touch()
	return nil
}

// Cancel cancels the invoice
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusPaid {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION", "Paid invoices cannot be cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.Touch()
	return nil
}
