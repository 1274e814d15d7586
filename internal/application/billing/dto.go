package billing

import (
	"time"

	"github.com/flamenca/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceInput contains the input for creating an invoice from an order
type CreateInvoiceInput struct {
	OrderID uuid.UUID
	// CustomerEmail overrides the order's customer email when set
	CustomerEmail string
	Notes         string
}

// InvoiceInfo describes an invoice record
type InvoiceInfo struct {
	ID                uuid.UUID
	OrderID           *uuid.UUID
	ExternalInvoiceID string
	ExternalContactID string
	Number            string
	Status            billing.InvoiceStatus
	Total             decimal.Decimal
	Currency          string
	CustomerName      string
	CustomerEmail     string
	IssuedAt          time.Time
	Simulated         bool
	// AlreadyExisted is true when the invoice had been created by an earlier
	// request and no new document was issued
	AlreadyExisted bool
}
