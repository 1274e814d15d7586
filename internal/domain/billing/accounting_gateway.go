package billing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Accounting Gateway Errors
// ---------------------------------------------------------------------------

var (
	ErrAccountingNotConfigured   = errors.New("billing: accounting gateway not configured")
	ErrAccountingUnavailable     = errors.New("billing: accounting system temporarily unavailable")
	ErrAccountingRequestFailed   = errors.New("billing: accounting request failed")
	ErrAccountingInvalidResponse = errors.New("billing: invalid accounting response")
	ErrContactNotFound           = errors.New("billing: accounting contact not found")
)

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// Contact represents a customer contact in the accounting system
type Contact struct {
	ExternalID string
	Name       string
	Email      string
	Phone      string
}

// InvoiceLine represents one line of an invoice document
type InvoiceLine struct {
	Name      string
	Units     int
	UnitPrice decimal.Decimal
}

// InvoiceRequest describes the invoice document to create
type InvoiceRequest struct {
	ContactID string
	Date      time.Time
	Notes     string
	Lines     []InvoiceLine
}

// InvoiceDocument is the created invoice as reported by the accounting system
type InvoiceDocument struct {
	ExternalID string
	Number     string
	Total      decimal.Decimal
	// Simulated is true when the document was fabricated locally instead of
	// created in the live accounting system
	Simulated bool
}

// ---------------------------------------------------------------------------
// AccountingGateway Port Interface
// ---------------------------------------------------------------------------

// AccountingGateway defines the port interface for the external accounting
// system. The concrete Holded adapter lives in the infrastructure layer and
// runs in either live or simulated mode.
type AccountingGateway interface {
	// FindContactByEmail returns the contact with the given email, or
	// ErrContactNotFound when no contact matches
	FindContactByEmail(ctx context.Context, email string) (*Contact, error)

	// CreateContact creates a new customer contact
	CreateContact(ctx context.Context, contact *Contact) (*Contact, error)

	// CreateInvoice creates an invoice document
	CreateInvoice(ctx context.Context, req *InvoiceRequest) (*InvoiceDocument, error)

	// Simulated reports whether the gateway fabricates documents locally
	Simulated() bool
}
