package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByOrderID finds the invoice for an order, if one exists
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)

	// FindAll finds invoices matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice. A unique constraint on order_id
	// guarantees at most one invoice per order.
	Save(ctx context.Context, invoice *Invoice) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
