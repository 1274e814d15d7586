package ordering

import (
	"context"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order (with items) by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByExternalID finds an imported order by its storefront ID
	FindByExternalID(ctx context.Context, externalID string) (*Order, error)

	// FindAll finds orders matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// UpsertImported inserts an imported order unless one with the same
	// external ID already exists. It returns true when a row was inserted.
	// The check relies on a unique index, not a prior lookup, so concurrent
	// sync runs cannot insert duplicates.
	UpsertImported(ctx context.Context, order *Order) (bool, error)

	// UpdateStatus persists a status change
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
