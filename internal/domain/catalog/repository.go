package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByExternalID finds a product by its storefront ID
	FindByExternalID(ctx context.Context, externalID string) (*Product, error)

	// FindBySKU finds a product by SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindLowStock finds active products at or below the given quantity
	FindLowStock(ctx context.Context, threshold int) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// UpsertByExternalID inserts or refreshes a storefront product keyed by
	// its external ID
	UpsertByExternalID(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
