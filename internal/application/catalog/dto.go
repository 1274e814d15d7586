package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput contains the input for creating a local product
type CreateProductInput struct {
	Name          string
	SKU           string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	Category      string
	ImageURL      string
}

// UpdateProductInput contains the input for updating a product
type UpdateProductInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	ImageURL    *string
	Active      *bool
}

// AdjustStockInput contains the input for a stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Delta     int
	// PushToStorefront also updates the stock on the storefront for
	// imported products
	PushToStorefront bool
}

// RefreshResult reports the outcome of a catalog refresh from the storefront
type RefreshResult struct {
	// Refreshed is the number of products inserted or updated
	Refreshed int
	// Total is the storefront's total product count
	Total int64
	// LowStockAlerted and CriticalStockAlerted report whether stock alerts
	// went out after the refresh
	LowStockAlerted      bool
	CriticalStockAlerted bool
}
