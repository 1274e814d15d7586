package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/shared"
)

// StockStatus represents the stock availability of a product
type StockStatus string

const (
	StockStatusInStock     StockStatus = "instock"
	StockStatusOutOfStock  StockStatus = "outofstock"
	StockStatusOnBackorder StockStatus = "onbackorder"
)

// IsValid checks if the status is a valid StockStatus
func (s StockStatus) IsValid() bool {
	switch s {
	case StockStatusInStock, StockStatusOutOfStock, StockStatusOnBackorder:
		return true
	}
	return false
}

// String returns the string representation of StockStatus
func (s StockStatus) String() string {
	return string(s)
}

// Stock thresholds used for restock alerts.
const (
	LowStockThreshold      = 5
	CriticalStockThreshold = 2
)

// Product represents a product in the local catalog. Products imported from
// the storefront carry an ExternalID and are refreshed by the catalog sync;
// local-only products have a nil ExternalID.
type Product struct {
	shared.BaseEntity
	ExternalID    *string
	Name          string
	SKU           string
	Description   string
	Price         decimal.Decimal
	RegularPrice  decimal.Decimal
	StockQuantity int
	StockStatus   StockStatus
	Category      string
	ImageURL      string
	Active        bool
}

// NewProduct creates a new local product
func NewProduct(name, sku string, price decimal.Decimal, stockQuantity int) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	status := StockStatusInStock
	if stockQuantity == 0 {
		status = StockStatusOutOfStock
	}

	return &Product{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		SKU:           sku,
		Price:         price,
		RegularPrice:  price,
		StockQuantity: stockQuantity,
		StockStatus:   status,
		Active:        true,
	}, nil
}

// IsLowStock reports whether the product is at or below the low stock threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity <= LowStockThreshold
}

// IsCriticalStock reports whether the product is at or below the critical threshold
func (p *Product) IsCriticalStock() bool {
	return p.StockQuantity <= CriticalStockThreshold
}

// AdjustStock changes the stock quantity by delta. Negative results are
// rejected.
func (p *Product) AdjustStock(delta int) error {
	next := p.StockQuantity + delta
	if next < 0 {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Stock quantity cannot go negative")
	}
	p.StockQuantity = next
	if next == 0 {
		p.StockStatus = StockStatusOutOfStock
	} else if p.StockStatus == StockStatusOutOfStock {
		p.StockStatus = StockStatusInStock
	}
	p.Touch()
	return nil
}

// UpdatePrice changes the sale price
func (p *Product) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	p.Price = price
	p.Touch()
	return nil
}
