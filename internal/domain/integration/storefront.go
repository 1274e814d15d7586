package integration

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Storefront Errors
// ---------------------------------------------------------------------------

var (
	ErrStorefrontNotConfigured   = errors.New("integration: storefront not configured")
	ErrStorefrontUnavailable     = errors.New("integration: storefront temporarily unavailable")
	ErrStorefrontRequestFailed   = errors.New("integration: storefront request failed")
	ErrStorefrontInvalidResponse = errors.New("integration: invalid storefront response")
	ErrStorefrontAuthFailed      = errors.New("integration: storefront authentication failed")

	ErrOrderNotFound   = errors.New("integration: storefront order not found")
	ErrProductNotFound = errors.New("integration: storefront product not found")
)

// ---------------------------------------------------------------------------
// StorefrontOrderStatus
// ---------------------------------------------------------------------------

// StorefrontOrderStatus is an order status as reported by the storefront.
// The vocabulary is the WooCommerce one; the local vocabulary lives in the
// ordering package and the two are bridged by MapOrderStatus.
type StorefrontOrderStatus string

const (
	StorefrontOrderStatusPending    StorefrontOrderStatus = "pending"
	StorefrontOrderStatusProcessing StorefrontOrderStatus = "processing"
	StorefrontOrderStatusOnHold     StorefrontOrderStatus = "on-hold"
	StorefrontOrderStatusCompleted  StorefrontOrderStatus = "completed"
	StorefrontOrderStatusCancelled  StorefrontOrderStatus = "cancelled"
	StorefrontOrderStatusRefunded   StorefrontOrderStatus = "refunded"
	StorefrontOrderStatusFailed     StorefrontOrderStatus = "failed"
)

// IsValid returns true if the status is part of the known vocabulary
func (s StorefrontOrderStatus) IsValid() bool {
	switch s {
	case StorefrontOrderStatusPending, StorefrontOrderStatusProcessing,
		StorefrontOrderStatusOnHold, StorefrontOrderStatusCompleted,
		StorefrontOrderStatusCancelled, StorefrontOrderStatusRefunded,
		StorefrontOrderStatusFailed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status
func (s StorefrontOrderStatus) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Value Objects
// ---------------------------------------------------------------------------

// StorefrontOrder represents an order as returned by the storefront API
type StorefrontOrder struct {
	// ExternalID is the order ID on the storefront
	ExternalID string
	// Number is the human-facing order number (usually equals ExternalID)
	Number string
	// Status is the order status on the storefront
	Status StorefrontOrderStatus
	// CustomerName is the billing first+last name
	CustomerName string
	// CustomerEmail is the billing email
	CustomerEmail string
	// CustomerPhone is the billing phone (may be empty)
	CustomerPhone string
	// Total is the total the buyer paid
	Total decimal.Decimal
	// Currency is the payment currency
	Currency string
	// PaymentMethodTitle is the storefront's payment method label
	PaymentMethodTitle string
	// CustomerNote is the note left by the buyer
	CustomerNote string
	// Items contains the order line items
	Items []StorefrontOrderItem
	// CreatedAt is when the order was created on the storefront
	CreatedAt time.Time
	// RawData is the original storefront payload (JSON)
	RawData string
}

// StorefrontOrderItem represents a line item in a storefront order
type StorefrontOrderItem struct {
	// ExternalItemID is the line item ID on the storefront
	ExternalItemID string
	// ExternalProductID is the product ID on the storefront
	ExternalProductID string
	// Name is the product name at purchase time
	Name string
	// SKU is the product SKU (may be empty)
	SKU string
	// Quantity is the ordered quantity
	Quantity int
	// UnitPrice is the per-unit price
	UnitPrice decimal.Decimal
	// Subtotal is the line total
	Subtotal decimal.Decimal
}

// StorefrontProduct represents a product as returned by the storefront API
type StorefrontProduct struct {
	ExternalID    string
	Name          string
	SKU           string
	Description   string
	Price         decimal.Decimal
	RegularPrice  decimal.Decimal
	StockQuantity int
	StockStatus   string
	Category      string
	ImageURLs     []string
}

// ---------------------------------------------------------------------------
// Request/Response DTOs
// ---------------------------------------------------------------------------

// OrderListRequest represents a request to list storefront orders
type OrderListRequest struct {
	// After limits results to orders created after this time (optional)
	After time.Time
	// Statuses filters by storefront status (empty = all)
	Statuses []StorefrontOrderStatus
	// Page is the page number (1-indexed)
	Page int
	// PerPage is the number of orders per page
	PerPage int
}

// Validate normalizes and validates the list request
func (r *OrderListRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 || r.PerPage > 100 {
		r.PerPage = 50
	}
	for _, s := range r.Statuses {
		if !s.IsValid() {
			return errors.New("integration: invalid storefront status filter")
		}
	}
	return nil
}

// OrderListResponse represents the response from listing orders
type OrderListResponse struct {
	// Orders contains the returned page of orders
	Orders []StorefrontOrder
	// Total is the value of the X-WP-Total header
	Total int64
	// TotalPages is the value of the X-WP-TotalPages header
	TotalPages int
}

// ProductListRequest represents a request to list storefront products
type ProductListRequest struct {
	Page    int
	PerPage int
	Search  string
}

// Validate normalizes the product list request
func (r *ProductListRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PerPage < 1 || r.PerPage > 100 {
		r.PerPage = 20
	}
	return nil
}

// ProductListResponse represents the response from listing products
type ProductListResponse struct {
	Products   []StorefrontProduct
	Total      int64
	TotalPages int
}

// ---------------------------------------------------------------------------
// Storefront Port Interface
// ---------------------------------------------------------------------------

// Storefront defines the port interface for the external e-commerce storefront.
// It follows the Ports & Adapters pattern: the interface lives in the domain
// layer and the concrete WooCommerce adapter lives in the infrastructure layer.
type Storefront interface {
	// ListOrders lists orders matching the request filters
	ListOrders(ctx context.Context, req *OrderListRequest) (*OrderListResponse, error)

	// GetOrder retrieves a single order by its storefront ID
	GetOrder(ctx context.Context, externalID string) (*StorefrontOrder, error)

	// ListProducts lists products matching the request filters
	ListProducts(ctx context.Context, req *ProductListRequest) (*ProductListResponse, error)

	// GetProduct retrieves a single product by its storefront ID
	GetProduct(ctx context.Context, externalID string) (*StorefrontProduct, error)

	// UpdateProduct pushes price/stock changes for a product back to the storefront
	UpdateProduct(ctx context.Context, product *StorefrontProduct) error
}
