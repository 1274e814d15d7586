package ordering

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusReady      OrderStatus = "ready"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusReady || target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusReady:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// OrderSource identifies where an order originated
type OrderSource string

const (
	OrderSourcePOS        OrderSource = "pos"
	OrderSourceStorefront OrderSource = "woocommerce"
	OrderSourceBackoffice OrderSource = "backoffice"
)

// IsValid checks if the source is a valid OrderSource
func (s OrderSource) IsValid() bool {
	switch s {
	case OrderSourcePOS, OrderSourceStorefront, OrderSourceBackoffice:
		return true
	}
	return false
}

// String returns the string representation of OrderSource
func (s OrderSource) String() string {
	return string(s)
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	ProductName string
	SKU         string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	CreatedAt   time.Time
}

// NewOrderItem creates a new order item. The subtotal is always derived from
// quantity and unit price, never trusted from the caller.
func NewOrderItem(orderID uuid.UUID, productID *uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Order represents a customer order, either created locally at the counter or
// imported from the storefront.
type Order struct {
	shared.BaseEntity
	// Number is the human-facing order number
	Number string
	// ExternalID is the storefront order ID for imported orders, nil otherwise
	ExternalID *string
	Source     OrderSource
	Status     OrderStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Total    decimal.Decimal
	Currency string

	PaymentMethod string
	Notes         string

	Items []OrderItem

	// PlacedAt is when the customer placed the order. For imported orders
	// this is the storefront creation time, not the sync time.
	PlacedAt time.Time
}

// NewOrder creates a new local order
func NewOrder(number string, source OrderSource, customerName string) (*Order, error) {
	if strings.TrimSpace(number) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_SOURCE", "Invalid order source")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Order{
		BaseEntity:   shared.NewBaseEntity(),
		Number:       number,
		Source:       source,
		Status:       OrderStatusPending,
		CustomerName: customerName,
		Total:        decimal.Zero,
		Currency:     "EUR",
		PlacedAt:     time.Now(),
	}, nil
}

// NewImportedOrder creates an order imported from the storefront. The status
// is already mapped to the local vocabulary by the caller.
func NewImportedOrder(externalID, number string, status OrderStatus, customerName string, total decimal.Decimal, placedAt time.Time) (*Order, error) {
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External order ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_STATUS", "Invalid order status")
	}
	if total.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TOTAL", "Order total cannot be negative")
	}
	name := strings.TrimSpace(customerName)
	if name == "" {
		name = "Cliente WooCommerce"
	}

	order := &Order{
		BaseEntity:   shared.NewBaseEntity(),
		Number:       number,
		ExternalID:   &externalID,
		Source:       OrderSourceStorefront,
		Status:       status,
		CustomerName: name,
		Total:        total,
		Currency:     "EUR",
		PlacedAt:     placedAt,
	}
	return order, nil
}

// AddItem appends a line item and recalculates the running total
func (o *Order) AddItem(productID *uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) error {
	item, err := NewOrderItem(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, *item)
	o.RecalculateTotal()
	o.Touch()
	return nil
}

// RecalculateTotal recomputes the order total from its line items
func (o *Order) RecalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal)
	}
	o.Total = total
}

// IsImported reports whether the order came from the storefront
func (o *Order) IsImported() bool {
	return o.ExternalID != nil && *o.ExternalID != ""
}

// UpdateStatus transitions the order to a new status, enforcing the
// transition rules. Imported orders may additionally be overwritten by a
// fresh storefront status through SyncStatus.
func (o *Order) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_ORDER_STATUS", "Invalid order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}
	o.Status = target
	o.Touch()
	return nil
}

// SyncStatus overwrites the status with the storefront-reported one. The
// storefront is authoritative for imported orders so transition rules are
// not applied here.
func (o *Order) SyncStatus(status OrderStatus) error {
	if !o.IsImported() {
		return shared.NewDomainError("NOT_IMPORTED", "Only imported orders can be status-synced")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_ORDER_STATUS", "Invalid order status")
	}
	if o.Status != status {
		o.Status = status
		o.Touch()
	}
	return nil
}

// Cancel cancels the order if it is not already terminal
func (o *Order) Cancel() error {
	return o.UpdateStatus(OrderStatusCancelled)
}
