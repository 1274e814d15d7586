package ordering

import (
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderInput contains the input for creating a back-office order
type CreateOrderInput struct {
	Number        string
	Source        ordering.OrderSource
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PaymentMethod string
	Notes         string
	Items         []OrderItemInput
}

// OrderItemInput is one requested line item
type OrderItemInput struct {
	// ProductID references a catalog product. POS sales require it so stock
	// can be deducted; back-office orders may omit it for free-form lines.
	ProductID   *uuid.UUID
	ProductName string
	Quantity    int
	// UnitPrice overrides the catalog price when set
	UnitPrice *decimal.Decimal
}

// CheckoutInput contains the input for a point-of-sale checkout
type CheckoutInput struct {
	CashierID     uuid.UUID
	CustomerName  string
	PaymentMethod string
	Discount      decimal.Decimal
	Items         []OrderItemInput
}

// UpdateStatusInput contains the input for an order status change
type UpdateStatusInput struct {
	OrderID uuid.UUID
	Status  ordering.OrderStatus
}
