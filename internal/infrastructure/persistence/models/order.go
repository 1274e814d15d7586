package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/ordering"
)

// OrderModel is the persistence model for the Order domain entity
type OrderModel struct {
	BaseModel
	Number        string          `gorm:"type:varchar(50);not null;index"`
	ExternalID    *string         `gorm:"type:varchar(100);uniqueIndex:idx_orders_external_id"`
	Source        string          `gorm:"type:varchar(20);not null"`
	Status        string          `gorm:"type:varchar(20);not null;index"`
	CustomerName  string          `gorm:"type:varchar(255);not null"`
	CustomerEmail string          `gorm:"type:varchar(255)"`
	CustomerPhone string          `gorm:"type:varchar(50)"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	PaymentMethod string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
	PlacedAt      time.Time       `gorm:"not null;index"`

	Items []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for an order line item
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	SKU         string          `gorm:"type:varchar(100)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseEntity:    m.BaseModel.ToDomain(),
		Number:        m.Number,
		ExternalID:    m.ExternalID,
		Source:        ordering.OrderSource(m.Source),
		Status:        ordering.OrderStatus(m.Status),
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		CustomerPhone: m.CustomerPhone,
		Total:         m.Total,
		Currency:      m.Currency,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		PlacedAt:      m.PlacedAt,
	}
	for _, item := range m.Items {
		order.Items = append(order.Items, *item.ToDomain())
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Number = o.Number
	m.ExternalID = o.ExternalID
	m.Source = o.Source.String()
	m.Status = o.Status.String()
	m.CustomerName = o.CustomerName
	m.CustomerEmail = o.CustomerEmail
	m.CustomerPhone = o.CustomerPhone
	m.Total = o.Total
	m.Currency = o.Currency
	m.PaymentMethod = o.PaymentMethod
	m.Notes = o.Notes
	m.PlacedAt = o.PlacedAt

	m.Items = m.Items[:0]
	for _, item := range o.Items {
		var im OrderItemModel
		im.FromDomain(&item)
		m.Items = append(m.Items, im)
	}
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		SKU:         m.SKU,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Subtotal:    m.Subtotal,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem
func (m *OrderItemModel) FromDomain(i *ordering.OrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.SKU = i.SKU
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.Subtotal = i.Subtotal
	m.CreatedAt = i.CreatedAt
}
