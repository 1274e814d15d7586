package models

import (
	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product domain entity
type ProductModel struct {
	BaseModel
	ExternalID    *string         `gorm:"type:varchar(100);uniqueIndex:idx_products_external_id"`
	Name          string          `gorm:"type:varchar(255);not null"`
	SKU           string          `gorm:"type:varchar(100);index"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RegularPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	StockStatus   string          `gorm:"type:varchar(20);not null;default:'instock'"`
	Category      string          `gorm:"type:varchar(255)"`
	ImageURL      string          `gorm:"type:text"`
	Active        bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:    m.BaseModel.ToDomain(),
		ExternalID:    m.ExternalID,
		Name:          m.Name,
		SKU:           m.SKU,
		Description:   m.Description,
		Price:         m.Price,
		RegularPrice:  m.RegularPrice,
		StockQuantity: m.StockQuantity,
		StockStatus:   catalog.StockStatus(m.StockStatus),
		Category:      m.Category,
		ImageURL:      m.ImageURL,
		Active:        m.Active,
	}
}

// FromDomain populates the persistence model from a domain Product entity
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ExternalID = p.ExternalID
	m.Name = p.Name
	m.SKU = p.SKU
	m.Description = p.Description
	m.Price = p.Price
	m.RegularPrice = p.RegularPrice
	m.StockQuantity = p.StockQuantity
	m.StockStatus = p.StockStatus.String()
	m.Category = p.Category
	m.ImageURL = p.ImageURL
	m.Active = p.Active
}
