package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flamenca/backend/internal/domain/billing"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderID finds the invoice for an order
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// Save creates or updates an invoice. The unique index on order_id rejects a
// second invoice for the same order with shared.ErrAlreadyExists.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	var model models.InvoiceModel
	model.FromDomain(invoice)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("issued_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "simulated":
			query = query.Where("simulated = ?", value)
		}
	}

	return query
}
