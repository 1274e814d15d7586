package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds an imported order by its storefront ID
func (r *GormOrderRepository) FindByExternalID(ctx context.Context, externalID string) (*ordering.Order, error) {
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot be empty")
	}
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("external_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items"), filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// FindByStatus finds orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status ordering.OrderStatus, filter shared.Filter) ([]ordering.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items").Where("status = ?", status.String()),
		filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]ordering.Order, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	var model models.OrderModel
	model.FromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&model).Error; err != nil {
			return err
		}
		// Replace items wholesale; orders carry few lines
		if err := tx.Where("order_id = ?", model.ID).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpsertImported inserts an imported order unless one with the same external
// ID already exists. The unique index on external_id makes the insert safe
// under concurrent sync runs; ON CONFLICT DO NOTHING skips duplicates
// without raising an error.
func (r *GormOrderRepository) UpsertImported(ctx context.Context, order *ordering.Order) (bool, error) {
	if !order.IsImported() {
		return false, shared.NewDomainError("NOT_IMPORTED", "Order has no external ID")
	}

	var model models.OrderModel
	model.FromDomain(order)
	items := model.Items
	model.Items = nil

	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).Create(&model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		inserted = true
		if len(items) > 0 {
			return tx.Create(&items).Error
		}
		return nil
	})
	return inserted, err
}

// UpdateStatus persists a status change
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status ordering.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.OrderModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("placed_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		}
	}

	return query
}
