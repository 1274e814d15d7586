package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ catalog.ProductRepository = (*GormProductRepository)(nil)

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalID finds a product by its storefront ID
func (r *GormProductRepository) FindByExternalID(ctx context.Context, externalID string) (*catalog.Product, error) {
	if externalID == "" {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "External ID cannot be empty")
	}
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a product by SKU
func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)

	if err := query.Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// FindLowStock finds active products at or below the given quantity
func (r *GormProductRepository) FindLowStock(ctx context.Context, threshold int) ([]catalog.Product, error) {
	var productModels []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("active = ? AND stock_quantity <= ?", true, threshold).
		Order("stock_quantity ASC").
		Find(&productModels).Error; err != nil {
		return nil, err
	}

	products := make([]catalog.Product, len(productModels))
	for i, model := range productModels {
		products[i] = *model.ToDomain()
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var model models.ProductModel
	model.FromDomain(product)
	return r.db.WithContext(ctx).Save(&model).Error
}

// UpsertByExternalID inserts or refreshes a storefront product keyed by its
// external ID
func (r *GormProductRepository) UpsertByExternalID(ctx context.Context, product *catalog.Product) error {
	if product.ExternalID == nil || *product.ExternalID == "" {
		return shared.NewDomainError("INVALID_EXTERNAL_ID", "Product has no external ID")
	}

	var model models.ProductModel
	model.FromDomain(product)

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "sku", "description", "price", "regular_price",
			"stock_quantity", "stock_status", "category", "image_url", "updated_at",
		}),
	}).Create(&model).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "stock_status":
			query = query.Where("stock_status = ?", value)
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}
