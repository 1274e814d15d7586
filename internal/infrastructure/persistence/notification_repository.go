package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ notification.DeliveryRepository = (*GormDeliveryRepository)(nil)

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Delivery, error) {
	var model models.DeliveryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds deliveries matching the filter, newest first
func (r *GormDeliveryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Delivery, error) {
	var deliveryModels []models.DeliveryModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DeliveryModel{}), filter)

	if err := query.Find(&deliveryModels).Error; err != nil {
		return nil, err
	}

	deliveries := make([]notification.Delivery, len(deliveryModels))
	for i, model := range deliveryModels {
		deliveries[i] = *model.ToDomain()
	}
	return deliveries, nil
}

// FindByUser finds deliveries addressed to a user
func (r *GormDeliveryRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Delivery, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["user_id"] = userID
	return r.FindAll(ctx, filter)
}

// Save creates or updates a delivery record
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *notification.Delivery) error {
	var model models.DeliveryModel
	model.FromDomain(delivery)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Count counts deliveries matching the filter
func (r *GormDeliveryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DeliveryModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormDeliveryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDeliveryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("recipient ILIKE ? OR body ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "channel":
			query = query.Where("channel = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}

	return query
}

// GormTemplateRepository implements TemplateRepository using GORM
type GormTemplateRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ notification.TemplateRepository = (*GormTemplateRepository)(nil)

// NewGormTemplateRepository creates a new GormTemplateRepository
func NewGormTemplateRepository(db *gorm.DB) *GormTemplateRepository {
	return &GormTemplateRepository{db: db}
}

// FindByID finds a template by ID
func (r *GormTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Template, error) {
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTypeAndChannel finds the active template for a type and channel
func (r *GormTemplateRepository) FindByTypeAndChannel(ctx context.Context, typ notification.Type, channel notification.Channel) (*notification.Template, error) {
	var model models.TemplateModel
	if err := r.db.WithContext(ctx).
		Where("type = ? AND channel = ? AND active = ?", typ.String(), channel.String(), true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all templates
func (r *GormTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]notification.Template, error) {
	var templateModels []models.TemplateModel
	query := r.db.WithContext(ctx).Model(&models.TemplateModel{}).Order("name ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]notification.Template, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// Save creates or updates a template
func (r *GormTemplateRepository) Save(ctx context.Context, template *notification.Template) error {
	var model models.TemplateModel
	model.FromDomain(template)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a template
func (r *GormTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.TemplateModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormSettingsRepository implements SettingsRepository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ notification.SettingsRepository = (*GormSettingsRepository)(nil)

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByUser finds the settings row for a user
func (r *GormSettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*notification.Settings, error) {
	var model models.SettingsModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAdminSettings finds the settings of the first admin user
func (r *GormSettingsRepository) FindAdminSettings(ctx context.Context) (*notification.Settings, error) {
	var model models.SettingsModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = notification_settings.user_id").
		Where("users.role = ?", identity.RoleAdmin.String()).
		Order("users.created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a settings row
func (r *GormSettingsRepository) Save(ctx context.Context, settings *notification.Settings) error {
	var model models.SettingsModel
	model.FromDomain(settings)
	return r.db.WithContext(ctx).Save(&model).Error
}
