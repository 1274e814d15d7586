package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ identity.UserRepository = (*GormUserRepository)(nil)

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.UserModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds users matching the filter
func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var userModels []models.UserModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.UserModel{}), filter)

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]identity.User, len(userModels))
	for i, model := range userModels {
		users[i] = *model.ToDomain()
	}
	return users, nil
}

// FindByRole finds users holding a role
func (r *GormUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	var userModels []models.UserModel
	if err := r.db.WithContext(ctx).
		Where("role = ?", role.String()).
		Order("created_at ASC").
		Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]identity.User, len(userModels))
	for i, model := range userModels {
		users[i] = *model.ToDomain()
	}
	return users, nil
}

// Save creates or updates a user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	var model models.UserModel
	model.FromDomain(user)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete deletes a user
func (r *GormUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.UserModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts users matching the filter
func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.UserModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("display_name ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormUserRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR display_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}
