package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/domain/workforce"
	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// GormTimeEntryRepository implements TimeEntryRepository using GORM
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ workforce.TimeEntryRepository = (*GormTimeEntryRepository)(nil)

// NewGormTimeEntryRepository creates a new GormTimeEntryRepository
func NewGormTimeEntryRepository(db *gorm.DB) *GormTimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// FindByID finds a time entry by ID
func (r *GormTimeEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.TimeEntry, error) {
	var model models.TimeEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByEmployee finds the open entry for an employee
func (r *GormTimeEntryRepository) FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*workforce.TimeEntry, error) {
	var model models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("employee_id = ? AND clock_out IS NULL", employeeID).
		Order("clock_in DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpen finds all open entries (employees currently clocked in)
func (r *GormTimeEntryRepository) FindOpen(ctx context.Context) ([]workforce.TimeEntry, error) {
	var entryModels []models.TimeEntryModel
	if err := r.db.WithContext(ctx).
		Where("clock_out IS NULL").
		Order("clock_in ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]workforce.TimeEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// FindByEmployee finds entries for an employee within a date range
func (r *GormTimeEntryRepository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]workforce.TimeEntry, error) {
	query := r.db.WithContext(ctx).Where("employee_id = ?", employeeID)
	if !from.IsZero() {
		query = query.Where("clock_in >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("clock_in <= ?", to)
	}

	var entryModels []models.TimeEntryModel
	if err := query.Order("clock_in DESC").Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]workforce.TimeEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Save creates or updates a time entry
func (r *GormTimeEntryRepository) Save(ctx context.Context, entry *workforce.TimeEntry) error {
	var model models.TimeEntryModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Save(&model).Error
}

// GormIncidentRepository implements IncidentRepository using GORM
type GormIncidentRepository struct {
	db *gorm.DB
}

// Interface assertion
var _ workforce.IncidentRepository = (*GormIncidentRepository)(nil)

// NewGormIncidentRepository creates a new GormIncidentRepository
func NewGormIncidentRepository(db *gorm.DB) *GormIncidentRepository {
	return &GormIncidentRepository{db: db}
}

// FindByID finds an incident by ID
func (r *GormIncidentRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.Incident, error) {
	var model models.IncidentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds incidents matching the filter
func (r *GormIncidentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.Incident, error) {
	var incidentModels []models.IncidentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.IncidentModel{}), filter)

	if err := query.Find(&incidentModels).Error; err != nil {
		return nil, err
	}

	incidents := make([]workforce.Incident, len(incidentModels))
	for i, model := range incidentModels {
		incidents[i] = *model.ToDomain()
	}
	return incidents, nil
}

// FindByStatus finds incidents in a given status
func (r *GormIncidentRepository) FindByStatus(ctx context.Context, status workforce.IncidentStatus, filter shared.Filter) ([]workforce.Incident, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["status"] = status.String()
	return r.FindAll(ctx, filter)
}

// Save creates or updates an incident
func (r *GormIncidentRepository) Save(ctx context.Context, incident *workforce.Incident) error {
	var model models.IncidentModel
	model.FromDomain(incident)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Count counts incidents matching the filter
func (r *GormIncidentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.IncidentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormIncidentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormIncidentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "reporter_id":
			query = query.Where("reporter_id = ?", value)
		case "assignee_id":
			query = query.Where("assignee_id = ?", value)
		}
	}

	return query
}
