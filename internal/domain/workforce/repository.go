package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// TimeEntryRepository defines the interface for time entry persistence
type TimeEntryRepository interface {
	// FindByID finds a time entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TimeEntry, error)

	// FindOpenByEmployee finds the open entry for an employee, if any
	FindOpenByEmployee(ctx context.Context, employeeID uuid.UUID) (*TimeEntry, error)

	// FindOpen finds all open entries (employees currently clocked in)
	FindOpen(ctx context.Context) ([]TimeEntry, error)

	// FindByEmployee finds entries for an employee within a date range
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]TimeEntry, error)

	// Save creates or updates a time entry
	Save(ctx context.Context, entry *TimeEntry) error
}

// IncidentRepository defines the interface for incident persistence
type IncidentRepository interface {
	// FindByID finds an incident by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Incident, error)

	// FindAll finds incidents matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Incident, error)

	// FindByStatus finds incidents in a given status
	FindByStatus(ctx context.Context, status IncidentStatus, filter shared.Filter) ([]Incident, error)

	// Save creates or updates an incident
	Save(ctx context.Context, incident *Incident) error

	// Count counts incidents matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
