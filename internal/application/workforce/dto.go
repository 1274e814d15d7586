package workforce

import (
	"time"

	"github.com/flamenca/backend/internal/domain/workforce"
	"github.com/google/uuid"
)

// ClockInput contains the input for clocking in or out
type ClockInput struct {
	EmployeeID uuid.UUID
	// At is the clock time; zero means now
	At time.Time
	// Location is a free-form place label included in notifications
	Location string
	Notes    string
}

// ClockResult reports the outcome of a clock operation
type ClockResult struct {
	Entry *workforce.TimeEntry
	// NotificationSent is true when the admin was notified
	NotificationSent bool
}

// TimeSheetInput selects the entries for one employee in a date range
type TimeSheetInput struct {
	EmployeeID uuid.UUID
	From       time.Time
	To         time.Time
}

// TimeSheet summarizes an employee's entries in a range
type TimeSheet struct {
	EmployeeID uuid.UUID
	Entries    []workforce.TimeEntry
	// Total is the summed duration of all entries, open entries counted up
	// to now
	Total time.Duration
}

// ReportIncidentInput contains the input for reporting an incident
type ReportIncidentInput struct {
	ReporterID  uuid.UUID
	Title       string
	Description string
	Priority    workforce.IncidentPriority
}

// UpdateIncidentInput contains the input for updating an incident
type UpdateIncidentInput struct {
	IncidentID uuid.UUID
	Status     *workforce.IncidentStatus
	AssigneeID *uuid.UUID
	Resolution *string
}
