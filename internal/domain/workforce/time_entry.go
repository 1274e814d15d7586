package workforce

import (
	"time"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// TimeEntry represents one work shift of an employee. An open entry has a
// nil ClockOut; an employee is considered clocked in while they have an
// open entry.
type TimeEntry struct {
	shared.BaseEntity
	EmployeeID uuid.UUID
	ClockIn    time.Time
	ClockOut   *time.Time
	Notes      string
}

// NewTimeEntry opens a new shift for the employee
func NewTimeEntry(employeeID uuid.UUID, clockIn time.Time) (*TimeEntry, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if clockIn.IsZero() {
		clockIn = time.Now()
	}

	return &TimeEntry{
		BaseEntity: shared.NewBaseEntity(),
		EmployeeID: employeeID,
		ClockIn:    clockIn,
	}, nil
}

// IsOpen reports whether the shift is still open
func (t *TimeEntry) IsOpen() bool {
	return t.ClockOut == nil
}

// Close closes the shift at the given time
func (t *TimeEntry) Close(clockOut time.Time) error {
	if t.ClockOut != nil {
		return shared.NewDomainError("ALREADY_CLOCKED_OUT", "Time entry is already closed")
	}
	if clockOut.IsZero() {
		clockOut = time.Now()
	}
	if clockOut.Before(t.ClockIn) {
		return shared.NewDomainError("INVALID_CLOCK_OUT", "Clock out cannot be before clock in")
	}
	t.ClockOut = &clockOut
	t.Touch()
	return nil
}

// Duration returns the worked duration, or the elapsed time for open shifts
func (t *TimeEntry) Duration() time.Duration {
	if t.ClockOut != nil {
		return t.ClockOut.Sub(t.ClockIn)
	}
	return time.Since(t.ClockIn)
}
