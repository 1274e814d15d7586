package workforce

import (
	"context"
	"errors"
	"time"

	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/domain/workforce"
	"go.uber.org/zap"
)

// TimeService manages employee shifts. An employee has at most one open
// entry; clocking in twice without clocking out is rejected.
type TimeService struct {
	timeEntryRepo workforce.TimeEntryRepository
	userRepo      identity.UserRepository
	autoNotify    *appnotification.AutoNotifyService
	logger        *zap.Logger
}

// NewTimeService creates a new time tracking service
func NewTimeService(
	timeEntryRepo workforce.TimeEntryRepository,
	userRepo identity.UserRepository,
	autoNotify *appnotification.AutoNotifyService,
	logger *zap.Logger,
) *TimeService {
	return &TimeService{
		timeEntryRepo: timeEntryRepo,
		userRepo:      userRepo,
		autoNotify:    autoNotify,
		logger:        logger,
	}
}

// ClockIn opens a shift for the employee and notifies the admin
func (s *TimeService) ClockIn(ctx context.Context, input ClockInput) (*ClockResult, error) {
	_, err := s.timeEntryRepo.FindOpenByEmployee(ctx, input.EmployeeID)
	if err == nil {
		return nil, shared.NewDomainError("ALREADY_CLOCKED_IN", "Employee already has an open shift")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	entry, err := workforce.NewTimeEntry(input.EmployeeID, input.At)
	if err != nil {
		return nil, err
	}
	entry.Notes = input.Notes

	if err := s.timeEntryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Employee clocked in",
		zap.String("employee_id", input.EmployeeID.String()),
		zap.Time("clock_in", entry.ClockIn))

	notified := s.notifyClock(ctx, input, entry.ClockIn, true)
	return &ClockResult{Entry: entry, NotificationSent: notified}, nil
}

// ClockOut closes the employee's open shift and notifies the admin
func (s *TimeService) ClockOut(ctx context.Context, input ClockInput) (*ClockResult, error) {
	entry, err := s.timeEntryRepo.FindOpenByEmployee(ctx, input.EmployeeID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_CLOCKED_IN", "Employee has no open shift")
		}
		return nil, err
	}

	if err := entry.Close(input.At); err != nil {
		return nil, err
	}
	if input.Notes != "" {
		entry.Notes = input.Notes
	}

	if err := s.timeEntryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Employee clocked out",
		zap.String("employee_id", input.EmployeeID.String()),
		zap.Duration("worked", entry.Duration()))

	notified := s.notifyClock(ctx, input, *entry.ClockOut, false)
	return &ClockResult{Entry: entry, NotificationSent: notified}, nil
}

// TimeSheet returns an employee's entries and total worked time in a range
func (s *TimeService) TimeSheet(ctx context.Context, input TimeSheetInput) (*TimeSheet, error) {
	entries, err := s.timeEntryRepo.FindByEmployee(ctx, input.EmployeeID, input.From, input.To)
	if err != nil {
		return nil, err
	}

	sheet := &TimeSheet{EmployeeID: input.EmployeeID, Entries: entries}
	for i := range entries {
		sheet.Total += entries[i].Duration()
	}
	return sheet, nil
}

// ClockedIn returns all currently open entries
func (s *TimeService) ClockedIn(ctx context.Context) ([]workforce.TimeEntry, error) {
	return s.timeEntryRepo.FindOpen(ctx)
}

// notifyClock sends the clock in/out notification to the admin best-effort
func (s *TimeService) notifyClock(ctx context.Context, input ClockInput, at time.Time, clockIn bool) bool {
	employeeName := input.EmployeeID.String()
	if user, err := s.userRepo.FindByID(ctx, input.EmployeeID); err == nil {
		employeeName = user.DisplayName
	}

	location := input.Location
	if location == "" {
		location = "Tienda"
	}

	return s.autoNotify.NotifyClockEvent(ctx, appnotification.ClockEvent{
		EmployeeName: employeeName,
		Time:         at.Format("15:04"),
		Location:     location,
		ClockIn:      clockIn,
	})
}
