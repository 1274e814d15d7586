package handler

import (
	"time"

	appworkforce "github.com/flamenca/backend/internal/application/workforce"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TimeEntryHandler handles time tracking HTTP requests
type TimeEntryHandler struct {
	BaseHandler
	timeService *appworkforce.TimeService
}

// NewTimeEntryHandler creates a new time entry handler
func NewTimeEntryHandler(timeService *appworkforce.TimeService) *TimeEntryHandler {
	return &TimeEntryHandler{timeService: timeService}
}

// ClockRequest is the clock in and clock out request body
type ClockRequest struct {
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// ClockIn godoc
// @Summary  Clock in the caller
// @Tags     time-entries
// @Router   /time-entries/clock-in [post]
func (h *TimeEntryHandler) ClockIn(c *gin.Context) {
	employeeID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BindError(c, err)
		return
	}

	result, err := h.timeService.ClockIn(c.Request.Context(), appworkforce.ClockInput{
		EmployeeID: employeeID,
		Location:   req.Location,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, gin.H{
		"entry":             result.Entry,
		"notification_sent": result.NotificationSent,
	})
}

// ClockOut godoc
// @Summary  Clock out the caller
// @Tags     time-entries
// @Router   /time-entries/clock-out [post]
func (h *TimeEntryHandler) ClockOut(c *gin.Context) {
	employeeID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ClockRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		h.BindError(c, err)
		return
	}

	result, err := h.timeService.ClockOut(c.Request.Context(), appworkforce.ClockInput{
		EmployeeID: employeeID,
		Location:   req.Location,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"entry":             result.Entry,
		"notification_sent": result.NotificationSent,
	})
}

// TimeSheet godoc
// @Summary  Get an employee's time sheet
// @Tags     time-entries
// @Router   /time-entries/{id}/timesheet [get]
func (h *TimeEntryHandler) TimeSheet(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		h.BadRequest(c, "Invalid date range, expected RFC 3339 timestamps")
		return
	}

	sheet, err := h.timeService.TimeSheet(c.Request.Context(), appworkforce.TimeSheetInput{
		EmployeeID: employeeID,
		From:       from,
		To:         to,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"employee_id":   sheet.EmployeeID,
		"entries":       sheet.Entries,
		"total_minutes": int(sheet.Total.Minutes()),
	})
}

// ClockedIn godoc
// @Summary  List currently clocked-in employees
// @Tags     time-entries
// @Router   /time-entries/clocked-in [get]
func (h *TimeEntryHandler) ClockedIn(c *gin.Context) {
	entries, err := h.timeService.ClockedIn(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// parseDateRange reads the from/to query parameters, defaulting to the last
// 30 days
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}
