package handler

import (
	appworkforce "github.com/flamenca/backend/internal/application/workforce"
	"github.com/flamenca/backend/internal/domain/workforce"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IncidentHandler handles incident HTTP requests
type IncidentHandler struct {
	BaseHandler
	incidentService *appworkforce.IncidentService
}

// NewIncidentHandler creates a new incident handler
func NewIncidentHandler(incidentService *appworkforce.IncidentService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

// ReportIncidentRequest is the report incident request body
type ReportIncidentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" binding:"required,oneof=low medium high urgent"`
}

// UpdateIncidentRequest is the update incident request body
type UpdateIncidentRequest struct {
	Status     *string    `json:"status"`
	AssigneeID *uuid.UUID `json:"assignee_id"`
	Resolution *string    `json:"resolution"`
}

// Report godoc
// @Summary  Report an incident
// @Tags     incidents
// @Router   /incidents [post]
func (h *IncidentHandler) Report(c *gin.Context) {
	reporterID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ReportIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	incident, err := h.incidentService.Report(c.Request.Context(), appworkforce.ReportIncidentInput{
		ReporterID:  reporterID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    workforce.IncidentPriority(req.Priority),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, incident)
}

// Update godoc
// @Summary  Update an incident
// @Tags     incidents
// @Router   /incidents/{id} [put]
func (h *IncidentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid incident ID")
		return
	}

	var req UpdateIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := appworkforce.UpdateIncidentInput{
		IncidentID: id,
		AssigneeID: req.AssigneeID,
		Resolution: req.Resolution,
	}
	if req.Status != nil {
		status := workforce.IncidentStatus(*req.Status)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid incident status")
			return
		}
		input.Status = &status
	}

	incident, err := h.incidentService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, incident)
}

// Get godoc
// @Summary  Get incident
// @Tags     incidents
// @Router   /incidents/{id} [get]
func (h *IncidentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid incident ID")
		return
	}

	incident, err := h.incidentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, incident)
}

// List godoc
// @Summary  List incidents
// @Tags     incidents
// @Router   /incidents [get]
func (h *IncidentHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if priority := c.Query("priority"); priority != "" {
		filter.Filters["priority"] = priority
	}

	result, err := h.incidentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
