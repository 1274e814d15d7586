package workforce

import (
	"strings"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// IncidentStatus represents the status of an incident
type IncidentStatus string

const (
	IncidentStatusOpen     IncidentStatus = "open"
	IncidentStatusInReview IncidentStatus = "in_review"
	IncidentStatusResolved IncidentStatus = "resolved"
	IncidentStatusClosed   IncidentStatus = "closed"
)

// IsValid checks if the status is a valid IncidentStatus
func (s IncidentStatus) IsValid() bool {
	switch s {
	case IncidentStatusOpen, IncidentStatusInReview, IncidentStatusResolved, IncidentStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of IncidentStatus
func (s IncidentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s IncidentStatus) CanTransitionTo(target IncidentStatus) bool {
	switch s {
	case IncidentStatusOpen:
		return target == IncidentStatusInReview || target == IncidentStatusResolved || target == IncidentStatusClosed
	case IncidentStatusInReview:
		return target == IncidentStatusResolved || target == IncidentStatusClosed
	case IncidentStatusResolved:
		return target == IncidentStatusClosed
	case IncidentStatusClosed:
		return false
	}
	return false
}

// IncidentPriority represents the urgency of an incident
type IncidentPriority string

const (
	IncidentPriorityLow    IncidentPriority = "low"
	IncidentPriorityMedium IncidentPriority = "medium"
	IncidentPriorityHigh   IncidentPriority = "high"
	IncidentPriorityUrgent IncidentPriority = "urgent"
)

// IsValid checks if the priority is a valid IncidentPriority
func (p IncidentPriority) IsValid() bool {
	switch p {
	case IncidentPriorityLow, IncidentPriorityMedium, IncidentPriorityHigh, IncidentPriorityUrgent:
		return true
	}
	return false
}

// String returns the string representation of IncidentPriority
func (p IncidentPriority) String() string {
	return string(p)
}

// Incident represents a workplace incident reported by an employee
type Incident struct {
	shared.BaseEntity
	ReporterID  uuid.UUID
	AssigneeID  *uuid.UUID
	Title       string
	Description string
	Priority    IncidentPriority
	Status      IncidentStatus
	Resolution  string
}

// NewIncident creates a new open incident
func NewIncident(reporterID uuid.UUID, title, description string, priority IncidentPriority) (*Incident, error) {
	if reporterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REPORTER", "Reporter ID cannot be empty")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Incident title cannot be empty")
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Invalid incident priority")
	}

	return &Incident{
		BaseEntity:  shared.NewBaseEntity(),
		ReporterID:  reporterID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      IncidentStatusOpen,
	}, nil
}

// Assign assigns the incident to a handler
func (i *Incident) Assign(assigneeID uuid.UUID) error {
	if assigneeID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee ID cannot be empty")
	}
	i.AssigneeID = &assigneeID
	i.Touch()
	return nil
}

// UpdateStatus transitions the incident to a new status
func (i *Incident) UpdateStatus(target IncidentStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INCIDENT_STATUS", "Invalid incident status")
	}
	if !i.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"Cannot transition incident from "+i.Status.String()+" to "+target.String())
	}
	i.Status = target
	i.Touch()
	return nil
}

// Resolve resolves the incident with a resolution note
func (i *Incident) Resolve(resolution string) error {
	if err := i.UpdateStatus(IncidentStatusResolved); err != nil {
		return err
	}
	i.Resolution = resolution
	return nil
}
