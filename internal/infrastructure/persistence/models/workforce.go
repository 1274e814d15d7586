package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/workforce"
)

// TimeEntryModel is the persistence model for the TimeEntry domain entity
type TimeEntryModel struct {
	BaseModel
	EmployeeID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClockIn    time.Time  `gorm:"not null"`
	ClockOut   *time.Time `gorm:"index"`
	Notes      string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TimeEntryModel) TableName() string {
	return "time_entries"
}

// ToDomain converts the persistence model to a domain TimeEntry entity
func (m *TimeEntryModel) ToDomain() *workforce.TimeEntry {
	return &workforce.TimeEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		EmployeeID: m.EmployeeID,
		ClockIn:    m.ClockIn,
		ClockOut:   m.ClockOut,
		Notes:      m.Notes,
	}
}

// FromDomain populates the persistence model from a domain TimeEntry entity
func (m *TimeEntryModel) FromDomain(t *workforce.TimeEntry) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.EmployeeID = t.EmployeeID
	m.ClockIn = t.ClockIn
	m.ClockOut = t.ClockOut
	m.Notes = t.Notes
}

// IncidentModel is the persistence model for the Incident domain entity
type IncidentModel struct {
	BaseModel
	ReporterID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Priority    string     `gorm:"type:varchar(20);not null"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	Resolution  string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (IncidentModel) TableName() string {
	return "incidents"
}

// ToDomain converts the persistence model to a domain Incident entity
func (m *IncidentModel) ToDomain() *workforce.Incident {
	return &workforce.Incident{
		BaseEntity:  m.BaseModel.ToDomain(),
		ReporterID:  m.ReporterID,
		AssigneeID:  m.AssigneeID,
		Title:       m.Title,
		Description: m.Description,
		Priority:    workforce.IncidentPriority(m.Priority),
		Status:      workforce.IncidentStatus(m.Status),
		Resolution:  m.Resolution,
	}
}

// FromDomain populates the persistence model from a domain Incident entity
func (m *IncidentModel) FromDomain(i *workforce.Incident) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.ReporterID = i.ReporterID
	m.AssigneeID = i.AssigneeID
	m.Title = i.Title
	m.Description = i.Description
	m.Priority = i.Priority.String()
	m.Status = i.Status.String()
	m.Resolution = i.Resolution
}
