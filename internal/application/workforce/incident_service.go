package workforce

import (
	"context"

	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/domain/workforce"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IncidentService manages workplace incidents
type IncidentService struct {
	incidentRepo workforce.IncidentRepository
	userRepo     identity.UserRepository
	autoNotify   *appnotification.AutoNotifyService
	logger       *zap.Logger
}

// NewIncidentService creates a new incident service
func NewIncidentService(
	incidentRepo workforce.IncidentRepository,
	userRepo identity.UserRepository,
	autoNotify *appnotification.AutoNotifyService,
	logger *zap.Logger,
) *IncidentService {
	return &IncidentService{
		incidentRepo: incidentRepo,
		userRepo:     userRepo,
		autoNotify:   autoNotify,
		logger:       logger,
	}
}

// Report creates a new incident and notifies the admin
func (s *IncidentService) Report(ctx context.Context, input ReportIncidentInput) (*workforce.Incident, error) {
	incident, err := workforce.NewIncident(input.ReporterID, input.Title, input.Description, input.Priority)
	if err != nil {
		return nil, err
	}

	if err := s.incidentRepo.Save(ctx, incident); err != nil {
		return nil, err
	}

	s.logger.Info("Incident reported",
		zap.String("incident_id", incident.ID.String()),
		zap.String("priority", incident.Priority.String()))

	reporterName := input.ReporterID.String()
	if user, err := s.userRepo.FindByID(ctx, input.ReporterID); err == nil {
		reporterName = user.DisplayName
	}
	s.autoNotify.NotifyIncident(ctx, appnotification.IncidentEvent{
		Title:      incident.Title,
		Priority:   incident.Priority.String(),
		ReportedBy: reporterName,
	})

	return incident, nil
}

// Update applies status, assignee and resolution changes to an incident
func (s *IncidentService) Update(ctx context.Context, input UpdateIncidentInput) (*workforce.Incident, error) {
	incident, err := s.incidentRepo.FindByID(ctx, input.IncidentID)
	if err != nil {
		return nil, err
	}

	if input.AssigneeID != nil {
		if err := incident.Assign(*input.AssigneeID); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if *input.Status == workforce.IncidentStatusResolved && input.Resolution != nil {
			if err := incident.Resolve(*input.Resolution); err != nil {
				return nil, err
			}
		} else if err := incident.UpdateStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.incidentRepo.Save(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// Get returns an incident by ID
func (s *IncidentService) Get(ctx context.Context, id uuid.UUID) (*workforce.Incident, error) {
	return s.incidentRepo.FindByID(ctx, id)
}

// List returns incidents matching the filter
func (s *IncidentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[workforce.Incident], error) {
	incidents, err := s.incidentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.incidentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.NewPaginated(incidents, total, filter.Page, filter.PageSize), nil
}
