package workforce

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/flamenca/backend/internal/domain/workforce"
)

func TestReportIncident(t *testing.T) {
	reporter := newEmployee(t)

	incidentRepo := new(MockIncidentRepository)
	incidentRepo.On("Save", mock.Anything, mock.AnythingOfType("*workforce.Incident")).Return(nil)

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, reporter.ID).Return(reporter, nil)

	fixture := newNotifyFixture(t, adminClockSettings(t))
	service := NewIncidentService(incidentRepo, userRepo, fixture.autoNotify, zap.NewNop())

	incident, err := service.Report(context.Background(), ReportIncidentInput{
		ReporterID:  reporter.ID,
		Title:       "Router de la tienda caído",
		Description: "El TPV no tiene conexión desde las 10:00",
		Priority:    workforce.IncidentPriorityUrgent,
	})
	require.NoError(t, err)

	assert.Equal(t, workforce.IncidentStatusOpen, incident.Status)
	assert.Equal(t, workforce.IncidentPriorityUrgent, incident.Priority)

	// The admin is alerted by SMS with the reporter's name
	require.Len(t, fixture.smsSender.sent, 1)
	assert.Contains(t, fixture.smsSender.sent[0].Body, "INCIDENCIA URGENT")
	assert.Contains(t, fixture.smsSender.sent[0].Body, "María")
	incidentRepo.AssertExpectations(t)
}

func TestReportIncidentInvalidPriority(t *testing.T) {
	fixture := newNotifyFixture(t, nil)
	service := NewIncidentService(new(MockIncidentRepository), new(MockUserRepository), fixture.autoNotify, zap.NewNop())

	_, err := service.Report(context.Background(), ReportIncidentInput{
		ReporterID: uuid.New(),
		Title:      "Sin prioridad",
		Priority:   workforce.IncidentPriority("extrema"),
	})
	assert.Error(t, err)
}

func TestUpdateIncidentAssignAndReview(t *testing.T) {
	incident, err := workforce.NewIncident(uuid.New(), "Escaparate roto", "", workforce.IncidentPriorityHigh)
	require.NoError(t, err)
	assignee := uuid.New()
	inReview := workforce.IncidentStatusInReview

	incidentRepo := new(MockIncidentRepository)
	incidentRepo.On("FindByID", mock.Anything, incident.ID).Return(incident, nil)
	incidentRepo.On("Save", mock.Anything, incident).Return(nil)

	fixture := newNotifyFixture(t, nil)
	service := NewIncidentService(incidentRepo, new(MockUserRepository), fixture.autoNotify, zap.NewNop())

	updated, err := service.Update(context.Background(), UpdateIncidentInput{
		IncidentID: incident.ID,
		AssigneeID: &assignee,
		Status:     &inReview,
	})
	require.NoError(t, err)

	assert.Equal(t, workforce.IncidentStatusInReview, updated.Status)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, assignee, *updated.AssigneeID)
}

func TestUpdateIncidentResolveWithResolution(t *testing.T) {
	incident, err := workforce.NewIncident(uuid.New(), "Router de la tienda caído", "", workforce.IncidentPriorityUrgent)
	require.NoError(t, err)
	resolved := workforce.IncidentStatusResolved
	resolution := "Reiniciado el router de la tienda"

	incidentRepo := new(MockIncidentRepository)
	incidentRepo.On("FindByID", mock.Anything, incident.ID).Return(incident, nil)
	incidentRepo.On("Save", mock.Anything, incident).Return(nil)

	fixture := newNotifyFixture(t, nil)
	service := NewIncidentService(incidentRepo, new(MockUserRepository), fixture.autoNotify, zap.NewNop())

	updated, err := service.Update(context.Background(), UpdateIncidentInput{
		IncidentID: incident.ID,
		Status:     &resolved,
		Resolution: &resolution,
	})
	require.NoError(t, err)

	assert.Equal(t, workforce.IncidentStatusResolved, updated.Status)
	assert.Equal(t, resolution, updated.Resolution)
}

func TestUpdateIncidentInvalidTransition(t *testing.T) {
	incident, err := workforce.NewIncident(uuid.New(), "Cerrada", "", workforce.IncidentPriorityLow)
	require.NoError(t, err)
	require.NoError(t, incident.UpdateStatus(workforce.IncidentStatusClosed))
	reopen := workforce.IncidentStatusOpen

	incidentRepo := new(MockIncidentRepository)
	incidentRepo.On("FindByID", mock.Anything, incident.ID).Return(incident, nil)

	fixture := newNotifyFixture(t, nil)
	service := NewIncidentService(incidentRepo, new(MockUserRepository), fixture.autoNotify, zap.NewNop())

	_, err = service.Update(context.Background(), UpdateIncidentInput{
		IncidentID: incident.ID,
		Status:     &reopen,
	})
	assert.Error(t, err)
	incidentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestListIncidents(t *testing.T) {
	incident, err := workforce.NewIncident(uuid.New(), "Escaparate roto", "", workforce.IncidentPriorityMedium)
	require.NoError(t, err)

	filter := shared.DefaultFilter()
	incidentRepo := new(MockIncidentRepository)
	incidentRepo.On("FindAll", mock.Anything, filter).Return([]workforce.Incident{*incident}, nil)
	incidentRepo.On("Count", mock.Anything, filter).Return(int64(1), nil)

	fixture := newNotifyFixture(t, nil)
	service := NewIncidentService(incidentRepo, new(MockUserRepository), fixture.autoNotify, zap.NewNop())

	page, err := service.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Len(t, page.Items, 1)
}
