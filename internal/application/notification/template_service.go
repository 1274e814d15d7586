package notification

import (
	"context"

	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService manages reusable notification templates
type TemplateService struct {
	templateRepo notification.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo notification.TemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Create creates a new template
func (s *TemplateService) Create(ctx context.Context, input TemplateInput) (*notification.Template, error) {
	template, err := notification.NewTemplate(input.Name, input.Type, input.Channel, input.Subject, input.Body)
	if err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		s.logger.Error("Failed to save template", zap.String("name", input.Name), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Notification template created",
		zap.String("template_id", template.ID.String()),
		zap.String("name", template.Name))
	return template, nil
}

// Update modifies an existing template
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, input TemplateInput) (*notification.Template, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := notification.NewTemplate(input.Name, input.Type, input.Channel, input.Subject, input.Body)
	if err != nil {
		return nil, err
	}

	template.Name = updated.Name
	template.Type = updated.Type
	template.Channel = updated.Channel
	template.Subject = updated.Subject
	template.Body = updated.Body
	template.Touch()

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// Get returns a template by ID
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*notification.Template, error) {
	return s.templateRepo.FindByID(ctx, id)
}

// List returns all templates
func (s *TemplateService) List(ctx context.Context, filter shared.Filter) ([]notification.Template, error) {
	return s.templateRepo.FindAll(ctx, filter)
}

// Delete removes a template
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Notification template deleted", zap.String("template_id", id.String()))
	return nil
}
