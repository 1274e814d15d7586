package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/flamenca/backend/internal/domain/shared"
)

// DeliveryRepository defines the interface for delivery log persistence
type DeliveryRepository interface {
	// FindByID finds a delivery by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)

	// FindAll finds deliveries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Delivery, error)

	// FindByUser finds deliveries addressed to a user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Delivery, error)

	// Save creates or updates a delivery record
	Save(ctx context.Context, delivery *Delivery) error

	// Count counts deliveries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TemplateRepository defines the interface for template persistence
type TemplateRepository interface {
	// FindByID finds a template by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)

	// FindByTypeAndChannel finds the active template for a type and channel
	FindByTypeAndChannel(ctx context.Context, typ Type, channel Channel) (*Template, error)

	// FindAll finds all templates
	FindAll(ctx context.Context, filter shared.Filter) ([]Template, error)

	// Save creates or updates a template
	Save(ctx context.Context, template *Template) error

	// Delete deletes a template
	Delete(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository defines the interface for settings persistence
type SettingsRepository interface {
	// FindByUser finds the settings row for a user
	FindByUser(ctx context.Context, userID uuid.UUID) (*Settings, error)

	// FindAdminSettings finds the settings of the first admin user
	FindAdminSettings(ctx context.Context) (*Settings, error)

	// Save creates or updates a settings row
	Save(ctx context.Context, settings *Settings) error
}
