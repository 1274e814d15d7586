package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamenca/backend/internal/domain/identity"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
)

func newTestDelivery(t *testing.T, channel notification.Channel, recipient string) *notification.Delivery {
	delivery, err := notification.NewDelivery(nil, &notification.Message{
		Channel:   channel,
		Type:      notification.TypeCustom,
		Recipient: recipient,
		Body:      "Mensaje de prueba",
	})
	require.NoError(t, err)
	return delivery
}

func TestGormDeliveryRepository_SaveAndFilter(t *testing.T) {
	repo := NewGormDeliveryRepository(setupTestDB(t))
	ctx := context.Background()

	sms := newTestDelivery(t, notification.ChannelSMS, "+34600111222")
	sms.MarkSent("test_sms_1", true)
	require.NoError(t, repo.Save(ctx, sms))

	email := newTestDelivery(t, notification.ChannelEmail, "maria@flamenca.es")
	email.MarkFailed("provider timeout")
	require.NoError(t, repo.Save(ctx, email))

	found, err := repo.FindByID(ctx, sms.ID)
	require.NoError(t, err)
	assert.Equal(t, notification.DeliveryStatusSent, found.Status)
	assert.True(t, found.Simulated)

	failed, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"status": notification.DeliveryStatusFailed.String()},
	})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, email.ID, failed[0].ID)

	byChannel, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"channel": notification.ChannelSMS.String()},
	})
	require.NoError(t, err)
	require.Len(t, byChannel, 1)
	assert.Equal(t, sms.ID, byChannel[0].ID)
}

func TestGormDeliveryRepository_FindByUser(t *testing.T) {
	repo := NewGormDeliveryRepository(setupTestDB(t))
	ctx := context.Background()

	userID := uuid.New()
	mine := newTestDelivery(t, notification.ChannelSMS, "+34600111222")
	mine.UserID = &userID
	require.NoError(t, repo.Save(ctx, mine))

	require.NoError(t, repo.Save(ctx, newTestDelivery(t, notification.ChannelSMS, "+34600333444")))

	deliveries, err := repo.FindByUser(ctx, userID, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.Equal(t, mine.ID, deliveries[0].ID)
}

func TestGormTemplateRepository_FindByTypeAndChannel(t *testing.T) {
	repo := NewGormTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	active, err := notification.NewTemplate("pedido-nuevo-sms", notification.TypeNewOrder,
		notification.ChannelSMS, "", "Nuevo pedido {{order_number}}")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, active))

	inactive, err := notification.NewTemplate("pedido-nuevo-sms-viejo", notification.TypeNewOrder,
		notification.ChannelWhatsApp, "", "Pedido {{order_number}}")
	require.NoError(t, err)
	inactive.Active = false
	require.NoError(t, repo.Save(ctx, inactive))

	found, err := repo.FindByTypeAndChannel(ctx, notification.TypeNewOrder, notification.ChannelSMS)
	require.NoError(t, err)
	assert.Equal(t, active.ID, found.ID)

	_, err = repo.FindByTypeAndChannel(ctx, notification.TypeNewOrder, notification.ChannelWhatsApp)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTemplateRepository_Delete(t *testing.T) {
	repo := NewGormTemplateRepository(setupTestDB(t))
	ctx := context.Background()

	tmpl, err := notification.NewTemplate("borrable", notification.TypeCustom,
		notification.ChannelEmail, "Asunto", "Cuerpo")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, tmpl))

	require.NoError(t, repo.Delete(ctx, tmpl.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tmpl.ID), shared.ErrNotFound)
}

func TestGormSettingsRepository_SaveAndFindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSettingsRepository(db)
	ctx := context.Background()

	userID := uuid.New()

	_, err := repo.FindByUser(ctx, userID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	settings, err := notification.NewSettings(userID)
	require.NoError(t, err)
	settings.SMSEnabled = true
	settings.SMSPhone = "+34600111222"
	require.NoError(t, repo.Save(ctx, settings))

	found, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.True(t, found.SMSEnabled)
	assert.Equal(t, "+34600111222", found.SMSPhone)

	found.EmailEnabled = true
	found.EmailAddress = "maria@flamenca.es"
	require.NoError(t, repo.Save(ctx, found))

	again, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	assert.True(t, again.EmailEnabled)
}

func TestGormSettingsRepository_FindAdminSettings(t *testing.T) {
	db := setupTestDB(t)
	settingsRepo := NewGormSettingsRepository(db)
	userRepo := NewGormUserRepository(db)
	ctx := context.Background()

	admin, err := identity.NewUser("admin@flamenca.es", "segura123", "Admin", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(ctx, admin))

	employee, err := identity.NewUser("empleada@flamenca.es", "segura123", "Empleada", identity.RoleEmployee)
	require.NoError(t, err)
	require.NoError(t, userRepo.Save(ctx, employee))

	adminSettings, err := notification.NewSettings(admin.ID)
	require.NoError(t, err)
	adminSettings.WhatsAppEnabled = true
	adminSettings.WhatsAppPhone = "+34600999888"
	require.NoError(t, settingsRepo.Save(ctx, adminSettings))

	employeeSettings, err := notification.NewSettings(employee.ID)
	require.NoError(t, err)
	require.NoError(t, settingsRepo.Save(ctx, employeeSettings))

	found, err := settingsRepo.FindAdminSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.UserID)
	assert.True(t, found.WhatsAppEnabled)
}
