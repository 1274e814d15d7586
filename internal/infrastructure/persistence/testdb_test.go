package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/flamenca/backend/internal/infrastructure/persistence/models"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.ProductModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.InvoiceModel{},
		&models.TimeEntryModel{},
		&models.IncidentModel{},
		&models.DeliveryModel{},
		&models.TemplateModel{},
		&models.SettingsModel{},
	)
	require.NoError(t, err)

	return db
}
