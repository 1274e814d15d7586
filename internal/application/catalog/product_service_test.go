package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/domain/shared"
)

type stockNotifyFixture struct {
	autoNotify     *appnotification.AutoNotifyService
	smsSender      *stubSender
	whatsappSender *stubSender
}

// newStockNotifyFixture wires an AutoNotifyService with stub senders. A nil
// settings argument leaves notifications unconfigured.
func newStockNotifyFixture(t *testing.T, settings *notification.Settings) *stockNotifyFixture {
	t.Helper()
	sms := &stubSender{channel: notification.ChannelSMS}
	whatsapp := &stubSender{channel: notification.ChannelWhatsApp}
	dispatcher := appnotification.NewDispatcher(
		[]notification.Sender{sms, whatsapp},
		&fakeDeliveryRepository{},
		nil,
		zap.NewNop(),
	)
	autoNotify := appnotification.NewAutoNotifyService(
		dispatcher,
		&fakeSettingsRepository{settings: settings},
		nil,
		nil,
		zap.NewNop(),
	)
	return &stockNotifyFixture{autoNotify: autoNotify, smsSender: sms, whatsappSender: whatsapp}
}

func adminStockSettings(t *testing.T) *notification.Settings {
	t.Helper()
	settings, err := notification.NewSettings(uuid.New())
	require.NoError(t, err)
	require.NoError(t, settings.EnableSMS("+34600111222"))
	require.NoError(t, settings.EnableWhatsApp("+34600111222"))
	return settings
}

func newStockedProduct(t *testing.T, name string, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(name, "SKU-"+name, decimal.RequireFromString("12.50"), stock)
	require.NoError(t, err)
	return product
}

func TestCreateProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	product, err := service.Create(context.Background(), CreateProductInput{
		Name:          "Castañuelas",
		SKU:           "CAST-01",
		Price:         decimal.RequireFromString("18.00"),
		StockQuantity: 20,
		Category:      "Complementos",
	})
	require.NoError(t, err)

	assert.Equal(t, "Castañuelas", product.Name)
	assert.Equal(t, "Complementos", product.Category)
	assert.Nil(t, product.ExternalID)
	productRepo.AssertExpectations(t)
}

func TestUpdateProduct(t *testing.T) {
	product := newStockedProduct(t, "Abanico", 10)
	newPrice := decimal.RequireFromString("14.00")
	newName := "Abanico sevillano"

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	updated, err := service.Update(context.Background(), UpdateProductInput{
		ID:    product.ID,
		Name:  &newName,
		Price: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "Abanico sevillano", updated.Name)
	assert.True(t, newPrice.Equal(updated.Price))
}

func TestAdjustStock(t *testing.T) {
	product := newStockedProduct(t, "Abanico", 10)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	fixture := newStockNotifyFixture(t, adminStockSettings(t))
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	updated, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: product.ID,
		Delta:     -3,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, updated.StockQuantity)
	assert.Empty(t, fixture.smsSender.sent)
	assert.Empty(t, fixture.whatsappSender.sent)
}

func TestAdjustStockAlertsOnLowThreshold(t *testing.T) {
	product := newStockedProduct(t, "Castañuelas", 6)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	fixture := newStockNotifyFixture(t, adminStockSettings(t))
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	_, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: product.ID,
		Delta:     -2,
	})
	require.NoError(t, err)

	require.Len(t, fixture.whatsappSender.sent, 1)
	assert.Contains(t, fixture.whatsappSender.sent[0].Body, "STOCK BAJO")
	assert.Contains(t, fixture.whatsappSender.sent[0].Body, "Castañuelas: 4 unidades")
	assert.Empty(t, fixture.smsSender.sent)
}

func TestAdjustStockAlertsOnCriticalThreshold(t *testing.T) {
	product := newStockedProduct(t, "Castañuelas", 3)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	fixture := newStockNotifyFixture(t, adminStockSettings(t))
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	_, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: product.ID,
		Delta:     -2,
	})
	require.NoError(t, err)

	require.Len(t, fixture.smsSender.sent, 1)
	assert.Contains(t, fixture.smsSender.sent[0].Body, "STOCK CRÍTICO")
	assert.Contains(t, fixture.smsSender.sent[0].Body, "Castañuelas (1)")
	assert.Empty(t, fixture.whatsappSender.sent)
}

func TestAdjustStockDoesNotRepeatAlerts(t *testing.T) {
	// Already below the low threshold before the adjustment
	product := newStockedProduct(t, "Castañuelas", 4)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	fixture := newStockNotifyFixture(t, adminStockSettings(t))
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	_, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: product.ID,
		Delta:     -1,
	})
	require.NoError(t, err)

	assert.Empty(t, fixture.smsSender.sent)
	assert.Empty(t, fixture.whatsappSender.sent)
}

func TestAdjustStockRejectsNegativeResult(t *testing.T) {
	product := newStockedProduct(t, "Abanico", 2)

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(productRepo, &fakeStorefront{}, fixture.autoNotify, zap.NewNop())

	_, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID: product.ID,
		Delta:     -5,
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdjustStockPushesToStorefront(t *testing.T) {
	product := newStockedProduct(t, "Abanico", 10)
	externalID := "501"
	product.ExternalID = &externalID

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	storefront := &fakeStorefront{}
	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(productRepo, storefront, fixture.autoNotify, zap.NewNop())

	_, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID:        product.ID,
		Delta:            -1,
		PushToStorefront: true,
	})
	require.NoError(t, err)

	require.Len(t, storefront.updated, 1)
	assert.Equal(t, "501", storefront.updated[0].ExternalID)
	assert.Equal(t, 9, storefront.updated[0].StockQuantity)
}

func TestAdjustStockStorefrontFailureDoesNotFail(t *testing.T) {
	product := newStockedProduct(t, "Abanico", 10)
	externalID := "501"
	product.ExternalID = &externalID

	productRepo := new(MockProductRepository)
	productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	productRepo.On("Save", mock.Anything, product).Return(nil)

	storefront := &fakeStorefront{updateErr: integration.ErrStorefrontRequestFailed}
	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(productRepo, storefront, fixture.autoNotify, zap.NewNop())

	updated, err := service.AdjustStock(context.Background(), AdjustStockInput{
		ProductID:        product.ID,
		Delta:            -1,
		PushToStorefront: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.StockQuantity)
}

func TestRefreshFromStorefront(t *testing.T) {
	storefront := &fakeStorefront{
		pages: [][]integration.StorefrontProduct{
			{
				{ExternalID: "501", Name: "Vestido flamenco", SKU: "VF-01",
					Price: decimal.RequireFromString("89.00"), StockQuantity: 12, StockStatus: "instock"},
				{ExternalID: "502", Name: "", SKU: "BAD-01",
					Price: decimal.RequireFromString("5.00"), StockQuantity: 3},
			},
			{
				{ExternalID: "503", Name: "Castañuelas", SKU: "CAST-01",
					Price: decimal.RequireFromString("18.00"), StockQuantity: 1, StockStatus: "instock"},
			},
		},
		total: 3,
	}

	productRepo := new(MockProductRepository)
	productRepo.On("UpsertByExternalID", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
	productRepo.On("FindLowStock", mock.Anything, catalog.LowStockThreshold).
		Return([]catalog.Product{
			*newStockedProduct(t, "Castañuelas", 1),
			*newStockedProduct(t, "Peineta", 4),
		}, nil)

	fixture := newStockNotifyFixture(t, adminStockSettings(t))
	service := NewProductService(productRepo, storefront, fixture.autoNotify, zap.NewNop())

	result, err := service.RefreshFromStorefront(context.Background())
	require.NoError(t, err)

	// The nameless product is skipped, the other two are upserted
	assert.Equal(t, 2, result.Refreshed)
	assert.Equal(t, int64(3), result.Total)
	productRepo.AssertNumberOfCalls(t, "UpsertByExternalID", 2)

	// Each product lands in exactly one alert
	assert.True(t, result.CriticalStockAlerted)
	assert.True(t, result.LowStockAlerted)
	require.Len(t, fixture.smsSender.sent, 1)
	assert.Contains(t, fixture.smsSender.sent[0].Body, "Castañuelas (1)")
	assert.NotContains(t, fixture.smsSender.sent[0].Body, "Peineta")
	require.Len(t, fixture.whatsappSender.sent, 1)
	assert.Contains(t, fixture.whatsappSender.sent[0].Body, "Peineta: 4 unidades")
	assert.NotContains(t, fixture.whatsappSender.sent[0].Body, "Castañuelas")
}

func TestSyncSingleProduct(t *testing.T) {
	storefront := &fakeStorefront{
		products: map[string]*integration.StorefrontProduct{
			"501": {ExternalID: "501", Name: "Vestido flamenco", SKU: "VF-01",
				Price: decimal.RequireFromString("89.00"), StockQuantity: 12,
				Category: "Vestidos", ImageURLs: []string{"https://example.com/v.jpg"}},
		},
	}

	productRepo := new(MockProductRepository)
	var upserted *catalog.Product
	productRepo.On("UpsertByExternalID", mock.Anything, mock.AnythingOfType("*catalog.Product")).
		Run(func(args mock.Arguments) {
			upserted = args.Get(1).(*catalog.Product)
		}).
		Return(nil)

	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(productRepo, storefront, fixture.autoNotify, zap.NewNop())

	product, err := service.SyncSingleProduct(context.Background(), "501")
	require.NoError(t, err)

	require.NotNil(t, product.ExternalID)
	assert.Equal(t, "501", *product.ExternalID)
	assert.Equal(t, "Vestidos", product.Category)
	assert.Equal(t, "https://example.com/v.jpg", product.ImageURL)
	assert.Same(t, product, upserted)
}

func TestSyncSingleProductNotFound(t *testing.T) {
	storefront := &fakeStorefront{products: map[string]*integration.StorefrontProduct{}}

	fixture := newStockNotifyFixture(t, nil)
	service := NewProductService(new(MockProductRepository), storefront, fixture.autoNotify, zap.NewNop())

	_, err := service.SyncSingleProduct(context.Background(), "9999")
	assert.ErrorIs(t, err, integration.ErrProductNotFound)
}
