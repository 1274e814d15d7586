package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamenca/backend/internal/domain/catalog"
	"github.com/flamenca/backend/internal/domain/shared"
)

func newStorefrontProduct(t *testing.T, externalID, name string, stock int) *catalog.Product {
	product, err := catalog.NewProduct(name, "SKU-"+externalID, decimal.RequireFromString("29.90"), stock)
	require.NoError(t, err)
	product.ExternalID = &externalID
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()

	product, err := catalog.NewProduct("Mantón bordado", "MAN-001", decimal.RequireFromString("85.00"), 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mantón bordado", found.Name)
	assert.Equal(t, 10, found.StockQuantity)
	assert.True(t, decimal.RequireFromString("85.00").Equal(found.Price))

	bySKU, err := repo.FindBySKU(ctx, "MAN-001")
	require.NoError(t, err)
	assert.Equal(t, product.ID, bySKU.ID)

	_, err = repo.FindBySKU(ctx, "NOPE")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_UpsertByExternalID(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertByExternalID(ctx, newStorefrontProduct(t, "501", "Traje de gitana", 8)))

	// A later sync sees the same product with fresh data
	updated := newStorefrontProduct(t, "501", "Traje de gitana rojo", 3)
	updated.Price = decimal.RequireFromString("35.00")
	require.NoError(t, repo.UpsertByExternalID(ctx, updated))

	found, err := repo.FindByExternalID(ctx, "501")
	require.NoError(t, err)
	assert.Equal(t, "Traje de gitana rojo", found.Name)
	assert.Equal(t, 3, found.StockQuantity)
	assert.True(t, decimal.RequireFromString("35.00").Equal(found.Price))

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormProductRepository_UpsertRequiresExternalID(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))

	product, err := catalog.NewProduct("Local", "LOC-1", decimal.NewFromInt(5), 1)
	require.NoError(t, err)

	assert.Error(t, repo.UpsertByExternalID(context.Background(), product))
}

func TestGormProductRepository_FindLowStock(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.UpsertByExternalID(ctx, newStorefrontProduct(t, "601", "Castañuelas", 1)))
	require.NoError(t, repo.UpsertByExternalID(ctx, newStorefrontProduct(t, "602", "Zapatos de baile", 4)))
	require.NoError(t, repo.UpsertByExternalID(ctx, newStorefrontProduct(t, "603", "Falda de ensayo", 50)))

	inactive := newStorefrontProduct(t, "604", "Descatalogado", 0)
	inactive.Active = false
	require.NoError(t, repo.UpsertByExternalID(ctx, inactive))

	low, err := repo.FindLowStock(ctx, catalog.LowStockThreshold)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Castañuelas", low[0].Name)
	assert.Equal(t, "Zapatos de baile", low[1].Name)
}

func TestGormProductRepository_Delete(t *testing.T) {
	repo := NewGormProductRepository(setupTestDB(t))
	ctx := context.Background()

	product, err := catalog.NewProduct("Flor de pelo", "FLO-1", decimal.NewFromInt(4), 20)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
}
