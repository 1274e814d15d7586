package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
)

func newImportedOrder(t *testing.T, externalID string) *ordering.Order {
	order, err := ordering.NewImportedOrder(externalID, externalID, ordering.OrderStatusPending,
		"Maria Lopez", decimal.RequireFromString("49.90"), time.Now())
	require.NoError(t, err)
	require.NoError(t, order.AddItem(nil, "Vestido flamenco", 2, decimal.RequireFromString("24.95")))
	return order
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	order, err := ordering.NewOrder("FL-0001", ordering.OrderSourcePOS, "Cliente de tienda")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(nil, "Abanico", 1, decimal.RequireFromString("12.50")))
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "FL-0001", found.Number)
	assert.Equal(t, ordering.OrderSourcePOS, found.Source)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Abanico", found.Items[0].ProductName)
	assert.True(t, decimal.RequireFromString("12.50").Equal(found.Total))
}

func TestGormOrderRepository_FindByIDNotFound(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))

	order, err := ordering.NewOrder("FL-0002", ordering.OrderSourcePOS, "Cliente")
	require.NoError(t, err)

	_, err = repo.FindByID(context.Background(), order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_UpsertImported(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	inserted, err := repo.UpsertImported(ctx, newImportedOrder(t, "1001"))
	require.NoError(t, err)
	assert.True(t, inserted)

	// A second sync run sees the same storefront order again
	inserted, err = repo.UpsertImported(ctx, newImportedOrder(t, "1001"))
	require.NoError(t, err)
	assert.False(t, inserted)

	found, err := repo.FindByExternalID(ctx, "1001")
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)

	count, err := repo.Count(ctx, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormOrderRepository_UpsertImportedRejectsLocalOrder(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))

	order, err := ordering.NewOrder("FL-0003", ordering.OrderSourcePOS, "Cliente")
	require.NoError(t, err)

	_, err = repo.UpsertImported(context.Background(), order)
	assert.Error(t, err)
}

func TestGormOrderRepository_FindByExternalID(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.UpsertImported(ctx, newImportedOrder(t, "2002"))
	require.NoError(t, err)

	found, err := repo.FindByExternalID(ctx, "2002")
	require.NoError(t, err)
	require.NotNil(t, found.ExternalID)
	assert.Equal(t, "2002", *found.ExternalID)

	_, err = repo.FindByExternalID(ctx, "9999")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByExternalID(ctx, "")
	assert.Error(t, err)
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	order, err := ordering.NewOrder("FL-0004", ordering.OrderSourcePOS, "Cliente")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, ordering.OrderStatusInProgress))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusInProgress, found.Status)

	other, err := ordering.NewOrder("FL-0005", ordering.OrderSourcePOS, "Cliente")
	require.NoError(t, err)
	err = repo.UpdateStatus(ctx, other.ID, ordering.OrderStatusReady)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindAllFilters(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	pos, err := ordering.NewOrder("FL-0006", ordering.OrderSourcePOS, "Cliente")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pos))

	_, err = repo.UpsertImported(ctx, newImportedOrder(t, "3003"))
	require.NoError(t, err)

	orders, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"source": ordering.OrderSourceStorefront.String()},
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ordering.OrderSourceStorefront, orders[0].Source)

	pending, err := repo.FindByStatus(ctx, ordering.OrderStatusPending, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	repo := NewGormOrderRepository(setupTestDB(t))
	ctx := context.Background()

	order, err := ordering.NewOrder("FL-0007", ordering.OrderSourcePOS, "Cliente")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(nil, "Peineta", 1, decimal.RequireFromString("8.00")))
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err = repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
