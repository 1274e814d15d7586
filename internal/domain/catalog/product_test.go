package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	product, err := NewProduct("Peineta dorada", "PEI-001", decimal.NewFromFloat(15.90), 10)
	require.NoError(t, err)
	assert.Equal(t, StockStatusInStock, product.StockStatus)
	assert.True(t, product.Active)
	assert.True(t, product.RegularPrice.Equal(product.Price))

	zeroStock, err := NewProduct("Peineta", "", decimal.NewFromInt(5), 0)
	require.NoError(t, err)
	assert.Equal(t, StockStatusOutOfStock, zeroStock.StockStatus)

	_, err = NewProduct("  ", "", decimal.NewFromInt(5), 1)
	assert.Error(t, err)
	_, err = NewProduct("Peineta", "", decimal.NewFromInt(-5), 1)
	assert.Error(t, err)
	_, err = NewProduct("Peineta", "", decimal.NewFromInt(5), -1)
	assert.Error(t, err)
}

func TestStockThresholds(t *testing.T) {
	tests := []struct {
		stock    int
		low      bool
		critical bool
	}{
		{0, true, true},
		{2, true, true},
		{3, true, false},
		{5, true, false},
		{6, false, false},
		{100, false, false},
	}

	for _, tt := range tests {
		product, err := NewProduct("Peineta", "", decimal.NewFromInt(5), tt.stock)
		require.NoError(t, err)
		assert.Equal(t, tt.low, product.IsLowStock(), "stock=%d low", tt.stock)
		assert.Equal(t, tt.critical, product.IsCriticalStock(), "stock=%d critical", tt.stock)
	}
}

func TestAdjustStock(t *testing.T) {
	product, err := NewProduct("Peineta", "", decimal.NewFromInt(5), 3)
	require.NoError(t, err)

	require.NoError(t, product.AdjustStock(-3))
	assert.Equal(t, 0, product.StockQuantity)
	assert.Equal(t, StockStatusOutOfStock, product.StockStatus)

	require.NoError(t, product.AdjustStock(10))
	assert.Equal(t, 10, product.StockQuantity)
	assert.Equal(t, StockStatusInStock, product.StockStatus)

	err = product.AdjustStock(-11)
	assert.Error(t, err)
	assert.Equal(t, 10, product.StockQuantity)
}

func TestUpdatePrice(t *testing.T) {
	product, err := NewProduct("Peineta", "", decimal.NewFromInt(5), 3)
	require.NoError(t, err)

	require.NoError(t, product.UpdatePrice(decimal.NewFromFloat(7.50)))
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(7.50)))
	// Regular price keeps the original value for discount display
	assert.True(t, product.RegularPrice.Equal(decimal.NewFromInt(5)))

	assert.Error(t, product.UpdatePrice(decimal.NewFromInt(-1)))
}
