package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice(t *testing.T) {
	orderID := uuid.New()
	total := decimal.RequireFromString("121.00")

	inv, err := NewInvoice(orderID, "doc-1001", "contact-7", "F-2026-0042", total, false)
	require.NoError(t, err)
	require.NotNil(t, inv.OrderID)
	assert.Equal(t, orderID, *inv.OrderID)
	assert.Equal(t, "doc-1001", inv.ExternalInvoiceID)
	assert.Equal(t, InvoiceStatusDraft, inv.Status)
	assert.Equal(t, "EUR", inv.Currency)
	assert.True(t, total.Equal(inv.Total))
	assert.False(t, inv.Simulated)
	assert.False(t, inv.IssuedAt.IsZero())
}

func TestNewInvoiceValidation(t *testing.T) {
	tests := []struct {
		name       string
		orderID    uuid.UUID
		externalID string
		total      decimal.Decimal
	}{
		{"nil order", uuid.Nil, "doc-1", decimal.NewFromInt(10)},
		{"empty external id", uuid.New(), "", decimal.NewFromInt(10)},
		{"negative total", uuid.New(), "doc-1", decimal.NewFromInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInvoice(tt.orderID, tt.externalID, "", "", tt.total, false)
			assert.Error(t, err)
		})
	}
}

func TestInvoiceMarkPaid(t *testing.T) {
	inv, err := NewInvoice(uuid.New(), "doc-1", "", "", decimal.NewFromInt(50), true)
	require.NoError(t, err)

	require.NoError(t, inv.MarkPaid())
	assert.Equal(t, InvoiceStatusPaid, inv.Status)

	assert.Error(t, inv.Cancel())
}

func TestInvoiceCancel(t *testing.T) {
	inv, err := NewInvoice(uuid.New(), "doc-1", "", "", decimal.NewFromInt(50), true)
	require.NoError(t, err)

	require.NoError(t, inv.Cancel())
	assert.Equal(t, InvoiceStatusCancelled, inv.Status)

	assert.Error(t, inv.MarkPaid())
}
