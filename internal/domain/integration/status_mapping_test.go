package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flamenca/backend/internal/domain/ordering"
)

func TestMapOrderStatus(t *testing.T) {
	tests := []struct {
		storefront StorefrontOrderStatus
		local      ordering.OrderStatus
	}{
		{StorefrontOrderStatusPending, ordering.OrderStatusPending},
		{StorefrontOrderStatusProcessing, ordering.OrderStatusInProgress},
		{StorefrontOrderStatusOnHold, ordering.OrderStatusPending},
		{StorefrontOrderStatusCompleted, ordering.OrderStatusDelivered},
		{StorefrontOrderStatusCancelled, ordering.OrderStatusCancelled},
		{StorefrontOrderStatusRefunded, ordering.OrderStatusCancelled},
		{StorefrontOrderStatusFailed, ordering.OrderStatusPending},
		{StorefrontOrderStatus("something-new"), ordering.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.storefront.String(), func(t *testing.T) {
			assert.Equal(t, tt.local, MapOrderStatus(tt.storefront))
		})
	}
}

func TestStorefrontOrderStatusIsValid(t *testing.T) {
	assert.True(t, StorefrontOrderStatusProcessing.IsValid())
	assert.True(t, StorefrontOrderStatusOnHold.IsValid())
	assert.False(t, StorefrontOrderStatus("unknown").IsValid())
}
