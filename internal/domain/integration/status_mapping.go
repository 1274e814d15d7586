package integration

import "github.com/flamenca/backend/internal/domain/ordering"

// MapOrderStatus translates a storefront order status into the local order
// status vocabulary. Unknown statuses map to pending so a new storefront
// status never blocks a sync run.
func MapOrderStatus(s StorefrontOrderStatus) ordering.OrderStatus {
	switch s {
	case StorefrontOrderStatusCompleted:
		return ordering.OrderStatusDelivered
	case StorefrontOrderStatusProcessing:
		return ordering.OrderStatusInProgress
	case StorefrontOrderStatusPending:
		return ordering.OrderStatusPending
	case StorefrontOrderStatusCancelled:
		return ordering.OrderStatusCancelled
	case StorefrontOrderStatusRefunded:
		return ordering.OrderStatusCancelled
	default:
		return ordering.OrderStatusPending
	}
}
