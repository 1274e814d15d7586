package storefront

import (
	"context"

	"github.com/flamenca/backend/internal/domain/integration"
)

// NotConfigured is a Storefront stand-in used when no WooCommerce credentials
// are set. Every call fails with ErrStorefrontNotConfigured so the rest of
// the application keeps working without a storefront.
type NotConfigured struct{}

// Interface assertion
var _ integration.Storefront = (*NotConfigured)(nil)

// NewNotConfigured creates the stand-in adapter
func NewNotConfigured() *NotConfigured {
	return &NotConfigured{}
}

func (*NotConfigured) ListOrders(context.Context, *integration.OrderListRequest) (*integration.OrderListResponse, error) {
	return nil, integration.ErrStorefrontNotConfigured
}

func (*NotConfigured) GetOrder(context.Context, string) (*integration.StorefrontOrder, error) {
	return nil, integration.ErrStorefrontNotConfigured
}

func (*NotConfigured) ListProducts(context.Context, *integration.ProductListRequest) (*integration.ProductListResponse, error) {
	return nil, integration.ErrStorefrontNotConfigured
}

func (*NotConfigured) GetProduct(context.Context, string) (*integration.StorefrontProduct, error) {
	return nil, integration.ErrStorefrontNotConfigured
}

func (*NotConfigured) UpdateProduct(context.Context, *integration.StorefrontProduct) error {
	return integration.ErrStorefrontNotConfigured
}
