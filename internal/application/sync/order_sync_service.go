package sync

import (
	"context"
	"time"

	appnotification "github.com/flamenca/backend/internal/application/notification"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// syncStatuses are the storefront statuses worth importing. Draft and failed
// orders stay on the storefront.
var syncStatuses = []integration.StorefrontOrderStatus{
	integration.StorefrontOrderStatusProcessing,
	integration.StorefrontOrderStatusCompleted,
}

// OrderSyncService imports new storefront orders into the local database.
// Re-running a sync is safe: orders already imported are skipped by the
// unique constraint on the external ID.
type OrderSyncService struct {
	storefront integration.Storefront
	orderRepo  ordering.OrderRepository
	autoNotify *appnotification.AutoNotifyService
	config     config.SyncConfig
	logger     *zap.Logger
}

// NewOrderSyncService creates a new order sync service
func NewOrderSyncService(
	storefront integration.Storefront,
	orderRepo ordering.OrderRepository,
	autoNotify *appnotification.AutoNotifyService,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *OrderSyncService {
	return &OrderSyncService{
		storefront: storefront,
		orderRepo:  orderRepo,
		autoNotify: autoNotify,
		config:     cfg,
		logger:     logger,
	}
}

// SyncNewOrders fetches processing and completed orders created within the
// lookback window and imports the ones not seen before. A new-order
// notification goes out for each imported order; notification failures do
// not fail the sync.
func (s *OrderSyncService) SyncNewOrders(ctx context.Context) (*OrderSyncResult, error) {
	result := &OrderSyncResult{StartedAt: time.Now()}
	after := result.StartedAt.Add(-s.config.Lookback)

	s.logger.Info("Starting order sync",
		zap.Time("after", after),
		zap.Int("page_size", s.config.PageSize))

	page := 1
	for {
		resp, err := s.storefront.ListOrders(ctx, &integration.OrderListRequest{
			After:    after,
			Statuses: syncStatuses,
			Page:     page,
			PerPage:  s.config.PageSize,
		})
		if err != nil {
			s.logger.Error("Order sync page fetch failed", zap.Int("page", page), zap.Error(err))
			return nil, err
		}
		result.Total = resp.Total

		for i := range resp.Orders {
			imported, notified, err := s.importOrder(ctx, &resp.Orders[i])
			if err != nil {
				s.logger.Warn("Failed to import storefront order",
					zap.String("external_id", resp.Orders[i].ExternalID),
					zap.Error(err))
				continue
			}
			if imported {
				result.Synced++
				if notified {
					result.NotificationsSent++
				}
			} else {
				result.Skipped++
			}
		}

		if len(resp.Orders) == 0 || (resp.TotalPages > 0 && page >= resp.TotalPages) {
			break
		}
		page++
	}

	result.FinishedAt = time.Now()
	s.logger.Info("Order sync finished",
		zap.Int("synced", result.Synced),
		zap.Int("skipped", result.Skipped),
		zap.Int("notifications_sent", result.NotificationsSent),
		zap.Duration("took", result.FinishedAt.Sub(result.StartedAt)))
	return result, nil
}

// SyncSingleOrder imports one order by its storefront ID, typically in
// response to a webhook
func (s *OrderSyncService) SyncSingleOrder(ctx context.Context, externalID string) (*SingleOrderSyncResult, error) {
	storefrontOrder, err := s.storefront.GetOrder(ctx, externalID)
	if err != nil {
		return nil, err
	}

	imported, notified, err := s.importOrder(ctx, storefrontOrder)
	if err != nil {
		return nil, err
	}

	return &SingleOrderSyncResult{
		ExternalID:       externalID,
		Imported:         imported,
		NotificationSent: notified,
	}, nil
}

// ApplyStorefrontUpdate upserts one order from the storefront. New orders are
// imported the same way as during a sync run. For orders already local, the
// storefront remains the source of truth: status, total and payment method
// are refreshed in place.
func (s *OrderSyncService) ApplyStorefrontUpdate(ctx context.Context, externalID string) (*SingleOrderSyncResult, error) {
	storefrontOrder, err := s.storefront.GetOrder(ctx, externalID)
	if err != nil {
		return nil, err
	}

	imported, notified, err := s.importOrder(ctx, storefrontOrder)
	if err != nil {
		return nil, err
	}
	if !imported {
		order, err := s.orderRepo.FindByExternalID(ctx, externalID)
		if err != nil {
			return nil, err
		}
		if err := order.SyncStatus(integration.MapOrderStatus(storefrontOrder.Status)); err != nil {
			return nil, err
		}
		order.Total = storefrontOrder.Total
		order.PaymentMethod = storefrontOrder.PaymentMethodTitle
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
		s.logger.Info("Refreshed imported order from storefront",
			zap.String("external_id", externalID),
			zap.String("status", order.Status.String()))
	}

	return &SingleOrderSyncResult{
		ExternalID:       externalID,
		Imported:         imported,
		NotificationSent: notified,
	}, nil
}

// importOrder upserts one storefront order and notifies on first import.
// Returns (imported, notified, err).
func (s *OrderSyncService) importOrder(ctx context.Context, storefrontOrder *integration.StorefrontOrder) (bool, bool, error) {
	order, err := buildImportedOrder(storefrontOrder)
	if err != nil {
		return false, false, err
	}

	inserted, err := s.orderRepo.UpsertImported(ctx, order)
	if err != nil {
		return false, false, err
	}
	if !inserted {
		s.logger.Debug("Order already imported, skipping",
			zap.String("external_id", storefrontOrder.ExternalID))
		return false, false, nil
	}

	s.logger.Info("Imported storefront order",
		zap.String("external_id", storefrontOrder.ExternalID),
		zap.String("number", order.Number),
		zap.String("total", order.Total.String()))

	itemNames := make([]string, len(order.Items))
	for i, item := range order.Items {
		itemNames[i] = item.ProductName
	}
	notified := s.autoNotify.NotifyNewOrder(ctx, appnotification.NewOrderEvent{
		OrderNumber:  order.Number,
		CustomerName: order.CustomerName,
		Total:        order.Total.StringFixed(2),
		ItemNames:    itemNames,
	})

	return true, notified, nil
}

// buildImportedOrder converts a storefront order into a local one. The
// storefront total is authoritative because it includes shipping and taxes
// that do not appear in the line items, so line subtotals are kept as
// reported and the total is never recalculated from them.
func buildImportedOrder(so *integration.StorefrontOrder) (*ordering.Order, error) {
	status := integration.MapOrderStatus(so.Status)

	order, err := ordering.NewImportedOrder(so.ExternalID, so.Number, status, so.CustomerName, so.Total, so.CreatedAt)
	if err != nil {
		return nil, err
	}
	order.CustomerEmail = so.CustomerEmail
	order.CustomerPhone = so.CustomerPhone
	order.PaymentMethod = so.PaymentMethodTitle
	order.Notes = so.CustomerNote
	if so.Currency != "" {
		order.Currency = so.Currency
	}

	for _, item := range so.Items {
		orderItem, err := ordering.NewOrderItem(order.ID, nil, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, err
		}
		orderItem.SKU = item.SKU
		if !item.Subtotal.IsZero() {
			orderItem.Subtotal = item.Subtotal
		}
		order.Items = append(order.Items, *orderItem)
	}

	return order, nil
}
