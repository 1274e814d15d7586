package sync

import (
	"context"
	"errors"

	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReconciliationService re-checks the status of imported orders against the
// storefront. The storefront is authoritative for imported orders, so local
// statuses are overwritten rather than transitioned.
type ReconciliationService struct {
	storefront integration.Storefront
	orderRepo  ordering.OrderRepository
	logger     *zap.Logger
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	storefront integration.Storefront,
	orderRepo ordering.OrderRepository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		storefront: storefront,
		orderRepo:  orderRepo,
		logger:     logger,
	}
}

// ReconcileStatuses compares every non-terminal imported order against its
// storefront counterpart and applies any status change
func (s *ReconciliationService) ReconcileStatuses(ctx context.Context) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	filter := shared.DefaultFilter()
	filter.PageSize = 200
	filter.Filters = map[string]interface{}{"source": ordering.OrderSourceStorefront.String()}

	for {
		orders, err := s.orderRepo.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(orders) == 0 {
			break
		}

		for i := range orders {
			order := &orders[i]
			if !order.IsImported() {
				continue
			}
			if order.Status == ordering.OrderStatusDelivered || order.Status == ordering.OrderStatusCancelled {
				continue
			}
			result.Checked++

			storefrontOrder, err := s.storefront.GetOrder(ctx, *order.ExternalID)
			if err != nil {
				if errors.Is(err, integration.ErrOrderNotFound) {
					result.Missing++
					s.logger.Warn("Imported order no longer exists on storefront",
						zap.String("external_id", *order.ExternalID))
					continue
				}
				return result, err
			}

			mapped := integration.MapOrderStatus(storefrontOrder.Status)
			if mapped == order.Status {
				continue
			}

			if err := order.SyncStatus(mapped); err != nil {
				s.logger.Warn("Failed to apply storefront status",
					zap.String("external_id", *order.ExternalID),
					zap.Error(err))
				continue
			}
			if err := s.orderRepo.Save(ctx, order); err != nil {
				return result, err
			}
			result.Updated++
			s.logger.Info("Order status reconciled",
				zap.String("external_id", *order.ExternalID),
				zap.String("status", mapped.String()))
		}

		if len(orders) < filter.PageSize {
			break
		}
		filter.Page++
	}

	s.logger.Info("Status reconciliation finished",
		zap.Int("checked", result.Checked),
		zap.Int("updated", result.Updated),
		zap.Int("missing", result.Missing))
	return result, nil
}
