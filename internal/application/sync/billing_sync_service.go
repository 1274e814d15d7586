package sync

import (
	"context"
	"time"

	"go.uber.org/zap"

	appbilling "github.com/flamenca/backend/internal/application/billing"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/flamenca/backend/internal/infrastructure/config"
)

// BillingSyncService invoices completed storefront orders in the accounting
// system. Orders not yet local are imported first, so the run also catches up
// on orders the regular sync missed.
type BillingSyncService struct {
	storefront integration.Storefront
	orderRepo  ordering.OrderRepository
	invoices   *appbilling.InvoiceService
	config     config.SyncConfig
	logger     *zap.Logger
}

// NewBillingSyncService creates a new billing sync service
func NewBillingSyncService(
	storefront integration.Storefront,
	orderRepo ordering.OrderRepository,
	invoices *appbilling.InvoiceService,
	cfg config.SyncConfig,
	logger *zap.Logger,
) *BillingSyncService {
	return &BillingSyncService{
		storefront: storefront,
		orderRepo:  orderRepo,
		invoices:   invoices,
		config:     cfg,
		logger:     logger,
	}
}

// ReconcileInvoices fetches completed orders from the lookback window and
// creates an accounting invoice for each one that does not have one yet.
// Invoice creation is idempotent per order, so re-running the job is safe.
// Per-order failures are logged and counted; the run continues.
func (s *BillingSyncService) ReconcileInvoices(ctx context.Context) (*BillingSyncResult, error) {
	result := &BillingSyncResult{StartedAt: time.Now()}
	after := result.StartedAt.Add(-s.config.Lookback)

	s.logger.Info("Starting invoice reconciliation", zap.Time("after", after))

	page := 1
	for {
		resp, err := s.storefront.ListOrders(ctx, &integration.OrderListRequest{
			After:    after,
			Statuses: []integration.StorefrontOrderStatus{integration.StorefrontOrderStatusCompleted},
			Page:     page,
			PerPage:  s.config.PageSize,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Orders) == 0 {
			break
		}

		for i := range resp.Orders {
			s.reconcileOrder(ctx, &resp.Orders[i], result)
		}

		if resp.TotalPages > 0 && page >= resp.TotalPages {
			break
		}
		page++
	}

	result.FinishedAt = time.Now()
	s.logger.Info("Invoice reconciliation finished",
		zap.Int("processed", result.Processed),
		zap.Int("imported", result.Imported),
		zap.Int("invoiced", result.Invoiced),
		zap.Int("already_invoiced", result.AlreadyInvoiced),
		zap.Int("skipped_no_email", result.SkippedNoEmail),
		zap.Int("failed", result.Failed),
		zap.Duration("took", result.FinishedAt.Sub(result.StartedAt)))
	return result, nil
}

func (s *BillingSyncService) reconcileOrder(ctx context.Context, storefrontOrder *integration.StorefrontOrder, result *BillingSyncResult) {
	result.Processed++

	if storefrontOrder.CustomerEmail == "" {
		s.logger.Warn("Order has no customer email, cannot invoice",
			zap.String("external_id", storefrontOrder.ExternalID))
		result.SkippedNoEmail++
		return
	}

	order, err := s.localOrder(ctx, storefrontOrder, result)
	if err != nil {
		s.logger.Error("Failed to import order for invoicing",
			zap.String("external_id", storefrontOrder.ExternalID),
			zap.Error(err))
		result.Failed++
		return
	}

	info, err := s.invoices.CreateForOrder(ctx, appbilling.CreateInvoiceInput{OrderID: order.ID})
	if err != nil {
		s.logger.Error("Failed to invoice order",
			zap.String("external_id", storefrontOrder.ExternalID),
			zap.String("order_id", order.ID.String()),
			zap.Error(err))
		result.Failed++
		return
	}

	if info.AlreadyExisted {
		result.AlreadyInvoiced++
		return
	}
	result.Invoiced++
	s.logger.Info("Invoiced storefront order",
		zap.String("external_id", storefrontOrder.ExternalID),
		zap.String("invoice_number", info.Number))
}

// localOrder returns the local row for a storefront order, importing it when
// missing
func (s *BillingSyncService) localOrder(ctx context.Context, storefrontOrder *integration.StorefrontOrder, result *BillingSyncResult) (*ordering.Order, error) {
	order, err := buildImportedOrder(storefrontOrder)
	if err != nil {
		return nil, err
	}

	inserted, err := s.orderRepo.UpsertImported(ctx, order)
	if err != nil {
		return nil, err
	}
	if inserted {
		result.Imported++
		return order, nil
	}
	return s.orderRepo.FindByExternalID(ctx, storefrontOrder.ExternalID)
}
