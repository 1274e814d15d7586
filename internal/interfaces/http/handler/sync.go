package handler

import (
	"errors"

	appsync "github.com/flamenca/backend/internal/application/sync"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/gin-gonic/gin"
)

// SyncHandler handles storefront synchronization HTTP requests
type SyncHandler struct {
	BaseHandler
	orderSync      *appsync.OrderSyncService
	reconciliation *appsync.ReconciliationService
	billingSync    *appsync.BillingSyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(orderSync *appsync.OrderSyncService, reconciliation *appsync.ReconciliationService, billingSync *appsync.BillingSyncService) *SyncHandler {
	return &SyncHandler{orderSync: orderSync, reconciliation: reconciliation, billingSync: billingSync}
}

// SyncOrders godoc
// @Summary  Import new storefront orders
// @Tags     sync
// @Router   /sync/orders [post]
func (h *SyncHandler) SyncOrders(c *gin.Context) {
	result, err := h.orderSync.SyncNewOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"synced_orders":      result.Synced,
		"skipped_orders":     result.Skipped,
		"notifications_sent": result.NotificationsSent,
		"total":              result.Total,
		"started_at":         result.StartedAt,
		"finished_at":        result.FinishedAt,
	})
}

// SyncSingleOrder godoc
// @Summary  Import one storefront order by its external ID
// @Tags     sync
// @Router   /sync/orders/{external_id} [post]
func (h *SyncHandler) SyncSingleOrder(c *gin.Context) {
	externalID := c.Param("external_id")
	if externalID == "" {
		h.BadRequest(c, "External order ID is required")
		return
	}
	result, err := h.orderSync.SyncSingleOrder(c.Request.Context(), externalID)
	if err != nil {
		if errors.Is(err, integration.ErrOrderNotFound) {
			h.NotFound(c, "Order not found on the storefront")
			return
		}
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"external_id":       result.ExternalID,
		"imported":          result.Imported,
		"notification_sent": result.NotificationSent,
	})
}

// SyncInvoices godoc
// @Summary  Invoice completed storefront orders in the accounting system
// @Tags     sync
// @Router   /sync/invoices [post]
func (h *SyncHandler) SyncInvoices(c *gin.Context) {
	result, err := h.billingSync.ReconcileInvoices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"processed":        result.Processed,
		"imported":         result.Imported,
		"invoiced":         result.Invoiced,
		"already_invoiced": result.AlreadyInvoiced,
		"skipped_no_email": result.SkippedNoEmail,
		"failed":           result.Failed,
		"started_at":       result.StartedAt,
		"finished_at":      result.FinishedAt,
	})
}

// ReconcileStatuses godoc
// @Summary  Reconcile imported order statuses with the storefront
// @Tags     sync
// @Router   /sync/reconcile [post]
func (h *SyncHandler) ReconcileStatuses(c *gin.Context) {
	result, err := h.reconciliation.ReconcileStatuses(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"checked": result.Checked,
		"updated": result.Updated,
		"missing": result.Missing,
	})
}
