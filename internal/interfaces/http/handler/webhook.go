package handler

import (
	"encoding/json"
	"strconv"

	appcatalog "github.com/flamenca/backend/internal/application/catalog"
	appsync "github.com/flamenca/backend/internal/application/sync"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives storefront event callbacks. The route is public so
// the handler never trusts the payload beyond the resource ID: every event is
// resolved against the storefront API before anything is written.
type WebhookHandler struct {
	BaseHandler
	orderSync      *appsync.OrderSyncService
	productService *appcatalog.ProductService
	logger         *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(orderSync *appsync.OrderSyncService, productService *appcatalog.ProductService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{orderSync: orderSync, productService: productService, logger: logger}
}

// WebhookRequest is the storefront webhook envelope
type WebhookRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// webhookData carries the fields read from the event payload. WooCommerce
// sends numeric IDs.
type webhookData struct {
	ID json.Number `json:"id"`
}

// Receive godoc
// @Summary  Receive a storefront webhook
// @Tags     webhooks
// @Router   /webhooks/woocommerce [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if req.Type == "" {
		h.BadRequest(c, "Webhook type is required")
		return
	}

	externalID := h.parseEventID(req.Data)

	switch req.Type {
	case "order.created", "order.updated":
		if externalID == "" {
			h.logger.Warn("Webhook without order ID ignored", zap.String("type", req.Type))
			h.Success(c, gin.H{"type": req.Type, "processed": false})
			return
		}
		result, err := h.orderSync.ApplyStorefrontUpdate(c.Request.Context(), externalID)
		if err != nil {
			h.logger.Error("Webhook order sync failed",
				zap.String("type", req.Type),
				zap.String("external_id", externalID),
				zap.Error(err))
			h.HandleError(c, err)
			return
		}
		h.Success(c, gin.H{
			"type":              req.Type,
			"processed":         true,
			"imported":          result.Imported,
			"notification_sent": result.NotificationSent,
		})

	case "product.updated":
		if externalID == "" {
			h.logger.Warn("Webhook without product ID ignored", zap.String("type", req.Type))
			h.Success(c, gin.H{"type": req.Type, "processed": false})
			return
		}
		product, err := h.productService.SyncSingleProduct(c.Request.Context(), externalID)
		if err != nil {
			h.logger.Error("Webhook product sync failed",
				zap.String("external_id", externalID),
				zap.Error(err))
			h.HandleError(c, err)
			return
		}
		h.Success(c, gin.H{
			"type":      req.Type,
			"processed": true,
			"product":   product.ID,
		})

	default:
		// Unknown event types are acknowledged so the storefront does not
		// retry them.
		h.logger.Debug("Ignoring unhandled webhook type", zap.String("type", req.Type))
		h.Success(c, gin.H{"type": req.Type, "processed": false})
	}
}

func (h *WebhookHandler) parseEventID(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var payload webhookData
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	id := payload.ID.String()
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return ""
	}
	return id
}
