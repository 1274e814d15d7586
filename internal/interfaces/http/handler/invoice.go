package handler

import (
	"time"

	appbilling "github.com/flamenca/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	BaseHandler
	invoiceService *appbilling.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest is the create invoice request body
type CreateInvoiceRequest struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	CustomerEmail string    `json:"customer_email"`
	Notes         string    `json:"notes"`
}

// InvoiceResponse is the invoice API representation
type InvoiceResponse struct {
	ID                uuid.UUID  `json:"id"`
	OrderID           *uuid.UUID `json:"order_id"`
	ExternalInvoiceID string     `json:"external_invoice_id"`
	ExternalContactID string     `json:"external_contact_id"`
	Number            string     `json:"number"`
	Status            string     `json:"status"`
	Total             string     `json:"total"`
	Currency          string     `json:"currency"`
	CustomerName      string     `json:"customer_name"`
	CustomerEmail     string     `json:"customer_email"`
	IssuedAt          time.Time  `json:"issued_at"`
	Simulated         bool       `json:"simulated"`
	AlreadyExisted    bool       `json:"already_existed"`
}

// Create godoc
// @Summary  Create an invoice for an order
// @Tags     invoices
// @Router   /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.invoiceService.CreateForOrder(c.Request.Context(), appbilling.CreateInvoiceInput{
		OrderID:       req.OrderID,
		CustomerEmail: req.CustomerEmail,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if info.AlreadyExisted {
		h.Success(c, toInvoiceResponse(*info))
		return
	}
	h.Created(c, toInvoiceResponse(*info))
}

// List godoc
// @Summary  List invoices
// @Tags     invoices
// @Router   /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	result, err := h.invoiceService.List(c.Request.Context(), parseFilter(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	invoices := make([]InvoiceResponse, len(result.Items))
	for i, info := range result.Items {
		invoices[i] = toInvoiceResponse(info)
	}
	h.SuccessWithMeta(c, invoices, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary  Get invoice
// @Tags     invoices
// @Router   /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	info, err := h.invoiceService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInvoiceResponse(*info))
}

// GetByOrder godoc
// @Summary  Get the invoice for an order
// @Tags     invoices
// @Router   /orders/{id}/invoice [get]
func (h *InvoiceHandler) GetByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	info, err := h.invoiceService.GetByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInvoiceResponse(*info))
}

// MarkPaid godoc
// @Summary  Mark invoice as paid
// @Tags     invoices
// @Router   /invoices/{id}/paid [put]
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	info, err := h.invoiceService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toInvoiceResponse(*info))
}

func toInvoiceResponse(info appbilling.InvoiceInfo) InvoiceResponse {
	return InvoiceResponse{
		ID:                info.ID,
		OrderID:           info.OrderID,
		ExternalInvoiceID: info.ExternalInvoiceID,
		ExternalContactID: info.ExternalContactID,
		Number:            info.Number,
		Status:            string(info.Status),
		Total:             info.Total.StringFixed(2),
		Currency:          info.Currency,
		CustomerName:      info.CustomerName,
		CustomerEmail:     info.CustomerEmail,
		IssuedAt:          info.IssuedAt,
		Simulated:         info.Simulated,
		AlreadyExisted:    info.AlreadyExisted,
	}
}
