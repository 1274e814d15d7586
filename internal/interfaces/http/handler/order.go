package handler

import (
	"errors"

	appordering "github.com/flamenca/backend/internal/application/ordering"
	"github.com/flamenca/backend/internal/domain/ordering"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler handles order HTTP requests
type OrderHandler struct {
	BaseHandler
	orderService *appordering.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *appordering.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one requested line item
type OrderItemRequest struct {
	ProductID   *uuid.UUID `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *string    `json:"unit_price"`
}

// CreateOrderRequest is the create order request body
type CreateOrderRequest struct {
	Number        string             `json:"number"`
	CustomerName  string             `json:"customer_name" binding:"required"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CheckoutRequest is the point-of-sale checkout request body
type CheckoutRequest struct {
	CustomerName  string             `json:"customer_name"`
	PaymentMethod string             `json:"payment_method" binding:"required,oneof=cash card bizum"`
	Discount      string             `json:"discount"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the status change request body
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create godoc
// @Summary  Create order
// @Tags     orders
// @Router   /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	items, err := toItemInputs(req.Items)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), appordering.CreateOrderInput{
		Number:        req.Number,
		Source:        ordering.OrderSourceBackoffice,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Items:         items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// Checkout godoc
// @Summary  Register a point-of-sale sale
// @Tags     orders
// @Router   /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	cashierID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	discount := decimal.Zero
	if req.Discount != "" {
		discount, err = decimal.NewFromString(req.Discount)
		if err != nil || discount.IsNegative() {
			h.BadRequest(c, "Invalid discount")
			return
		}
	}

	items, err := toItemInputs(req.Items)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), appordering.CheckoutInput{
		CashierID:     cashierID,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		Discount:      discount,
		Items:         items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List godoc
// @Summary  List orders
// @Tags     orders
// @Router   /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	if source := c.Query("source"); source != "" {
		filter.Filters["source"] = source
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary  Get order
// @Tags     orders
// @Router   /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus godoc
// @Summary  Change order status
// @Tags     orders
// @Router   /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), appordering.UpdateStatusInput{
		OrderID: id,
		Status:  ordering.OrderStatus(req.Status),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete godoc
// @Summary  Delete order
// @Tags     orders
// @Router   /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func toItemInputs(items []OrderItemRequest) ([]appordering.OrderItemInput, error) {
	inputs := make([]appordering.OrderItemInput, len(items))
	for i, item := range items {
		inputs[i] = appordering.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
		if item.UnitPrice != nil {
			price, err := decimal.NewFromString(*item.UnitPrice)
			if err != nil || price.IsNegative() {
				return nil, errInvalidUnitPrice
			}
			inputs[i].UnitPrice = &price
		}
	}
	return inputs, nil
}

var errInvalidUnitPrice = errors.New("invalid unit price")
