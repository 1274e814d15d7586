package handler

import (
	appcatalog "github.com/flamenca/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	BaseHandler
	productService *appcatalog.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProductRequest is the create product request body
type CreateProductRequest struct {
	Name          string `json:"name" binding:"required"`
	SKU           string `json:"sku"`
	Description   string `json:"description"`
	Price         string `json:"price" binding:"required"`
	StockQuantity int    `json:"stock_quantity" binding:"gte=0"`
	Category      string `json:"category"`
	ImageURL      string `json:"image_url"`
}

// UpdateProductRequest is the update product request body
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"image_url"`
	Active      *bool   `json:"active"`
}

// AdjustStockRequest is the stock adjustment request body
type AdjustStockRequest struct {
	Delta            int  `json:"delta" binding:"required"`
	PushToStorefront bool `json:"push_to_storefront"`
}

// Create godoc
// @Summary  Create product
// @Tags     products
// @Router   /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		h.BadRequest(c, "Invalid price")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), appcatalog.CreateProductInput{
		Name:          req.Name,
		SKU:           req.SKU,
		Description:   req.Description,
		Price:         price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// List godoc
// @Summary  List products
// @Tags     products
// @Router   /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := parseFilter(c)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary  Get product
// @Tags     products
// @Router   /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @Summary  Update product
// @Tags     products
// @Router   /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	input := appcatalog.UpdateProductInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
	}
	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || price.IsNegative() {
			h.BadRequest(c, "Invalid price")
			return
		}
		input.Price = &price
	}

	product, err := h.productService.Update(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdjustStock godoc
// @Summary  Adjust product stock
// @Tags     products
// @Router   /products/{id}/stock [post]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), appcatalog.AdjustStockInput{
		ProductID:        id,
		Delta:            req.Delta,
		PushToStorefront: req.PushToStorefront,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Refresh godoc
// @Summary  Refresh the catalog from the storefront
// @Tags     products
// @Router   /products/refresh [post]
func (h *ProductHandler) Refresh(c *gin.Context) {
	result, err := h.productService.RefreshFromStorefront(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{
		"refreshed":              result.Refreshed,
		"total":                  result.Total,
		"low_stock_alerted":      result.LowStockAlerted,
		"critical_stock_alerted": result.CriticalStockAlerted,
	})
}

// Delete godoc
// @Summary  Delete product
// @Tags     products
// @Router   /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
