package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flamenca/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the WooCommerce API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// WooCommerceAdapter implements the Storefront interface against the
// WooCommerce REST API v3. Authentication uses HTTP Basic auth with the
// consumer key and secret.
type WooCommerceAdapter struct {
	config     *WooCommerceConfig
	httpClient *http.Client
}

// Interface assertion
var _ integration.Storefront = (*WooCommerceAdapter)(nil)

// NewWooCommerceAdapter creates a new WooCommerce adapter with the given configuration
func NewWooCommerceAdapter(config *WooCommerceConfig) (*WooCommerceAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &WooCommerceAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// ---------------------------------------------------------------------------
// Order Operations
// ---------------------------------------------------------------------------

// ListOrders lists orders matching the request filters. Pagination totals are
// taken from the X-WP-Total and X-WP-TotalPages response headers.
func (a *WooCommerceAdapter) ListOrders(ctx context.Context, req *integration.OrderListRequest) (*integration.OrderListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("per_page", strconv.Itoa(req.PerPage))
	params.Set("orderby", "date")
	params.Set("order", "desc")
	if !req.After.IsZero() {
		params.Set("after", req.After.UTC().Format(time.RFC3339))
	}
	if len(req.Statuses) > 0 {
		statuses := make([]string, len(req.Statuses))
		for i, s := range req.Statuses {
			statuses[i] = s.String()
		}
		params.Set("status", strings.Join(statuses, ","))
	}

	body, header, err := a.doRequest(ctx, http.MethodGet, "orders", params, nil, integration.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	var wooOrders []wooOrder
	if err := json.Unmarshal(body, &wooOrders); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}

	resp := &integration.OrderListResponse{
		Orders:     make([]integration.StorefrontOrder, 0, len(wooOrders)),
		Total:      parseHeaderInt(header, "X-WP-Total"),
		TotalPages: int(parseHeaderInt(header, "X-WP-TotalPages")),
	}

	// Keep the raw payloads so imported orders retain the original document
	var rawOrders []json.RawMessage
	if err := json.Unmarshal(body, &rawOrders); err == nil && len(rawOrders) == len(wooOrders) {
		for i := range wooOrders {
			wooOrders[i].Raw = rawOrders[i]
		}
	}

	for i := range wooOrders {
		resp.Orders = append(resp.Orders, a.convertOrder(&wooOrders[i]))
	}
	return resp, nil
}

// GetOrder retrieves a single order by its storefront ID
func (a *WooCommerceAdapter) GetOrder(ctx context.Context, externalID string) (*integration.StorefrontOrder, error) {
	if err := validateNumericID(externalID); err != nil {
		return nil, err
	}

	body, _, err := a.doRequest(ctx, http.MethodGet, "orders/"+externalID, nil, nil, integration.ErrOrderNotFound)
	if err != nil {
		return nil, err
	}

	var order wooOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}
	order.Raw = body

	converted := a.convertOrder(&order)
	return &converted, nil
}

// ---------------------------------------------------------------------------
// Product Operations
// ---------------------------------------------------------------------------

// ListProducts lists products matching the request filters
func (a *WooCommerceAdapter) ListProducts(ctx context.Context, req *integration.ProductListRequest) (*integration.ProductListResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("per_page", strconv.Itoa(req.PerPage))
	if req.Search != "" {
		params.Set("search", req.Search)
	}

	body, header, err := a.doRequest(ctx, http.MethodGet, "products", params, nil, integration.ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	var wooProducts []wooProduct
	if err := json.Unmarshal(body, &wooProducts); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}

	resp := &integration.ProductListResponse{
		Products:   make([]integration.StorefrontProduct, 0, len(wooProducts)),
		Total:      parseHeaderInt(header, "X-WP-Total"),
		TotalPages: int(parseHeaderInt(header, "X-WP-TotalPages")),
	}
	for i := range wooProducts {
		resp.Products = append(resp.Products, convertProduct(&wooProducts[i]))
	}
	return resp, nil
}

// GetProduct retrieves a single product by its storefront ID
func (a *WooCommerceAdapter) GetProduct(ctx context.Context, externalID string) (*integration.StorefrontProduct, error) {
	if err := validateNumericID(externalID); err != nil {
		return nil, err
	}

	body, _, err := a.doRequest(ctx, http.MethodGet, "products/"+externalID, nil, nil, integration.ErrProductNotFound)
	if err != nil {
		return nil, err
	}

	var product wooProduct
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrStorefrontInvalidResponse, err)
	}

	converted := convertProduct(&product)
	return &converted, nil
}

// UpdateProduct pushes price/stock changes for a product back to the storefront
func (a *WooCommerceAdapter) UpdateProduct(ctx context.Context, product *integration.StorefrontProduct) error {
	if err := validateNumericID(product.ExternalID); err != nil {
		return err
	}

	stock := product.StockQuantity
	payload := wooProductUpdate{
		RegularPrice:  product.RegularPrice.String(),
		StockQuantity: &stock,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("woocommerce: failed to encode product update: %w", err)
	}

	_, _, err = a.doRequest(ctx, http.MethodPut, "products/"+product.ExternalID, nil, body, integration.ErrProductNotFound)
	return err
}

// ---------------------------------------------------------------------------
// HTTP plumbing
// ---------------------------------------------------------------------------

// doRequest executes one API request and returns the body and headers.
// notFound is the sentinel returned for a 404 on the requested resource.
func (a *WooCommerceAdapter) doRequest(ctx context.Context, method, resource string, params url.Values, payload []byte, notFound error) ([]byte, http.Header, error) {
	endpoint := a.config.APIURL(resource)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("woocommerce: failed to create request: %w", err)
	}
	req.SetBasicAuth(a.config.ConsumerKey, a.config.ConsumerSecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", integration.ErrStorefrontUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, nil, fmt.Errorf("woocommerce: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, integration.ErrStorefrontAuthFailed
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil, notFound
	case resp.StatusCode >= 400:
		return nil, nil, fmt.Errorf("%w: HTTP %d", integration.ErrStorefrontRequestFailed, resp.StatusCode)
	}

	return body, resp.Header, nil
}

// convertOrder converts a WooCommerce order to the storefront value object
func (a *WooCommerceAdapter) convertOrder(o *wooOrder) integration.StorefrontOrder {
	order := integration.StorefrontOrder{
		ExternalID:         strconv.FormatInt(o.ID, 10),
		Number:             o.Number,
		Status:             integration.StorefrontOrderStatus(o.Status),
		CustomerName:       strings.TrimSpace(o.Billing.FirstName + " " + o.Billing.LastName),
		CustomerEmail:      o.Billing.Email,
		CustomerPhone:      o.Billing.Phone,
		Total:              parseDecimal(o.Total),
		Currency:           o.Currency,
		PaymentMethodTitle: o.PaymentMethodTitle,
		CustomerNote:       o.CustomerNote,
		CreatedAt:          parseWooTime(o.DateCreatedGMT),
		RawData:            string(o.Raw),
	}

	for _, item := range o.LineItems {
		unitPrice := parseDecimal(item.Price.String())
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal := parseDecimal(item.Total)
		if subtotal.IsZero() {
			subtotal = unitPrice.Mul(decimal.NewFromInt(int64(qty)))
		}
		if unitPrice.IsZero() && qty > 0 {
			unitPrice = subtotal.Div(decimal.NewFromInt(int64(qty)))
		}
		order.Items = append(order.Items, integration.StorefrontOrderItem{
			ExternalItemID:    strconv.FormatInt(item.ID, 10),
			ExternalProductID: strconv.FormatInt(item.ProductID, 10),
			Name:              item.Name,
			SKU:               item.SKU,
			Quantity:          qty,
			UnitPrice:         unitPrice,
			Subtotal:          subtotal,
		})
	}
	return order
}

// convertProduct converts a WooCommerce product to the storefront value object
func convertProduct(p *wooProduct) integration.StorefrontProduct {
	product := integration.StorefrontProduct{
		ExternalID:   strconv.FormatInt(p.ID, 10),
		Name:         p.Name,
		SKU:          p.SKU,
		Description:  p.Description,
		Price:        parseDecimal(p.Price),
		RegularPrice: parseDecimal(p.RegularPrice),
		StockStatus:  p.StockStatus,
	}
	if p.StockQuantity != nil {
		product.StockQuantity = *p.StockQuantity
	}
	if len(p.Categories) > 0 {
		product.Category = p.Categories[0].Name
	}
	for _, img := range p.Images {
		product.ImageURLs = append(product.ImageURLs, img.Src)
	}
	return product
}

// parseDecimal parses a WooCommerce money string, empty means zero
func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// parseWooTime parses the GMT timestamp format used by the API
func parseWooTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// parseHeaderInt reads an integer response header, 0 when absent
func parseHeaderInt(h http.Header, key string) int64 {
	v := h.Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// validateNumericID validates that a string is a valid numeric ID
func validateNumericID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty ID", integration.ErrStorefrontRequestFailed)
	}
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return fmt.Errorf("%w: invalid ID %q", integration.ErrStorefrontRequestFailed, id)
	}
	return nil
}
