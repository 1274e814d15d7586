package storefront

import "encoding/json"

// wooOrder mirrors the WooCommerce REST v3 order payload, restricted to the
// fields the sync needs.
type wooOrder struct {
	ID                 int64           `json:"id"`
	Number             string          `json:"number"`
	Status             string          `json:"status"`
	Currency           string          `json:"currency"`
	DateCreatedGMT     string          `json:"date_created_gmt"`
	Total              string          `json:"total"`
	PaymentMethodTitle string          `json:"payment_method_title"`
	CustomerNote       string          `json:"customer_note"`
	Billing            wooBilling      `json:"billing"`
	LineItems          []wooLineItem   `json:"line_items"`
	Raw                json.RawMessage `json:"-"`
}

// wooBilling is the billing block of an order
type wooBilling struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// wooLineItem is a line item of an order
type wooLineItem struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"product_id"`
	Name      string      `json:"name"`
	SKU       string      `json:"sku"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
	Subtotal  string      `json:"subtotal"`
	Total     string      `json:"total"`
}

// wooProduct mirrors the WooCommerce REST v3 product payload
type wooProduct struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	SKU           string     `json:"sku"`
	Description   string     `json:"description"`
	Price         string     `json:"price"`
	RegularPrice  string     `json:"regular_price"`
	StockQuantity *int       `json:"stock_quantity"`
	StockStatus   string     `json:"stock_status"`
	Categories    []wooTerm  `json:"categories"`
	Images        []wooImage `json:"images"`
}

// wooTerm is a category or tag reference
type wooTerm struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// wooImage is a product image reference
type wooImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
}

// wooProductUpdate is the payload for pushing price/stock changes
type wooProductUpdate struct {
	RegularPrice  string `json:"regular_price,omitempty"`
	StockQuantity *int   `json:"stock_quantity,omitempty"`
}
