package storefront

import (
	"errors"
	"strings"
	"time"
)

// WooCommerceConfig holds configuration for the WooCommerce REST API
type WooCommerceConfig struct {
	// BaseURL is the store URL, e.g. https://shop.example.com
	BaseURL string
	// ConsumerKey is the REST API consumer key (ck_...)
	ConsumerKey string
	// ConsumerSecret is the REST API consumer secret (cs_...)
	ConsumerSecret string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// Errors for WooCommerce configuration
var (
	ErrWooConfigMissingBaseURL = errors.New("woocommerce: base URL is required")
	ErrWooConfigMissingKey     = errors.New("woocommerce: consumer key is required")
	ErrWooConfigMissingSecret  = errors.New("woocommerce: consumer secret is required")
)

// NewWooCommerceConfig creates a new configuration with defaults
func NewWooCommerceConfig(baseURL, consumerKey, consumerSecret string) *WooCommerceConfig {
	return &WooCommerceConfig{
		BaseURL:        strings.TrimRight(baseURL, "/"),
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Timeout:        30 * time.Second,
	}
}

// Validate checks that the configuration is complete
func (c *WooCommerceConfig) Validate() error {
	if c.BaseURL == "" {
		return ErrWooConfigMissingBaseURL
	}
	if c.ConsumerKey == "" {
		return ErrWooConfigMissingKey
	}
	if c.ConsumerSecret == "" {
		return ErrWooConfigMissingSecret
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// APIURL returns the REST v3 endpoint for a resource path
func (c *WooCommerceConfig) APIURL(resource string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/wp-json/wc/v3/" + strings.TrimLeft(resource, "/")
}
