package accounting

import (
	"errors"
	"strings"
	"time"
)

// Mode selects whether documents are created in Holded or fabricated locally
type Mode string

const (
	// ModeLive creates real documents through the Holded API
	ModeLive Mode = "live"
	// ModeSimulated fabricates document IDs without calling Holded
	ModeSimulated Mode = "simulated"
)

// IsValid checks if the mode is a valid Mode
func (m Mode) IsValid() bool {
	return m == ModeLive || m == ModeSimulated
}

// HoldedConfig holds configuration for the Holded accounting API
type HoldedConfig struct {
	// APIKey is sent in the "key" request header
	APIKey string
	// BaseURL is the API root, e.g. https://api.holded.com/api
	BaseURL string
	// Mode selects live or simulated operation
	Mode Mode
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

// HoldedDefaultBaseURL is the production API root
const HoldedDefaultBaseURL = "https://api.holded.com/api"

// Errors for Holded configuration
var (
	ErrHoldedConfigMissingAPIKey = errors.New("holded: API key is required in live mode")
	ErrHoldedConfigInvalidMode   = errors.New("holded: mode must be live or simulated")
)

// NewHoldedConfig creates a new configuration with defaults
func NewHoldedConfig(apiKey string, mode Mode) *HoldedConfig {
	return &HoldedConfig{
		APIKey:  apiKey,
		BaseURL: HoldedDefaultBaseURL,
		Mode:    mode,
		Timeout: 30 * time.Second,
	}
}

// Validate checks that the configuration is complete
func (c *HoldedConfig) Validate() error {
	if !c.Mode.IsValid() {
		return ErrHoldedConfigInvalidMode
	}
	if c.Mode == ModeLive && c.APIKey == "" {
		return ErrHoldedConfigMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = HoldedDefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// APIURL returns the accounting v1 endpoint for a resource path
func (c *HoldedConfig) APIURL(resource string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/accounting/v1/" + strings.TrimLeft(resource, "/")
}
