package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	Log         LogConfig
	HTTP        HTTPConfig
	WooCommerce WooCommerceConfig
	Holded      HoldedConfig
	Messaging   MessagingConfig
	Sync        SyncConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// WooCommerceConfig holds WooCommerce storefront API settings
type WooCommerceConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Timeout        time.Duration
}

// Configured reports whether the storefront credentials are set
func (w *WooCommerceConfig) Configured() bool {
	return w.BaseURL != "" && w.ConsumerKey != "" && w.ConsumerSecret != ""
}

// HoldedConfig holds Holded accounting API settings
type HoldedConfig struct {
	APIKey  string
	BaseURL string
	// Mode selects live or simulated document creation
	Mode    string
	Timeout time.Duration
}

// Live reports whether invoices are created in the real accounting system
func (h *HoldedConfig) Live() bool {
	return h.Mode == "live"
}

// MessagingConfig holds notification provider settings
type MessagingConfig struct {
	// Mode selects live or simulated provider calls
	Mode string
	// SMS provider credentials
	SMSAccountSID string
	SMSAuthToken  string
	SMSFrom       string
	// WhatsApp sender number
	WhatsAppFrom string
	// Email provider
	EmailAPIKey string
	EmailFrom   string
}

// Live reports whether messages are sent through the real providers
func (m *MessagingConfig) Live() bool {
	return m.Mode == "live"
}

// SyncConfig holds order/product sync settings
type SyncConfig struct {
	// Lookback is how far back to fetch orders on each run
	Lookback time.Duration
	// PageSize is the storefront page size
	PageSize int
	// Interval is the period of the background sync loop (0 = disabled)
	Interval time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with FLAMENCA_ prefix (e.g., FLAMENCA_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("FLAMENCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		WooCommerce: WooCommerceConfig{
			BaseURL:        v.GetString("woocommerce.base_url"),
			ConsumerKey:    v.GetString("woocommerce.consumer_key"),
			ConsumerSecret: v.GetString("woocommerce.consumer_secret"),
			Timeout:        v.GetDuration("woocommerce.timeout"),
		},
		Holded: HoldedConfig{
			APIKey:  v.GetString("holded.api_key"),
			BaseURL: v.GetString("holded.base_url"),
			Mode:    v.GetString("holded.mode"),
			Timeout: v.GetDuration("holded.timeout"),
		},
		Messaging: MessagingConfig{
			Mode:          v.GetString("messaging.mode"),
			SMSAccountSID: v.GetString("messaging.sms_account_sid"),
			SMSAuthToken:  v.GetString("messaging.sms_auth_token"),
			SMSFrom:       v.GetString("messaging.sms_from"),
			WhatsAppFrom:  v.GetString("messaging.whatsapp_from"),
			EmailAPIKey:   v.GetString("messaging.email_api_key"),
			EmailFrom:     v.GetString("messaging.email_from"),
		},
		Sync: SyncConfig{
			Lookback: v.GetDuration("sync.lookback"),
			PageSize: v.GetInt("sync.page_size"),
			Interval: v.GetDuration("sync.interval"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "flamenca-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "flamenca"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.JWT.Expiration == 0 {
		cfg.JWT.Expiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "flamenca-backend"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// CORS origins are intentionally not defaulted to "*". An empty list
	// means no cross-origin requests are allowed until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.WooCommerce.Timeout == 0 {
		cfg.WooCommerce.Timeout = 30 * time.Second
	}
	if cfg.Holded.BaseURL == "" {
		cfg.Holded.BaseURL = "https://api.holded.com/api"
	}
	if cfg.Holded.Mode == "" {
		cfg.Holded.Mode = "simulated"
	}
	if cfg.Holded.Timeout == 0 {
		cfg.Holded.Timeout = 30 * time.Second
	}
	if cfg.Messaging.Mode == "" {
		cfg.Messaging.Mode = "simulated"
	}
	if cfg.Sync.Lookback == 0 {
		cfg.Sync.Lookback = 24 * time.Hour
	}
	if cfg.Sync.PageSize == 0 {
		cfg.Sync.PageSize = 50
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Holded.Mode != "live" && c.Holded.Mode != "simulated" {
		return fmt.Errorf("holded.mode must be 'live' or 'simulated', got %q", c.Holded.Mode)
	}
	if c.Messaging.Mode != "live" && c.Messaging.Mode != "simulated" {
		return fmt.Errorf("messaging.mode must be 'live' or 'simulated', got %q", c.Messaging.Mode)
	}
	if c.Sync.PageSize < 1 || c.Sync.PageSize > 100 {
		return fmt.Errorf("sync.page_size must be between 1 and 100, got %d", c.Sync.PageSize)
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Holded.Live() && c.Holded.APIKey == "" {
			return fmt.Errorf("holded.api_key is required when holded.mode is 'live'")
		}
		if c.Messaging.Live() && c.Messaging.SMSAccountSID == "" {
			return fmt.Errorf("messaging.sms_account_sid is required when messaging.mode is 'live'")
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
