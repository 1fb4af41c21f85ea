package config

import (
	"path/filepath"
	"time"
)

// Environment variables read by parseEnv.
const (
	EnvAPIBaseURL        = "STOREFRONT_API_URL"
	EnvSessionBackend    = "STOREFRONT_SESSION"
	EnvKeyringPassphrase = "STOREFRONT_KEYRING_PASSPHRASE"
)

// DefaultAPIBaseURL is used when nothing else configures the backend.
const DefaultAPIBaseURL = "http://localhost:8000/api"

// Config holds runtime settings for the storefront CLI.
type Config struct {
	APIBaseURL  string
	RefreshPath string
	HealthPath  string

	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	RateLimit           float64
	RateBurst           int

	// SessionBackend is one of session.BackendMemory, BackendSQLite or
	// BackendKeyring.
	SessionBackend    string
	DataDir           string
	KeyringPassphrase string
	KeyringFileOnly   bool

	LogBackend string
	LogLevel   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RefreshPath = "/auth/token/refresh/"
	c.HealthPath = "/health/"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.RateLimit = 10
	c.RateBurst = 5
	c.SessionBackend = "sqlite"
	c.DataDir = ".storefront"
	c.LogBackend = "slog"
	c.LogLevel = "warn"
}

// DatabasePath is the local SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "storefront.db")
}

// CookieJarPath is the persisted cookie jar inside DataDir.
func (c *Config) CookieJarPath() string {
	return filepath.Join(c.DataDir, "cookies.json")
}

// KeyringDir is where the file keyring keeps its items.
func (c *Config) KeyringDir() string {
	return filepath.Join(c.DataDir, "keyring")
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the config file (if any) and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
