package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/storefront/internal/flagx"
	"github.com/dmitrijs2005/storefront/internal/timex"
)

// FileConfig is a DTO used exclusively for decoding config files. Intervals
// go through timex.Duration so they can be written as "3s" or as integer
// nanoseconds. Zero values mean "not set".
type FileConfig struct {
	APIBaseURL          string         `json:"api_base_url" yaml:"api_base_url"`
	RefreshPath         string         `json:"refresh_path" yaml:"refresh_path"`
	HealthPath          string         `json:"health_path" yaml:"health_path"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RateLimit           float64        `json:"rate_limit" yaml:"rate_limit"`
	RateBurst           int            `json:"rate_burst" yaml:"rate_burst"`
	SessionBackend      string         `json:"session_backend" yaml:"session_backend"`
	DataDir             string         `json:"data_dir" yaml:"data_dir"`
	KeyringFileOnly     bool           `json:"keyring_file_only" yaml:"keyring_file_only"`
	LogBackend          string         `json:"log_backend" yaml:"log_backend"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c / -config. Files ending in
// .yaml or .yml are YAML, anything else is JSON.
//
// Panics on read or decode errors, like parseFlags.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc, err := readFile(path)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func readFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, fc.APIBaseURL)
	setString(&cfg.RefreshPath, fc.RefreshPath)
	setString(&cfg.HealthPath, fc.HealthPath)
	setString(&cfg.SessionBackend, fc.SessionBackend)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.LogBackend, fc.LogBackend)
	setString(&cfg.LogLevel, fc.LogLevel)

	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RateLimit > 0 {
		cfg.RateLimit = fc.RateLimit
	}
	if fc.RateBurst > 0 {
		cfg.RateBurst = fc.RateBurst
	}
	if fc.KeyringFileOnly {
		cfg.KeyringFileOnly = true
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
