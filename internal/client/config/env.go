package config

import (
	"os"
	"strings"
)

// parseEnv overlays values from STOREFRONT_* environment variables. Unset or
// blank variables leave cfg untouched.
func parseEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSessionBackend)); v != "" {
		cfg.SessionBackend = v
	}
	if v := os.Getenv(EnvKeyringPassphrase); v != "" {
		cfg.KeyringPassphrase = v
	}
}
