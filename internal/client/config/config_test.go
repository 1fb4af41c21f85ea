package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, "/auth/token/refresh/", c.RefreshPath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "sqlite", c.SessionBackend)
	assert.Equal(t, filepath.Join(".storefront", "storefront.db"), c.DatabasePath())
	assert.Equal(t, filepath.Join(".storefront", "cookies.json"), c.CookieJarPath())
	assert.Equal(t, filepath.Join(".storefront", "keyring"), c.KeyringDir())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(EnvAPIBaseURL, "")
	t.Setenv(EnvSessionBackend, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, " https://shop.example.com/api ")
	t.Setenv(EnvSessionBackend, "keyring")
	t.Setenv(EnvKeyringPassphrase, "pw")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "https://shop.example.com/api", c.APIBaseURL)
	assert.Equal(t, "keyring", c.SessionBackend)
	assert.Equal(t, "pw", c.KeyringPassphrase)
}

func TestParseEnv_BlankKeepsValue(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "   ")

	c := Config{APIBaseURL: "http://kept"}
	parseEnv(&c)
	assert.Equal(t, "http://kept", c.APIBaseURL)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://file/api\nsession_backend: memory\nlog_level: info\n"), 0o600))

	t.Setenv(EnvAPIBaseURL, "http://env/api")
	t.Setenv(EnvSessionBackend, "keyring")
	os.Args = []string{"testbin", "-c", path, "-s", "sqlite"}

	cfg := LoadConfig()

	// file beats env, flags beat file
	assert.Equal(t, "http://file/api", cfg.APIBaseURL)
	assert.Equal(t, "sqlite", cfg.SessionBackend)
	assert.Equal(t, "info", cfg.LogLevel)
}
