package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/storefront/internal/buildinfo"
	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/config"
	"github.com/dmitrijs2005/storefront/internal/client/services"
	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/client/storage"
	"github.com/dmitrijs2005/storefront/internal/filex"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/netx"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger

	authService    services.AuthService
	catalogService services.CatalogService
	cartService    services.CartService
	orderService   services.OrderService

	mu   sync.RWMutex
	mode Mode

	reader *bufio.Reader
	out    io.Writer

	// registry collects the API client's counters for the stats command.
	registry *prometheus.Registry

	closers []func() error
}

// NewApp wires local storage, the session store, the API client and the
// services from c.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}
	c.DataDir = dataDir

	a := &App{
		config:   c,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		registry: prometheus.NewRegistry(),
	}

	var db *sql.DB
	if c.SessionBackend == "" || c.SessionBackend == session.BackendSQLite {
		db, err = storage.InitDatabase(ctx, c.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
	}

	store, err := session.New(session.Options{
		Backend: c.SessionBackend,
		DB:      db,
		Keyring: session.KeyringConfig{
			FileDir:    c.KeyringDir(),
			Passphrase: c.KeyringPassphrase,
			FileOnly:   c.KeyringFileOnly,
		},
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	jar, err := netx.NewCookieJar(c.CookieJarPath())
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.closers = append(a.closers, jar.Save)

	apiClient, err := api.New(api.Options{
		BaseURL:     c.APIBaseURL,
		RefreshPath: c.RefreshPath,
		HealthPath:  c.HealthPath,
		UserAgent:   "storefront-cli/" + buildinfo.Version(),
		RateLimit:   c.RateLimit,
		RateBurst:   c.RateBurst,
		HTTPClient:  netx.NewHTTPClient(c.RequestTimeout, jar),
		Registerer:  a.registry,
	}, store, log)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(apiClient, store, log)
	a.catalogService = services.NewCatalogService(apiClient)
	a.cartService = services.NewCartService(apiClient)
	a.orderService = services.NewOrderService(apiClient)

	return a, nil
}

// Close saves the cookie jar and closes the database.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.Close(); err != nil {
			a.log.Error(ctx, "shutdown failed", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) getMode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	ok, err := a.authService.IsAuthenticated(context.Background())
	return err == nil && ok
}

// checkOnline pings the backend once and records the result.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the backend every interval until ctx is
// done. A non-positive interval disables it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
