package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/storefront/internal/client/session"
	"github.com/dmitrijs2005/storefront/internal/logging"
)

const (
	DefaultRefreshPath = "/auth/token/refresh/"
	DefaultHealthPath  = "/health/"
	defaultTimeout     = 15 * time.Second
	maxResponseSize    = 8 << 20
)

// Options configures a Client. Only BaseURL is required.
type Options struct {
	// BaseURL is the backend root, e.g. "https://shop.example.com/api".
	BaseURL     string
	RefreshPath string
	HealthPath  string
	UserAgent   string

	// Timeout bounds each HTTP exchange; ignored when HTTPClient is set.
	Timeout time.Duration
	// RateLimit caps outbound requests per second; zero disables it.
	RateLimit float64
	RateBurst int

	// CookieJar keeps backend cookies such as the anonymous cart id.
	CookieJar  http.CookieJar
	HTTPClient *http.Client

	Registerer prometheus.Registerer
}

// Client is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	refreshPath string
	healthPath  string
	userAgent   string

	http    *http.Client
	store   session.Store
	log     logging.Logger
	limiter *rate.Limiter
	metrics *metrics

	refreshes singleflight.Group
}

func New(opts Options, store session.Store, log logging.Logger) (*Client, error) {
	if store == nil {
		return nil, errors.New("api: session store is required")
	}
	if log == nil {
		log = logging.NewNop()
	}

	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("api: base url must be absolute http(s), got %q", opts.BaseURL)
	}

	c := &Client{
		baseURL:     base,
		refreshPath: firstNonEmpty(opts.RefreshPath, DefaultRefreshPath),
		healthPath:  firstNonEmpty(opts.HealthPath, DefaultHealthPath),
		userAgent:   firstNonEmpty(opts.UserAgent, "storefront-cli"),
		http:        opts.HTTPClient,
		store:       store,
		log:         log,
		metrics:     newMetrics(opts.Registerer),
	}

	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.http = &http.Client{Timeout: timeout, Jar: opts.CookieJar}
	}

	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return c, nil
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

// resolve joins a relative endpoint (path plus optional query) onto the base
// URL, keeping the base path prefix.
func (c *Client) resolve(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", invalidError("invalid endpoint %q", endpoint)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", invalidError("endpoint must be a relative path, got %q", endpoint)
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + strings.TrimLeft(ref.Path, "/")
	u.RawPath = ""
	u.RawQuery = ref.RawQuery
	u.Fragment = ""
	return u.String(), nil
}
