// Package netx builds the HTTP plumbing shared by the API client.
package netx

import (
	"fmt"
	"net/http"
	"time"

	cookiejar "github.com/juju/persistent-cookiejar"
)

// NewCookieJar opens a cookie jar backed by path. Cookies with an expiry
// survive restarts once Save is called; an empty path keeps them in memory.
// The backend uses a cookie to track anonymous carts.
func NewCookieJar(path string) (*cookiejar.Jar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		Filename:  path,
		NoPersist: path == "",
	})
	if err != nil {
		return nil, fmt.Errorf("open cookie jar: %w", err)
	}
	return jar, nil
}

// NewHTTPClient returns a client with the given per-request timeout and jar.
func NewHTTPClient(timeout time.Duration, jar http.CookieJar) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
