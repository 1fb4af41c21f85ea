package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// backend is a scripted storefront API. Handlers see the bearer token that
// was presented; refreshes are counted.
type backend struct {
	mu        sync.Mutex
	refreshes atomic.Int32
	seen      []string

	validAccess string
	// refresh handler result; empty access means failure with refreshStatus.
	nextAccess    string
	nextRefresh   string
	refreshStatus int
	refreshBody   map[string]string
}

func (b *backend) setValid(tok string) {
	b.mu.Lock()
	b.validAccess = tok
	b.mu.Unlock()
}

func (b *backend) valid() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.validAccess
}

func bearer(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *backend) handler(t *testing.T, routes map[string]http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		b.refreshes.Add(1)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		b.refreshBody = body
		next, rotated, status := b.nextAccess, b.nextRefresh, b.refreshStatus
		b.mu.Unlock()

		if next == "" {
			if status == 0 {
				status = http.StatusUnauthorized
			}
			writeJSON(w, status, map[string]string{"detail": "Token is invalid or expired"})
			return
		}
		b.setValid(next)
		resp := map[string]string{"access": next}
		if rotated != "" {
			resp["refresh"] = rotated
		}
		writeJSON(w, http.StatusOK, resp)
	})
	for path, h := range routes {
		mux.HandleFunc(path, h)
	}
	return mux
}

// authed serves payload to requests presenting the currently valid token.
func (b *backend) authed(payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := bearer(r)
		b.mu.Lock()
		b.seen = append(b.seen, tok)
		b.mu.Unlock()
		if tok == "" || tok != b.valid() {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		writeJSON(w, http.StatusOK, payload)
	}
}

type fixture struct {
	srv     *httptest.Server
	client  *Client
	store   *session.MemoryStore
	backend *backend
	reg     *prometheus.Registry
}

func newFixture(t *testing.T, b *backend, routes map[string]http.HandlerFunc) *fixture {
	t.Helper()
	if b == nil {
		b = &backend{}
	}
	srv := httptest.NewServer(b.handler(t, routes))
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	reg := prometheus.NewRegistry()
	c, err := New(Options{BaseURL: srv.URL + "/api", Registerer: reg}, store, nil)
	require.NoError(t, err)
	t.Cleanup(c.http.CloseIdleConnections)

	return &fixture{srv: srv, client: c, store: store, backend: b, reg: reg}
}

func (f *fixture) login(t *testing.T, access, refresh string) {
	t.Helper()
	require.NoError(t, f.store.SetCredentials(context.Background(), session.Credentials{Access: access, Refresh: refresh}))
}

func (f *fixture) creds(t *testing.T) session.Credentials {
	t.Helper()
	c, err := f.store.Credentials(context.Background())
	require.NoError(t, err)
	return c
}

const (
	timeoutShort = 2 * time.Second
	tick         = 10 * time.Millisecond
)

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (b *backend) seenTokens() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.seen...)
}

func (b *backend) lastRefreshBody() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshBody
}
