package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/session"
)

// ---- helpers ----

func newTestAPI(t *testing.T, mux *http.ServeMux) (*api.Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	store := session.NewMemoryStore()
	c, err := api.New(api.Options{BaseURL: srv.URL + "/api", HTTPClient: srv.Client()}, store, nil)
	require.NoError(t, err)
	return c, store
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		t.Errorf("decode body: %v", err)
	}
	return m
}

func loginAs(t *testing.T, store session.Store, access string) {
	t.Helper()
	require.NoError(t, store.SetCredentials(context.Background(), session.Credentials{Access: access, Refresh: "ref"}))
}

// requireBearer fails the request with 401 unless tok is presented.
func requireBearer(tok string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+tok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		next(w, r)
	}
}

func sessionWithoutRefresh(access string) session.Credentials {
	return session.Credentials{Access: access}
}
