// Package session holds the current session's credential pair and the cached
// user snapshot. The API client receives a Store at construction instead of
// reading ambient global state, which makes the single-writer assumption
// explicit and lets tests swap the backend.
//
// Backends:
//   - MemoryStore:   process memory, lost on exit.
//   - MetadataStore: local SQLite metadata table.
//   - KeyringStore:  OS keychain or encrypted file via 99designs/keyring.
package session

//go:generate mockgen -source=store.go -destination=mocks/store.go -package=mocks Store

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

var ErrUnknownBackend = errors.New("unknown session backend")

// Backend names accepted by configuration.
const (
	BackendMemory  = "memory"
	BackendSQLite  = "sqlite"
	BackendKeyring = "keyring"
)

// Credentials is the session credential pair. The access credential may be
// stale at any time; only the server decides validity.
type Credentials struct {
	Access  string
	Refresh string
}

// Empty reports whether neither credential is present.
func (c Credentials) Empty() bool {
	return c.Access == "" && c.Refresh == ""
}

// Store is the get/set/clear contract for session state. Implementations are
// safe for concurrent use.
type Store interface {
	// Credentials returns the stored pair; missing values are empty strings.
	Credentials(ctx context.Context) (Credentials, error)
	// SetCredentials replaces the stored pair. An empty field removes that
	// credential.
	SetCredentials(ctx context.Context, c Credentials) error
	// User returns the cached snapshot, or nil when none is stored.
	User(ctx context.Context) (*models.User, error)
	// SetUser replaces the snapshot; nil removes it.
	SetUser(ctx context.Context, u *models.User) error
	// Clear removes both credentials and the snapshot.
	Clear(ctx context.Context) error
}
