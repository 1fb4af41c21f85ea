package session

import (
	"database/sql"
	"errors"
	"fmt"
)

// Options configures New.
type Options struct {
	Backend string
	DB      *sql.DB
	Keyring KeyringConfig
}

// New builds the Store selected by opts.Backend.
func New(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case "", BackendSQLite:
		if opts.DB == nil {
			return nil, errors.New("sqlite session backend requires a database")
		}
		return NewMetadataStore(opts.DB), nil
	case BackendKeyring:
		return OpenKeyring(opts.Keyring)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
