package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/99designs/keyring"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/common"
)

const keyringServiceName = "storefront"

// KeyringConfig selects where the keyring lives. With FileOnly set the
// encrypted file backend under FileDir is used even when an OS keychain is
// available, which is what headless machines need.
type KeyringConfig struct {
	FileDir    string
	Passphrase string
	FileOnly   bool
}

// KeyringStore keeps session state in the OS keychain (or an encrypted file)
// as three items named after the fixed session keys.
type KeyringStore struct {
	mu   sync.Mutex
	ring keyring.Keyring
}

// OpenKeyring opens the configured keyring.
func OpenKeyring(cfg KeyringConfig) (*KeyringStore, error) {
	kc := keyring.Config{
		ServiceName: keyringServiceName,
		FileDir:     cfg.FileDir,
		FilePasswordFunc: func(string) (string, error) {
			if cfg.Passphrase == "" {
				return "", errors.New("keyring passphrase is not configured")
			}
			return cfg.Passphrase, nil
		},
	}
	if cfg.FileOnly {
		kc.AllowedBackends = []keyring.BackendType{keyring.FileBackend}
	}

	ring, err := keyring.Open(kc)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return NewKeyringStore(ring), nil
}

func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

func (s *KeyringStore) get(key string) ([]byte, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("keyring get %s: %w", key, err)
	}
	return item.Data, nil
}

func (s *KeyringStore) put(key string, data []byte) error {
	if len(data) == 0 {
		return s.remove(key)
	}
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  data,
		Label: keyringServiceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("keyring set %s: %w", key, err)
	}
	return nil
}

func (s *KeyringStore) remove(key string) error {
	err := s.ring.Remove(key)
	if err == nil || errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("keyring remove %s: %w", key, err)
}

func (s *KeyringStore) Credentials(_ context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, err := s.get(common.AccessTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := s.get(common.RefreshTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Access: string(access), Refresh: string(refresh)}, nil
}

func (s *KeyringStore) SetCredentials(_ context.Context, c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.put(common.AccessTokenKey, []byte(c.Access)); err != nil {
		return err
	}
	return s.put(common.RefreshTokenKey, []byte(c.Refresh))
}

func (s *KeyringStore) User(_ context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.get(common.UserSnapshotKey)
	if err != nil || raw == nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user snapshot: %w", err)
	}
	return &u, nil
}

func (s *KeyringStore) SetUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u == nil {
		return s.remove(common.UserSnapshotKey)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	return s.put(common.UserSnapshotKey, raw)
}

func (s *KeyringStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{common.AccessTokenKey, common.RefreshTokenKey, common.UserSnapshotKey} {
		errs = append(errs, s.remove(key))
	}
	return errors.Join(errs...)
}
