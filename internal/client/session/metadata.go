package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/dbx"
)

// MetadataStore keeps session state in the local metadata table under the
// fixed keys access_token, refresh_token and user. Multi-key writes run in
// one transaction so a reader never sees half a pair.
type MetadataStore struct {
	db *sql.DB
}

func NewMetadataStore(db *sql.DB) *MetadataStore {
	return &MetadataStore{db: db}
}

func (s *MetadataStore) Credentials(ctx context.Context) (Credentials, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	access, err := repo.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := repo.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Access: string(access), Refresh: string(refresh)}, nil
}

func (s *MetadataStore) SetCredentials(ctx context.Context, c Credentials) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := putOrDelete(ctx, repo, common.AccessTokenKey, c.Access); err != nil {
			return err
		}
		return putOrDelete(ctx, repo, common.RefreshTokenKey, c.Refresh)
	})
}

func putOrDelete(ctx context.Context, repo metadata.Repository, key, value string) error {
	if value == "" {
		return repo.Delete(ctx, key)
	}
	return repo.Set(ctx, key, []byte(value))
}

func (s *MetadataStore) User(ctx context.Context) (*models.User, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, common.UserSnapshotKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user snapshot: %w", err)
	}
	return &u, nil
}

func (s *MetadataStore) SetUser(ctx context.Context, u *models.User) error {
	repo := metadata.NewSQLiteRepository(s.db)
	if u == nil {
		return repo.Delete(ctx, common.UserSnapshotKey)
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	return repo.Set(ctx, common.UserSnapshotKey, raw)
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx,
		common.AccessTokenKey, common.RefreshTokenKey, common.UserSnapshotKey)
}
