package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/hackorsnooze/internal/dbx"
)

var ErrIncomplete = errors.New("token and username are both required")

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (Credentials, bool, error) {
	repo := NewSQLiteRepository(s.db)

	token, ok, err := repo.Get(ctx, KeyToken)
	if err != nil || !ok || token == "" {
		return Credentials{}, false, err
	}
	username, ok, err := repo.Get(ctx, KeyUsername)
	if err != nil || !ok || username == "" {
		return Credentials{}, false, err
	}
	return Credentials{Token: token, Username: username}, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, creds Credentials) error {
	if creds.Token == "" || creds.Username == "" {
		return ErrIncomplete
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, creds.Token); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUsername, creds.Username)
	})
}

// Clear removes both values. Clearing an empty store is not an error.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, KeyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, KeyUsername)
	})
}
