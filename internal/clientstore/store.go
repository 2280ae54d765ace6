// Package clientstore is the local client-side key/value storage: pending
// sign-up fields, the session token, and the copy of the last recognized
// user kept for display.
package clientstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/facekeeper/internal/dbx"
)

// Well-known storage keys.
const (
	KeyFullName       = "fullname"
	KeyEmail          = "email"
	KeyTelephone      = "telephone"
	KeySession        = "session"
	KeyRecognizedUser = "recognized_user_data"
)

// Store is a persistent string-keyed blob store. A missing key reads as
// (nil, nil).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM client_storage WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client_storage[%s]: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO client_storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set client_storage[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_storage WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete client_storage[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM client_storage`)
	if err != nil {
		return fmt.Errorf("failed to clear client_storage: %w", err)
	}
	return nil
}
