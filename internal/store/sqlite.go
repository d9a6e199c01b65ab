package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const cartBlobSchema = `
CREATE TABLE IF NOT EXISTS cart_blobs (
	owner_id   TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLiteStore persists cart blobs in an embedded SQLite database, one row
// per owner.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// WAL keeps concurrent readers from blocking the single writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(cartBlobSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cart_blobs table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, ownerID string) ([]domain.CartItem, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("ownerID is empty")
	}

	var payload []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT payload FROM cart_blobs WHERE owner_id = ?", ownerID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select cart blob: %w", err)
	}

	items, err := DecodeItems(payload)
	if err != nil {
		return nil, fmt.Errorf("DecodeItems: %w", err)
	}

	return items, nil
}

func (s *SQLiteStore) Save(ctx context.Context, ownerID string, items []domain.CartItem) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	payload, err := EncodeItems(items)
	if err != nil {
		return fmt.Errorf("EncodeItems: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_blobs (owner_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		ownerID, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert cart blob: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM cart_blobs WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("delete cart blob: %w", err)
	}

	return nil
}
