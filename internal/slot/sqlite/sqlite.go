// Package sqlite provides the durable slot backend: one row in a key-value
// table, keyed by the configured slot name, holding the JSON array payload.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"spendlog/internal/core"
	"spendlog/internal/slot"

	_ "modernc.org/sqlite"
)

type Slot struct {
	db  *sql.DB
	key string
}

func New(dbPath, key string) (*Slot, error) {
	if key == "" {
		key = slot.DefaultKey
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Slot{db: db, key: key}, nil
}

func (s *Slot) Load(ctx context.Context) ([]core.ExpenseRecord, error) {
	var payload []byte
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE key = ?`, s.key)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	return slot.DecodeRecords(payload), nil
}

func (s *Slot) Save(ctx context.Context, records []core.ExpenseRecord) error {
	payload, err := slot.EncodeRecords(records)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO slots (key, payload, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`,
		s.key, string(payload))
	if err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

func (s *Slot) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
