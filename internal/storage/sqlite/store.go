// Package sqlite implements the save store over a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/oakhaven/wayfarer/internal/storage"
	"github.com/oakhaven/wayfarer/internal/storage/sqlite/migrations"
)

// Store implements storage.SaveStore over a single SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the save database at path and applies bundled migrations.
//
// Precondition: path must be non-empty.
// Postcondition: Returns a ready Store or a non-nil error; on error no
// database handle is left open.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Save writes snap into slot as a full replace.
func (s *Store) Save(ctx context.Context, slot string, snap *storage.Snapshot) error {
	if strings.TrimSpace(slot) == "" {
		return fmt.Errorf("save slot is required")
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO saves (slot, id, player_name, level, payload, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
    player_name = excluded.player_name,
    level = excluded.level,
    payload = excluded.payload,
    updated_at = excluded.updated_at
`, slot, uuid.NewString(), snap.Name, snap.Level, string(payload), now, now)
	if err != nil {
		return fmt.Errorf("write save %q: %w", slot, err)
	}
	return nil
}

// Load reads the snapshot in slot.
//
// Postcondition: Returns storage.ErrNotFound when the slot has no save.
func (s *Store) Load(ctx context.Context, slot string) (*storage.Snapshot, error) {
	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT payload FROM saves WHERE slot = ?", slot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read save %q: %w", slot, err)
	}

	var snap storage.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode save %q: %w", slot, err)
	}
	return &snap, nil
}

// Slots lists stored saves, most recently updated first.
func (s *Store) Slots(ctx context.Context) ([]storage.SlotInfo, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT slot, player_name, level, updated_at FROM saves ORDER BY updated_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	defer rows.Close()

	var out []storage.SlotInfo
	for rows.Next() {
		var info storage.SlotInfo
		var updated int64
		if err := rows.Scan(&info.Slot, &info.Name, &info.Level, &updated); err != nil {
			return nil, fmt.Errorf("scan save row: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saves: %w", err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}
