// Package history persists generated loadouts to a local SQLite database
// so the UI can show recent rolls across sessions.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"riftroulette/internal/generator"
)

// Store manages the loadout history database
type Store struct {
	db *sql.DB
}

// Entry is one recorded loadout
type Entry struct {
	ID        int64             `json:"id"`
	Player    string            `json:"player"`
	Mode      string            `json:"mode"`
	Champion  string            `json:"champion"`
	Version   string            `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	Loadout   generator.Loadout `json:"loadout"`
}

// New opens (and if needed creates) the history database at path
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS loadouts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			player     TEXT NOT NULL,
			mode       TEXT NOT NULL,
			champion   TEXT NOT NULL,
			version    TEXT NOT NULL,
			payload    TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_loadouts_player ON loadouts(player);
	`)
	if err != nil {
		return fmt.Errorf("failed to create history schema: %w", err)
	}
	return nil
}

// Record stores every loadout of one generation call
func (s *Store) Record(ctx context.Context, mode string, loadouts map[string]generator.Loadout) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO loadouts (player, mode, champion, version, payload)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare history insert: %w", err)
	}
	defer stmt.Close()

	for player, l := range loadouts {
		payload, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("failed to encode loadout for %s: %w", player, err)
		}
		if _, err := stmt.ExecContext(ctx, player, mode, l.Champion.Name, l.Version, string(payload)); err != nil {
			return fmt.Errorf("failed to insert loadout for %s: %w", player, err)
		}
	}

	return tx.Commit()
}

// Recent returns the newest entries, most recent first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player, mode, champion, version, payload, created_at
		FROM loadouts
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var payload string
		if err := rows.Scan(&e.ID, &e.Player, &e.Mode, &e.Champion, &e.Version, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(payload), &e.Loadout); err != nil {
			return nil, fmt.Errorf("failed to decode history payload %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
