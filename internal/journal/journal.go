// Package journal persists memory entries in SQLite so a host process can
// rebuild its in-memory store across restarts. The journal is append-mostly
// write-through: the host records every add and delete after the store has
// accepted it, and replays all rows into a fresh store at startup. The
// in-memory store remains the single owner of live entries; the journal
// never serves reads directly.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rcliao/episodic-memory/internal/model"
	"github.com/rcliao/episodic-memory/internal/store"
)

// tsLayout keeps the fractional seconds fixed-width, unlike RFC3339Nano
// which trims trailing zeros, so lexicographic ORDER BY ts is
// chronological.
const tsLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journal is a SQLite-backed entry log.
type Journal struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the journal database at the given path. A nil
// logger falls back to slog.Default().
func Open(dbPath string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	j := &Journal{db: db, log: logger}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id        TEXT PRIMARY KEY,
		ts        TEXT NOT NULL,
		type      TEXT NOT NULL,
		content   TEXT NOT NULL,
		metadata  TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(type);
	CREATE INDEX IF NOT EXISTS idx_entries_ts ON entries(ts);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Append records a stored entry.
func (j *Journal) Append(ctx context.Context, e *model.Entry) error {
	var metaJSON *string
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		s := string(b)
		metaJSON = &s
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO entries (id, ts, type, content, metadata) VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UTC().Format(tsLayout), e.Type, e.Content, metaJSON)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// Remove drops an entry from the journal.
func (j *Journal) Remove(ctx context.Context, id string) error {
	_, err := j.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("remove entry: %w", err)
	}
	return nil
}

// RemoveType drops every entry of one type; an empty type drops everything.
func (j *Journal) RemoveType(ctx context.Context, entryType string) error {
	var err error
	if entryType == "" {
		_, err = j.db.ExecContext(ctx, `DELETE FROM entries`)
	} else {
		_, err = j.db.ExecContext(ctx, `DELETE FROM entries WHERE type = ?`, entryType)
	}
	if err != nil {
		return fmt.Errorf("remove entries: %w", err)
	}
	return nil
}

// LoadAll returns every journaled entry, oldest first.
func (j *Journal) LoadAll(ctx context.Context) ([]*model.Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, ts, type, content, metadata FROM entries ORDER BY ts, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Replay loads all journaled entries into the store and reports how many
// were restored.
func (j *Journal) Replay(ctx context.Context, s *store.Store) (int, error) {
	entries, err := j.LoadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("load journal: %w", err)
	}
	for i, e := range entries {
		if _, err := s.Add(e); err != nil {
			return i, fmt.Errorf("replay entry %s: %w", e.ID, err)
		}
	}
	if len(entries) > 0 {
		j.log.Debug("journal replayed", "entries", len(entries))
	}
	return len(entries), nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

func scanEntry(rows *sql.Rows) (*model.Entry, error) {
	var e model.Entry
	var ts string
	var metaJSON sql.NullString

	if err := rows.Scan(&e.ID, &ts, &e.Type, &e.Content, &metaJSON); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp for %s: %w", e.ID, err)
	}
	e.Timestamp = parsed
	if metaJSON.Valid {
		if err := json.Unmarshal([]byte(metaJSON.String), &e.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for %s: %w", e.ID, err)
		}
	}
	return &e, nil
}
