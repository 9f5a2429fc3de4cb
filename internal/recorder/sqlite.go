package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"FarmSentinel/internal/model"
)

// SQLiteRecorder journals notifications to a SQLite database.
type SQLiteRecorder struct {
	db    *sql.DB
	mu    sync.Mutex
	clock func() time.Time
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets external readers query the journal while we write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, clock: time.Now}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			type       TEXT NOT NULL,
			priority   TEXT NOT NULL,
			service    TEXT NOT NULL,
			message    TEXT NOT NULL,
			delivered  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_ts ON events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS digests (
			id         TEXT PRIMARY KEY,
			timestamp  INTEGER NOT NULL,
			message    TEXT NOT NULL,
			delivered  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_digests_ts ON digests(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordEvent stores a user event and whether any notifier delivered it.
func (r *SQLiteRecorder) RecordEvent(evt model.Event, delivered bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO events
		(timestamp, type, priority, service, message, delivered)
		VALUES (?,?,?,?,?,?)`,
		r.clock().Unix(), string(evt.Type), evt.Priority.String(), string(evt.Service),
		evt.Message, delivered,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// RecordDigest stores a digest under a fresh id and returns that id.
func (r *SQLiteRecorder) RecordDigest(evt model.Event, delivered bool) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO digests (id, timestamp, message, delivered) VALUES (?,?,?,?)`,
		id, r.clock().Unix(), evt.Message, delivered,
	)
	if err != nil {
		return "", fmt.Errorf("insert digest: %w", err)
	}
	return id, nil
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
