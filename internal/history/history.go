// Package history keeps a local SQLite record of TODOs created from this
// machine, so recent work can be listed without a network call.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/todoforai/todoai-cli/internal/config"

	_ "modernc.org/sqlite"
)

const schemaVersion = 1

// Entry is one created TODO.
type Entry struct {
	TodoID      string    `json:"todo_id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name,omitempty"`
	AgentName   string    `json:"agent_name,omitempty"`
	Content     string    `json:"content"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store is a SQLite-backed history of created TODOs.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database path, next to the config file.
func DefaultPath() string {
	return filepath.Join(config.DefaultDir(), "todos.db")
}

// Open opens (or creates) the history database at dbPath, creating the parent
// directory and running schema migrations as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for WAL mode simplicity.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("create version table: %w", err)
	}

	var ver int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&ver)
	if err == sql.ErrNoRows {
		ver = 0
	} else if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	if ver < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) migrateV1() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS todos (
			todo_id      TEXT PRIMARY KEY,
			project_id   TEXT NOT NULL,
			project_name TEXT,
			agent_name   TEXT,
			content      TEXT NOT NULL,
			url          TEXT,
			created_at   TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at)`,
		`INSERT OR REPLACE INTO schema_version (version) VALUES (1)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate v1: %w", err)
		}
	}
	return nil
}

// Record stores a created TODO.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO todos (todo_id, project_id, project_name, agent_name, content, url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.TodoID, e.ProjectID, e.ProjectName, e.AgentName, e.Content, e.URL,
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record todo: %w", err)
	}
	return nil
}

// List returns entries newest first, up to limit (0 means no limit).
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT todo_id, project_id, project_name, agent_name, content, url, created_at
	      FROM todos ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.TodoID, &e.ProjectID, &e.ProjectName, &e.AgentName, &e.Content, &e.URL, &created); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Last returns the most recently created entry, or nil if the history is empty.
func (s *Store) Last(ctx context.Context) (*Entry, error) {
	entries, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM todos"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
