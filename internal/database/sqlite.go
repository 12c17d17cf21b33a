// Package database is the client's local SQLite storage: post drafts
// awaiting publication and the command journal. Nothing here mirrors
// backend state.
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"bee-go/internal/bee"
	"bee-go/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the DraftStore and Journal interfaces using SQLite.
type SQLiteStore struct {
	db    *sql.DB
	clock bee.Clock
	path  string
}

// NewSQLiteStore creates a new SQLite store.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteStore(path string, clock bee.Clock) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = bee.RealClock{}
	}

	return &SQLiteStore{
		db:    db,
		clock: clock,
		path:  path,
	}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each pooled connection would get its own empty in-memory database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// CheckMigrations verifies the schema is at the latest version.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate brings the schema to the latest version.
func (s *SQLiteStore) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Draft operations

func (s *SQLiteStore) SaveDraft(draft *bee.Draft) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO drafts (id, caption, image, location, created_at) VALUES (?, ?, ?, ?, ?)`,
		draft.ID, draft.Caption, draft.Image, draft.Location, draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindDraft(id string) (*bee.Draft, error) {
	row := s.db.QueryRow(
		`SELECT id, caption, image, location, created_at FROM drafts WHERE id = ?`, id,
	)

	var draft bee.Draft
	err := row.Scan(&draft.ID, &draft.Caption, &draft.Image, &draft.Location, &draft.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding draft: %w", err)
	}
	return &draft, nil
}

func (s *SQLiteStore) ListDrafts() ([]*bee.Draft, error) {
	rows, err := s.db.Query(
		`SELECT id, caption, image, location, created_at FROM drafts ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*bee.Draft
	for rows.Next() {
		var draft bee.Draft
		if err := rows.Scan(&draft.ID, &draft.Caption, &draft.Image, &draft.Location, &draft.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning draft: %w", err)
		}
		drafts = append(drafts, &draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

func (s *SQLiteStore) DeleteDraft(id string) error {
	if _, err := s.db.Exec(`DELETE FROM drafts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

// Journal operations

func (s *SQLiteStore) CreateCommand(command, parameters string) (*bee.CommandRecord, error) {
	startedAt := s.clock.Now().UTC()
	res, err := s.db.Exec(
		`INSERT INTO commands (command, parameters, status, started_at) VALUES (?, ?, 'success', ?)`,
		command, parameters, startedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating command record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading command record id: %w", err)
	}

	return &bee.CommandRecord{
		ID:         id,
		Command:    command,
		Parameters: parameters,
		Status:     "success",
		StartedAt:  startedAt,
	}, nil
}

func (s *SQLiteStore) FinishCommand(id int64, status string) error {
	finishedAt := s.clock.Now().UTC()
	_, err := s.db.Exec(
		`UPDATE commands SET status = ?, finished_at = ? WHERE id = ?`,
		status, finishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("finishing command record: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RecentCommands(limit int) ([]*bee.CommandRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, command, parameters, status, started_at, finished_at
		 FROM commands ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing command records: %w", err)
	}
	defer rows.Close()

	var records []*bee.CommandRecord
	for rows.Next() {
		var rec bee.CommandRecord
		var finishedAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Command, &rec.Parameters, &rec.Status, &rec.StartedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning command record: %w", err)
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			rec.FinishedAt = &t
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command records: %w", err)
	}
	return records, nil
}

// Compile-time checks
var (
	_ bee.DraftStore = (*SQLiteStore)(nil)
	_ bee.Journal    = (*SQLiteStore)(nil)
)
