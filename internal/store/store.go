// Package store provides the SQLite-backed job match record store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Filename is the name of the database file inside the data directory.
const Filename = "job_matches.sqlite"

// JobMatch is a persisted analysis result. Records are immutable once
// written; they are only listed or bulk-cleared.
type JobMatch struct {
	ID         string  `json:"id"`
	AnalysisID string  `json:"analysis_id,omitempty"`
	URL        string  `json:"url"`
	Title      string  `json:"title,omitempty"`
	Company    string  `json:"company,omitempty"`
	Location   string  `json:"location,omitempty"`
	MatchScore float64 `json:"match_score"`
	Summary    string  `json:"summary"`
	CreatedAt  string  `json:"created_at"`
	RawExcerpt string  `json:"raw_excerpt,omitempty"`
}

// JobMatchInput carries the caller-supplied fields of a new record. Identity
// and timestamp are assigned at insert time. MatchScore is a pointer so that
// a legitimate zero score still satisfies the required check.
type JobMatchInput struct {
	AnalysisID string   `json:"analysis_id,omitempty"`
	URL        string   `json:"url" validate:"required"`
	Title      string   `json:"title,omitempty"`
	Company    string   `json:"company,omitempty"`
	Location   string   `json:"location,omitempty"`
	MatchScore *float64 `json:"match_score" validate:"required"`
	Summary    string   `json:"summary" validate:"required"`
	RawExcerpt string   `json:"raw_excerpt,omitempty"`
}

// Validate checks the required record fields.
func (in *JobMatchInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// DB is the job match store. The underlying SQLite handle is limited to one
// open connection, so store operations are serialized.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a store backed by the given path. Use ":memory:" for an
// in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS job_matches (
			id TEXT PRIMARY KEY,
			analysis_id TEXT,
			url TEXT NOT NULL,
			title TEXT,
			company TEXT,
			location TEXT,
			match_score REAL NOT NULL,
			summary TEXT NOT NULL,
			created_at TEXT NOT NULL,
			raw_excerpt TEXT
		);
	`

	_, err := db.db.Exec(schema)
	return err
}

// Insert assigns a fresh id and timestamp, persists the record, and returns
// the stored row.
func (db *DB) Insert(ctx context.Context, input JobMatchInput) (JobMatch, error) {
	if err := input.Validate(); err != nil {
		return JobMatch{}, fmt.Errorf("invalid job match: %w", err)
	}

	match := JobMatch{
		ID:         uuid.NewString(),
		AnalysisID: input.AnalysisID,
		URL:        input.URL,
		Title:      input.Title,
		Company:    input.Company,
		Location:   input.Location,
		MatchScore: *input.MatchScore,
		Summary:    input.Summary,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		RawExcerpt: input.RawExcerpt,
	}

	_, err := db.db.ExecContext(ctx,
		`INSERT INTO job_matches
		   (id, analysis_id, url, title, company, location, match_score, summary, created_at, raw_excerpt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		match.ID, nullable(match.AnalysisID), match.URL, nullable(match.Title),
		nullable(match.Company), nullable(match.Location), match.MatchScore,
		match.Summary, match.CreatedAt, nullable(match.RawExcerpt),
	)
	if err != nil {
		return JobMatch{}, fmt.Errorf("failed to insert job match: %w", err)
	}
	return match, nil
}

// List returns up to limit records ordered newest first.
func (db *DB) List(ctx context.Context, limit int) ([]JobMatch, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT id, analysis_id, url, title, company, location, match_score, summary, created_at, raw_excerpt
		 FROM job_matches
		 ORDER BY datetime(created_at) DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query job matches: %w", err)
	}
	defer rows.Close()

	matches := make([]JobMatch, 0)
	for rows.Next() {
		var m JobMatch
		var analysisID, title, company, location, rawExcerpt sql.NullString
		if err := rows.Scan(&m.ID, &analysisID, &m.URL, &title, &company,
			&location, &m.MatchScore, &m.Summary, &m.CreatedAt, &rawExcerpt); err != nil {
			return nil, fmt.Errorf("failed to scan job match: %w", err)
		}
		m.AnalysisID = analysisID.String
		m.Title = title.String
		m.Company = company.String
		m.Location = location.String
		m.RawExcerpt = rawExcerpt.String
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job matches: %w", err)
	}
	return matches, nil
}

// Clear deletes all records.
func (db *DB) Clear(ctx context.Context) error {
	if _, err := db.db.ExecContext(ctx, `DELETE FROM job_matches`); err != nil {
		return fmt.Errorf("failed to clear job matches: %w", err)
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
