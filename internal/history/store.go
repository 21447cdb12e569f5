// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records converter runs in a SQLite database and exports
// them as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docconv/pkg/types"
)

const defaultLimit = 20

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating the parent
// directory and the schema when they do not exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool TEXT NOT NULL,
			input TEXT NOT NULL,
			outputs TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			duration_ns INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_tool ON conversions(tool)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends c and returns its row id.
func (s *Store) Record(ctx context.Context, c types.Conversion) (int64, error) {
	outputs := c.Outputs
	if outputs == nil {
		outputs = []string{}
	}
	outputsJSON, err := json.Marshal(outputs)
	if err != nil {
		return 0, fmt.Errorf("encoding outputs: %w", err)
	}
	finished := c.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (tool, input, outputs, status, error, duration_ns, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Tool, c.Input, string(outputsJSON), string(c.Status), c.Error,
		int64(c.Duration), finished.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting conversion: %w", err)
	}
	return res.LastInsertId()
}

// Query filters List results.
type Query struct {
	// Tool restricts results to one converter.
	Tool string

	// Limit caps the number of rows. Zero uses the default of 20; a negative
	// value returns every row.
	Limit int
}

// List returns recorded conversions, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]types.Conversion, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT id, tool, input, outputs, status, error, duration_ns, finished_at
		FROM conversions WHERE 1=1`)
	if q.Tool != "" {
		qb.WriteString(` AND tool = ?`)
		args = append(args, q.Tool)
	}
	qb.WriteString(` ORDER BY id DESC`)

	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var out []types.Conversion
	for rows.Next() {
		var (
			c           types.Conversion
			outputsJSON string
			status      string
			errMsg      sql.NullString
			durationNS  int64
			finishedAt  string
		)
		if err := rows.Scan(&c.ID, &c.Tool, &c.Input, &outputsJSON, &status, &errMsg, &durationNS, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		if err := json.Unmarshal([]byte(outputsJSON), &c.Outputs); err != nil {
			return nil, fmt.Errorf("decoding outputs of conversion %d: %w", c.ID, err)
		}
		c.Status = types.ConversionStatus(status)
		c.Error = errMsg.String
		c.Duration = time.Duration(durationNS)
		if c.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("parsing finished_at of conversion %d: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
