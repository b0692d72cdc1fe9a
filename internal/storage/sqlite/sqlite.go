package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/michaelbrown/adguard-mcp/internal/storage"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements storage.Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path and runs
// migrations. Use ":memory:" for an in-memory database (useful for testing).
func Open(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) RecordCall(ctx context.Context, rec *storage.CallRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tool_calls (id, tool, category, args, ok, error, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Tool, rec.Category, rec.Args, rec.OK, rec.Error,
		rec.Duration.Milliseconds(), rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting tool call: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListCalls(ctx context.Context, opts storage.CallListOptions) ([]storage.CallRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, tool, category, args, ok, error, duration_ms, created_at FROM tool_calls`
	var conds []string
	var args []any

	if opts.Tool != "" {
		conds = append(conds, `tool = ?`)
		args = append(args, opts.Tool)
	}
	if opts.Category != "" {
		conds = append(conds, `category = ?`)
		args = append(args, opts.Category)
	}
	if opts.FailedOnly {
		conds = append(conds, `ok = 0`)
	}
	for i, cond := range conds {
		if i == 0 {
			query += ` WHERE ` + cond
		} else {
			query += ` AND ` + cond
		}
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, opts.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tool calls: %w", err)
	}
	defer rows.Close()

	var records []storage.CallRecord
	for rows.Next() {
		rec, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanCall(rows *sql.Rows) (*storage.CallRecord, error) {
	var rec storage.CallRecord
	var durationMS int64
	var createdAt string
	err := rows.Scan(&rec.ID, &rec.Tool, &rec.Category, &rec.Args, &rec.OK,
		&rec.Error, &durationMS, &createdAt)
	if err != nil {
		return nil, err
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &rec, nil
}
