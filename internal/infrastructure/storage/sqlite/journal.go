// Package sqlite keeps the delivery journal in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"mtadmin/internal/domain/delivery"
	"mtadmin/internal/domain/record"
	"mtadmin/internal/infrastructure/migration"
)

// JournalFileName is the default name of the journal database.
const JournalFileName = "deliveries.db"

// timeLayout is fixed width so stored times sort lexicographically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Journal records webhook delivery attempts.
type Journal struct {
	db  *sql.DB
	log *slog.Logger
}

var _ delivery.Journal = (*Journal)(nil)

// NewJournal opens the database at path, applying pending migrations.
func NewJournal(path string, log *slog.Logger) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := migration.NewMigration(db, nil).Up(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &Journal{db: db, log: log.With("component", "journal", "path", path)}, nil
}

func (j *Journal) Record(ctx context.Context, a *delivery.Attempt) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO delivery_attempts (id, record_id, record_type, attempt, status_code,
		                               error, delivered, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID.String(), a.RecordID, string(a.RecordType), a.Attempt, a.StatusCode,
		a.Error, a.Delivered, formatTime(a.StartedAt), formatTime(a.FinishedAt))
	if err != nil {
		return fmt.Errorf("insert delivery attempt: %w", err)
	}
	j.log.Debug("delivery attempt recorded", "id", a.ID, "record_id", a.RecordID, "attempt", a.Attempt)
	return nil
}

// List returns attempts, most recent first.
func (j *Journal) List(ctx context.Context, q delivery.Query) ([]*delivery.Attempt, error) {
	query := `SELECT id, record_id, record_type, attempt, status_code, error, delivered, started_at, finished_at
		FROM delivery_attempts WHERE 1=1`
	args := []any{}

	if q.RecordID != "" {
		query += " AND record_id = ?"
		args = append(args, q.RecordID)
	}
	query += " ORDER BY started_at DESC, attempt DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query delivery attempts: %w", err)
	}
	defer rows.Close()

	var out []*delivery.Attempt
	for rows.Next() {
		var (
			a                 delivery.Attempt
			id, typ           string
			started, finished string
		)
		if err := rows.Scan(&id, &a.RecordID, &typ, &a.Attempt, &a.StatusCode,
			&a.Error, &a.Delivered, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan delivery attempt: %w", err)
		}
		if a.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse attempt id %q: %w", id, err)
		}
		a.RecordType = record.RecType(typ)
		a.StartedAt, _ = time.Parse(timeLayout, started)
		a.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
