package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"CounterPicker/internal/domain"
	"CounterPicker/internal/ports"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	catalog TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	total INTEGER NOT NULL,
	present INTEGER NOT NULL DEFAULT 0,
	cancelled INTEGER NOT NULL DEFAULT 0,
	unreleased INTEGER NOT NULL DEFAULT 0,
	removed INTEGER NOT NULL DEFAULT 0,
	unknown INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_runs_catalog_started ON runs(catalog, started_at);
`

// RunRepository persists enrichment run tallies into SQLite.
type RunRepository struct {
	db *sql.DB
}

var _ ports.RunRepository = (*RunRepository)(nil)

// OpenRunRepository opens (or creates) the history database at path.
func OpenRunRepository(ctx context.Context, path string) (*RunRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run history: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &RunRepository{db: db}, nil
}

// Close releases the database handle.
func (r *RunRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveRun inserts one run; re-saving the same id replaces it.
func (r *RunRepository) SaveRun(ctx context.Context, run domain.RunReport) error {
	if r.db == nil {
		return nil
	}

	query, args, err := sq.Replace("runs").
		Columns("id", "catalog", "started_at", "finished_at", "total",
			"present", "cancelled", "unreleased", "removed", "unknown").
		Values(
			run.ID,
			run.Catalog,
			run.StartedAt.UTC().Format(time.RFC3339Nano),
			run.FinishedAt.UTC().Format(time.RFC3339Nano),
			run.Total(),
			run.Counts[domain.StatusPresent],
			run.Counts[domain.StatusCancelled],
			run.Counts[domain.StatusUnreleased],
			run.Counts[domain.StatusRemoved],
			run.Counts[domain.StatusUnknown],
		).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. An empty catalog name
// matches every catalog.
func (r *RunRepository) RecentRuns(ctx context.Context, catalog string, limit int) ([]domain.RunReport, error) {
	if r.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	builder := sq.Select("id", "catalog", "started_at", "finished_at",
		"present", "cancelled", "unreleased", "removed", "unknown").
		From("runs").
		OrderBy("started_at DESC", "id DESC").
		Limit(uint64(limit))
	if catalog != "" {
		builder = builder.Where(sq.Eq{"catalog": catalog})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var result []domain.RunReport
	for rows.Next() {
		var (
			run                                           domain.RunReport
			started, finished                             string
			present, cancelled, unreleased, removed, unkn int
		)
		if err := rows.Scan(&run.ID, &run.Catalog, &started, &finished,
			&present, &cancelled, &unreleased, &removed, &unkn); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		run.Counts = domain.StatusCounts{
			domain.StatusPresent:    present,
			domain.StatusCancelled:  cancelled,
			domain.StatusUnreleased: unreleased,
			domain.StatusRemoved:    removed,
			domain.StatusUnknown:    unkn,
		}
		result = append(result, run)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}
