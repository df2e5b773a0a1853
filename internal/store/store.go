// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/uelist/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for recorded runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			mount_id TEXT NOT NULL DEFAULT '',
			variant TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			records INTEGER NOT NULL,
			row_renders INTEGER NOT NULL,
			filter_runs INTEGER NOT NULL,
			stats_runs INTEGER NOT NULL,
			forced_renders INTEGER NOT NULL,
			deletions INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_variant ON runs(variant);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores the measurements of one list view mount.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (mount_id, variant, started_at, ended_at, records, row_renders, filter_runs, stats_runs, forced_renders, deletions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.MountID,
		string(run.Variant),
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.Records,
		run.Counts.RowRenders,
		run.Counts.FilterRuns,
		run.Counts.StatsRuns,
		run.Counts.ForcedRenders,
		run.Counts.Deletions,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns runs in chronological order. Last keeps only the most
// recent N runs after the variant filter.
func (s *Store) ListRuns(ctx context.Context, filter model.RunFilter) ([]model.Run, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Variant != "" {
		clauses = append(clauses, "variant = ?")
		args = append(args, string(filter.Variant))
	}
	query := fmt.Sprintf(`SELECT id, mount_id, variant, started_at, ended_at, records, row_renders, filter_runs, stats_runs, forced_renders, deletions
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var variant, startedAt, endedAt string
		if err := rows.Scan(&run.ID, &run.MountID, &variant, &startedAt, &endedAt, &run.Records,
			&run.Counts.RowRenders, &run.Counts.FilterRuns, &run.Counts.StatsRuns,
			&run.Counts.ForcedRenders, &run.Counts.Deletions); err != nil {
			return nil, err
		}
		run.Variant = model.Variant(variant)
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(runs) > filter.Last {
		runs = runs[len(runs)-filter.Last:]
	}
	return runs, nil
}

// SummarizeRuns aggregates all runs per variant, ordered by variant name.
func (s *Store) SummarizeRuns(ctx context.Context) ([]model.RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT variant, COUNT(*), SUM(row_renders), SUM(filter_runs), SUM(stats_runs), SUM(forced_renders)
		 FROM runs
		 GROUP BY variant
		 ORDER BY variant ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RunSummary
	for rows.Next() {
		var sum model.RunSummary
		var variant string
		if err := rows.Scan(&variant, &sum.Runs, &sum.RowRenders, &sum.FilterRuns, &sum.StatsRuns, &sum.ForcedRenders); err != nil {
			return nil, err
		}
		sum.Variant = model.Variant(variant)
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
