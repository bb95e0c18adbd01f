// Package store keeps benchmark run history in SQLite.
package store

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wippyai/anybox/bench"
	"github.com/wippyai/anybox/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	loop        INTEGER NOT NULL,
	started_at  INTEGER NOT NULL,
	elapsed_ns  INTEGER NOT NULL,
	cpu         INTEGER NOT NULL,
	times       INTEGER NOT NULL,
	num         INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id       INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	grp          TEXT NOT NULL,
	measure      TEXT NOT NULL,
	container    TEXT NOT NULL,
	payload      TEXT NOT NULL,
	construct_ns REAL NOT NULL,
	destroy_ns   REAL NOT NULL,
	get_ns       REAL NOT NULL,
	allocs       REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS analyses (
	run_id                  INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	type                    TEXT NOT NULL,
	size                    INTEGER NOT NULL,
	trivially_constructible INTEGER NOT NULL,
	trivially_destructible  INTEGER NOT NULL,
	class                   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS results_run ON results(run_id);
`

// Store is a SQLite-backed bench.Recorder.
type Store struct {
	db *sql.DB
}

var _ bench.Recorder = (*Store)(nil)

// Open opens or creates the database at path. ":memory:" gives a private
// in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "open "+path)
	}
	// one connection keeps ":memory:" databases shared across calls
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "create schema")
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores run with its analyses and results and returns its ID.
func (s *Store) SaveRun(ctx context.Context, run bench.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "begin")
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (loop, started_at, elapsed_ns, cpu, times, num) VALUES (?, ?, ?, ?, ?, ?)`,
		run.Loop, run.Started.UnixNano(), int64(run.Elapsed), run.CPU, run.Config.Times, run.Config.Num)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "insert run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "run id")
	}

	for _, a := range run.Analyses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO analyses (run_id, type, size, trivially_constructible, trivially_destructible, class) VALUES (?, ?, ?, ?, ?, ?)`,
			id, a.Type, int64(a.Size), a.TriviallyConstructible, a.TriviallyDestructible, a.Class); err != nil {
			return 0, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "insert analysis")
		}
	}

	for _, r := range run.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results (run_id, grp, measure, container, payload, construct_ns, destroy_ns, get_ns, allocs) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, r.Group, string(r.Measure), r.Container, r.Payload, r.Construct, r.Destroy, r.Get, r.Allocs); err != nil {
			return 0, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "insert result")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "commit")
	}
	return id, nil
}

// Runs returns up to limit runs, newest first, without their results.
// A limit of 0 or less returns all runs.
func (s *Store) Runs(ctx context.Context, limit int) ([]bench.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, loop, started_at, elapsed_ns, cpu, times, num FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "query runs")
	}
	defer rows.Close()

	var runs []bench.Run
	for rows.Next() {
		var run bench.Run
		var started, elapsed int64
		if err := rows.Scan(&run.ID, &run.Loop, &started, &elapsed, &run.CPU, &run.Config.Times, &run.Config.Num); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "scan run")
		}
		run.Started = time.Unix(0, started)
		run.Elapsed = time.Duration(elapsed)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "iterate runs")
	}
	return runs, nil
}

// Run loads one run with its analyses and results.
func (s *Store) Run(ctx context.Context, id int64) (bench.Run, error) {
	var run bench.Run
	var started, elapsed int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, loop, started_at, elapsed_ns, cpu, times, num FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Loop, &started, &elapsed, &run.CPU, &run.Config.Times, &run.Config.Num)
	if err == sql.ErrNoRows {
		return bench.Run{}, errors.NotFound(errors.PhaseStore, "run", strconv.FormatInt(id, 10))
	}
	if err != nil {
		return bench.Run{}, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "query run")
	}
	run.Started = time.Unix(0, started)
	run.Elapsed = time.Duration(elapsed)

	if run.Analyses, err = s.analyses(ctx, id); err != nil {
		return bench.Run{}, err
	}
	if run.Results, err = s.Results(ctx, id); err != nil {
		return bench.Run{}, err
	}
	return run, nil
}

// Results returns the results of a run in measurement order.
func (s *Store) Results(ctx context.Context, runID int64) ([]bench.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grp, measure, container, payload, construct_ns, destroy_ns, get_ns, allocs FROM results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "query results")
	}
	defer rows.Close()

	var out []bench.Result
	for rows.Next() {
		var r bench.Result
		var measure string
		if err := rows.Scan(&r.Group, &measure, &r.Container, &r.Payload, &r.Construct, &r.Destroy, &r.Get, &r.Allocs); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "scan result")
		}
		r.Measure = bench.Measure(measure)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "iterate results")
	}
	return out, nil
}

func (s *Store) analyses(ctx context.Context, runID int64) ([]bench.Analysis, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT type, size, trivially_constructible, trivially_destructible, class FROM analyses WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "query analyses")
	}
	defer rows.Close()

	var out []bench.Analysis
	for rows.Next() {
		var a bench.Analysis
		var size int64
		if err := rows.Scan(&a.Type, &size, &a.TriviallyConstructible, &a.TriviallyDestructible, &a.Class); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "scan analysis")
		}
		a.Size = uintptr(size)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "iterate analyses")
	}
	return out, nil
}
