// Package rundb persists run metadata: every training run records the
// experiment name and the fully resolved configuration it was started with,
// so a result can always be traced back to exact hyperparameters.
package rundb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/POE21L/tractconf/packages/core/config"
)

// Run statuses.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// ErrNotFound is returned when a run id does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one recorded training run.
type Run struct {
	ID         string
	Experiment string
	ConfigJSON string
	Status     string
	CreatedAt  time.Time
	FinishedAt *time.Time
}

// Duration returns the run's wall time, or zero if it has not finished.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.CreatedAt)
}

// Store is a run-metadata store backed by SQLite.
type Store struct {
	db           *sql.DB
	queryTimeout time.Duration
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	experiment  TEXT NOT NULL,
	config      TEXT NOT NULL,
	status      TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL,
	finished_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment);
`

// Open opens (and if needed initializes) a run store at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to run database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize run database: %w", err)
	}

	return &Store{db: db, queryTimeout: 30 * time.Second}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a new pending run for a resolved config and returns it.
func (s *Store) Record(cfg *config.Config) (*Run, error) {
	doc, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	run := &Run{
		ID:         uuid.NewString(),
		Experiment: cfg.ExpName,
		ConfigJSON: string(doc),
		Status:     StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, experiment, config, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Experiment, run.ConfigJSON, run.Status, run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}
	return run, nil
}

// Finish marks a run finished (or failed) and stamps its end time.
func (s *Store) Finish(id string, failed bool) error {
	status := StatusFinished
	if failed {
		status = StatusFailed
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

// Get returns one run by id.
func (s *Store) Get(id string) (*Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, experiment, config, status, created_at, finished_at FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// List returns runs ordered newest first, optionally filtered by experiment
// name. A limit of 0 means no limit.
func (s *Store) List(experiment string, limit int) ([]*Run, error) {
	query := `SELECT id, experiment, config, status, created_at, finished_at FROM runs`
	var args []interface{}
	if experiment != "" {
		query += ` WHERE experiment = ?`
		args = append(args, experiment)
	}
	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Query evaluates a gjson path against a run's stored config JSON, e.g.
// "num_epochs" or "metric_types.0".
func (s *Store) Query(id, path string) (string, error) {
	run, err := s.Get(id)
	if err != nil {
		return "", err
	}
	result := gjson.Get(run.ConfigJSON, path)
	if !result.Exists() {
		return "", fmt.Errorf("no value at path %q in run %s", path, id)
	}
	return result.String(), nil
}

// Durations returns the wall times of all finished runs, optionally
// filtered by experiment.
func (s *Store) Durations(experiment string) ([]time.Duration, error) {
	runs, err := s.List(experiment, 0)
	if err != nil {
		return nil, err
	}
	var out []time.Duration
	for _, run := range runs {
		if run.Status == StatusFinished && run.FinishedAt != nil {
			out = append(out, run.Duration())
		}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var finished sql.NullTime
	if err := row.Scan(&run.ID, &run.Experiment, &run.ConfigJSON, &run.Status,
		&run.CreatedAt, &finished); err != nil {
		return nil, err
	}
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
