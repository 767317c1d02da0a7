// Package sqlite stores computed test years in a SQLite database so runs
// can be compared without re-reading the exported files.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anssilaukkarinen/bfty/internal/log"
	"github.com/anssilaukkarinen/bfty/internal/timegrid"
	"github.com/anssilaukkarinen/bfty/internal/types"
	"github.com/anssilaukkarinen/bfty/pkg/migrate"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNotFound is returned when a run or series does not exist.
var ErrNotFound = errors.New("sqlite: not found")

// Run is a row of the runs table.
type Run struct {
	ID            string
	StartedAt     time.Time
	FinishedAt    time.Time
	Version       string
	ReferenceYear int
	Datasets      int
}

// Store is a results database.
type Store struct {
	db   *sql.DB
	grid *timegrid.Grid
}

// Open opens or creates the database at path and brings its schema up to
// date.
func Open(path string, grid *timegrid.Grid) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	m := migrate.NewMigrator(db, migrate.NewFSProvider(migrations, "migrations", ""), log.Infof)
	if err := m.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s: %w", path, err)
	}

	return &Store{db: db, grid: grid}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// StartRun records the start of a run.
func (s *Store) StartRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, version, reference_year) VALUES (?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC(), r.Version, s.grid.Year)
	return err
}

// FinishRun stamps the end time and dataset count of a run.
func (s *Store) FinishRun(ctx context.Context, id string, finished time.Time, datasets int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, datasets = ? WHERE id = ?`,
		finished.UTC(), datasets, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	return nil
}

// SaveYear stores the dataset row and every exported column of a year in
// one transaction.
func (s *Store) SaveYear(ctx context.Context, r *types.YearResult, columns map[string][]float64) error {
	if r.Series == nil || r.Pressure == nil || r.Rain == nil {
		return fmt.Errorf("sqlite: %s is incomplete", r.Dataset)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	site := r.Series.Site
	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (run_id, name, title, site, latitude, longitude, pressure_column, rain_column, annual_rain)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Dataset, r.Series.Title, site.Name, site.Latitude, site.Longitude,
		r.Pressure.Name, r.Rain.Name, r.Rain.AnnualTotal)
	if err != nil {
		return fmt.Errorf("failed to insert dataset %s: %w", r.Dataset, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO series (run_id, dataset, name, hour, time, value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	times := s.grid.Times()
	for name, values := range columns {
		for i, v := range values {
			if _, err := stmt.ExecContext(ctx, r.RunID, r.Dataset, name, i, times[i], v); err != nil {
				return fmt.Errorf("failed to insert %s/%s hour %d: %w", r.Dataset, name, i, err)
			}
		}
	}

	return tx.Commit()
}

// GetRun returns a stored run.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, version, reference_year, datasets FROM runs WHERE id = ?`, id).
		Scan(&r.ID, &r.StartedAt, &finished, &r.Version, &r.ReferenceYear, &r.Datasets)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	r.FinishedAt = finished.Time
	return &r, nil
}

// Series reads one stored column back in hour order.
func (s *Store) Series(ctx context.Context, runID, dataset, name string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM series WHERE run_id = ? AND dataset = ? AND name = ? ORDER BY hour`,
		runID, dataset, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s/%s in run %s", ErrNotFound, dataset, name, runID)
	}
	return out, nil
}

// AnnualRain returns the stored annual wind-driven rain of a dataset.
func (s *Store) AnnualRain(ctx context.Context, runID, dataset string) (float64, error) {
	var v float64
	err := s.db.QueryRowContext(ctx,
		`SELECT annual_rain FROM datasets WHERE run_id = ? AND name = ?`, runID, dataset).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s in run %s", ErrNotFound, dataset, runID)
	}
	return v, err
}
