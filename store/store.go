// SPDX-License-Identifier: MIT

// Package store persists resolved mixtures and interval fluxes to SQLite.
//
// Every run gets a fresh UUID; all rows written by the run carry it, so a
// database can accumulate many runs. Tables:
//
//	Runs      (RunId, Created [unix ns], Problem, ElementLibrary, MaterialLibrary)
//	Mixtures  (RunId, Mixture, VolumeFraction, TotalDensity)
//	Isotopes  (RunId, Mixture, Component, Label, Density)
//	Fluxes    (RunId, Interval, Flux, Grp, Value)
//
// A run is written in a single transaction.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/nucprep/composition"
)

var schema = []string{
	"CREATE TABLE IF NOT EXISTS Runs (RunId TEXT PRIMARY KEY, Created INTEGER, Problem TEXT, ElementLibrary TEXT, MaterialLibrary TEXT);",
	"CREATE TABLE IF NOT EXISTS Mixtures (RunId TEXT, Mixture TEXT, VolumeFraction REAL, TotalDensity REAL);",
	"CREATE TABLE IF NOT EXISTS Isotopes (RunId TEXT, Mixture TEXT, Component INTEGER, Label TEXT, Density REAL);",
	"CREATE TABLE IF NOT EXISTS Fluxes (RunId TEXT, Interval TEXT, Flux INTEGER, Grp INTEGER, Value REAL);",
	"CREATE INDEX IF NOT EXISTS isotopes_run ON Isotopes (RunId, Mixture);",
	"CREATE INDEX IF NOT EXISTS fluxes_run ON Fluxes (RunId, Interval, Flux);",
}

// ErrNoRun is returned when a run id is not present.
var ErrNoRun = errors.New("store: no such run")

// Store wraps a SQLite database.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens or creates the database at path and ensures the schema.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	for _, q := range schema {
		if _, err = db.ExecContext(ctx, q); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: schema: %w", err)
		}
	}
	logger.Debug("opened result database", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Run describes one resolution run.
type Run struct {
	ID              uuid.UUID
	Created         time.Time
	Problem         string
	ElementLibrary  string
	MaterialLibrary string
}

// NewRun returns a Run with a fresh id stamped now.
func NewRun(problem, elementLibrary, materialLibrary string) Run {
	return Run{
		ID:              uuid.New(),
		Created:         time.Now().UTC(),
		Problem:         problem,
		ElementLibrary:  elementLibrary,
		MaterialLibrary: materialLibrary,
	}
}

// Result is the expansion of one mixture.
type Result struct {
	Mixture  *composition.Mixture
	Isotopes composition.IsotopeList
}

// FluxSource exposes the stored interval spectra.
// *volume.Intervals satisfies it.
type FluxSource interface {
	Count() int
	Name(i int) string
	NumFluxes(i int) int
	Spectrum(i, k int) ([]float64, error)
}

// Save writes run, its mixture results and, when fluxes is non-nil, every
// stored spectrum, in one transaction.
func (s *Store) Save(ctx context.Context, run Run, results []Result, fluxes FluxSource) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id := run.ID.String()
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO Runs VALUES (?,?,?,?,?);",
		id, run.Created.UnixNano(), run.Problem, run.ElementLibrary, run.MaterialLibrary); err != nil {
		return fmt.Errorf("store: insert run: %w", err)
	}

	mixStmt, err := tx.PrepareContext(ctx, "INSERT INTO Mixtures VALUES (?,?,?,?);")
	if err != nil {
		return err
	}
	defer mixStmt.Close()
	isoStmt, err := tx.PrepareContext(ctx, "INSERT INTO Isotopes VALUES (?,?,?,?,?);")
	if err != nil {
		return err
	}
	defer isoStmt.Close()

	for _, r := range results {
		m := r.Mixture
		if _, err = mixStmt.ExecContext(ctx, id, m.Name, m.VolumeFraction(), m.TotalDensity()); err != nil {
			return fmt.Errorf("store: insert mixture %s: %w", m.Name, err)
		}
		for _, iso := range r.Isotopes {
			if _, err = isoStmt.ExecContext(ctx, id, m.Name, iso.Component, iso.Label, iso.Density); err != nil {
				return fmt.Errorf("store: insert isotope %s: %w", iso.Label, err)
			}
		}
	}

	var nflux int
	if fluxes != nil {
		if nflux, err = saveFluxes(ctx, tx, id, fluxes); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	s.logger.Info("saved run",
		zap.String("run", id), zap.Int("mixtures", len(results)), zap.Int("flux_values", nflux))
	return nil
}

func saveFluxes(ctx context.Context, tx *sql.Tx, id string, fluxes FluxSource) (int, error) {
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO Fluxes VALUES (?,?,?,?,?);")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	n := 0
	for i := 0; i < fluxes.Count(); i++ {
		for k := 0; k < fluxes.NumFluxes(i); k++ {
			values, err := fluxes.Spectrum(i, k)
			if err != nil {
				return n, err
			}
			for g, v := range values {
				if _, err = stmt.ExecContext(ctx, id, fluxes.Name(i), k, g, v); err != nil {
					return n, fmt.Errorf("store: insert flux: %w", err)
				}
				n++
			}
		}
	}
	return n, nil
}

// IsotopeRow is one stored isotope density.
type IsotopeRow struct {
	Mixture   string
	Component int
	Label     string
	Density   float64
}

// Isotopes returns the isotopes saved for run, ordered by mixture then
// insertion.
func (s *Store) Isotopes(ctx context.Context, run uuid.UUID) ([]IsotopeRow, error) {
	if err := s.hasRun(ctx, run); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT Mixture, Component, Label, Density FROM Isotopes WHERE RunId = ? ORDER BY Mixture, rowid;",
		run.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IsotopeRow
	for rows.Next() {
		var r IsotopeRow
		if err = rows.Scan(&r.Mixture, &r.Component, &r.Label, &r.Density); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Spectrum returns flux k of the named interval for run, ordered by group.
func (s *Store) Spectrum(ctx context.Context, run uuid.UUID, interval string, k int) ([]float64, error) {
	if err := s.hasRun(ctx, run); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT Value FROM Fluxes WHERE RunId = ? AND Interval = ? AND Flux = ? ORDER BY Grp;",
		run.String(), interval, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var v float64
		if err = rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Runs returns every stored run, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT RunId, Created, Problem, ElementLibrary, MaterialLibrary FROM Runs ORDER BY Created, rowid;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r     Run
			id    string
			stamp int64
		)
		if err = rows.Scan(&id, &stamp, &r.Problem, &r.ElementLibrary, &r.MaterialLibrary); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("store: run id %q: %w", id, err)
		}
		r.Created = time.Unix(0, stamp).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) hasRun(ctx context.Context, run uuid.UUID) error {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE RunId = ?;", run.String()).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNoRun, run)
	}
	return nil
}
