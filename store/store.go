// Package store persists footprint analysis runs in an embedded SQLite
// database so results can be listed and compared later.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gogpu/beamer"
)

// driverName is the database/sql name of the modernc SQLite driver.
const driverName = "sqlite"

// Sentinel errors for store package.
var (
	// ErrNotFound is returned when no run has the requested ID.
	ErrNotFound = errors.New("store: run not found")

	// ErrInvalidID is returned for IDs that are not UUIDs.
	ErrInvalidID = errors.New("store: invalid run id")
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	source      TEXT NOT NULL,
	diameter    REAL NOT NULL,
	incidence   REAL NOT NULL,
	elongation  REAL NOT NULL,
	spot_area   REAL NOT NULL,
	points      INTEGER NOT NULL,
	coverage    REAL NOT NULL,
	offset_x    REAL NOT NULL,
	offset_y    REAL NOT NULL,
	rotation    REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_created_at ON runs(created_at);
CREATE TABLE IF NOT EXISTS run_points (
	run_id TEXT NOT NULL REFERENCES runs(id),
	idx    INTEGER NOT NULL,
	x      REAL NOT NULL,
	y      REAL NOT NULL,
	PRIMARY KEY (run_id, idx)
);
`

// Run is one footprint analysis.
type Run struct {
	ID        string
	CreatedAt time.Time
	Source    string

	Diameter   float64
	Incidence  float64
	Elongation float64
	SpotArea   float64
	Points     int
	Coverage   float64

	OffsetX  float64
	OffsetY  float64
	Rotation float64

	// Centers are the instrument-frame spot centers. Runs leaves them nil.
	Centers beamer.PointSequence
}

// NewRun summarizes a field. ID and CreatedAt are left for SaveRun.
func NewRun(source string, f *beamer.Field) Run {
	p, s := f.Pattern(), f.Spot()
	return Run{
		Source:     source,
		Diameter:   s.Diameter(),
		Incidence:  s.Incidence(),
		Elongation: s.Elongation(),
		SpotArea:   s.Area(),
		Points:     f.Count(),
		Coverage:   f.Coverage(),
		OffsetX:    p.Offset().X,
		OffsetY:    p.Offset().Y,
		Rotation:   p.Rotation(),
		Centers:    f.Centers(),
	}
}

// Store is a handle to the run database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// SQLite serializes writers; one connection avoids busy errors.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	beamer.Logger().Debug("run store opened", "path", path)
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run and its centers in one transaction. A missing ID
// or CreatedAt is filled in; the stored run is returned.
func (s *Store) SaveRun(ctx context.Context, r Run) (Run, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	} else if _, err := uuid.Parse(r.ID); err != nil {
		return Run{}, fmt.Errorf("%w: %q", ErrInvalidID, r.ID)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, created_at, source, diameter, incidence, elongation,
	spot_area, points, coverage, offset_x, offset_y, rotation)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UnixNano(), r.Source, r.Diameter, r.Incidence, r.Elongation,
		r.SpotArea, r.Points, r.Coverage, r.OffsetX, r.OffsetY, r.Rotation)
	if err != nil {
		return Run{}, fmt.Errorf("store: insert run: %w", err)
	}

	if len(r.Centers) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_points (run_id, idx, x, y) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return Run{}, fmt.Errorf("store: prepare points: %w", err)
		}
		defer func() {
			_ = stmt.Close()
		}()
		for i, p := range r.Centers {
			if _, err := stmt.ExecContext(ctx, r.ID, i, p.X, p.Y); err != nil {
				return Run{}, fmt.Errorf("store: insert point %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("store: commit: %w", err)
	}
	beamer.Logger().Debug("run saved", "id", r.ID, "points", r.Points)
	return r, nil
}

const runColumns = `id, created_at, source, diameter, incidence, elongation,
	spot_area, points, coverage, offset_x, offset_y, rotation`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		r       Run
		created int64
	)
	err := row.Scan(&r.ID, &created, &r.Source, &r.Diameter, &r.Incidence, &r.Elongation,
		&r.SpotArea, &r.Points, &r.Coverage, &r.OffsetX, &r.OffsetY, &r.Rotation)
	if err != nil {
		return Run{}, err
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	return r, nil
}

// Run returns the run with the given ID, including its centers.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	r, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("store: query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT x, y FROM run_points WHERE run_id = ? ORDER BY idx`, id)
	if err != nil {
		return Run{}, fmt.Errorf("store: query points: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()
	r.Centers = make(beamer.PointSequence, 0, r.Points)
	for rows.Next() {
		var p beamer.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return Run{}, fmt.Errorf("store: scan point: %w", err)
		}
		r.Centers = append(r.Centers, p)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("store: query points: %w", err)
	}
	return r, nil
}

// Runs lists all runs, newest first. Centers are not loaded.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan run: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: query runs: %w", err)
	}
	return out, nil
}

// DeleteRun removes a run and its centers.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_points WHERE run_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete points: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}
