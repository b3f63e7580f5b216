// Package history persists per-company compilation runs in SQLite so
// successive assessments can be compared. The store keeps one row per run
// and derives a cross-run trend from the previous overall health score.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Run is one recorded compilation.
type Run struct {
	ID               int64
	AssessmentRunID  string
	CompanyProfileID string
	OverallScore     float64
	Descriptor       string
	Trajectory       string
	Source           string
	IDMPath          string
	CreatedAt        string
}

// Trend compares the current run against the company's previous one.
type Trend struct {
	Previous float64
	Current  float64
	Delta    float64
	Label    string // IMPROVING / DECLINING / SAME / FIRST_RUN
}

// Store wraps the runs database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the runs database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("history: create data dir: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			assessment_run_id  TEXT    NOT NULL,
			company_profile_id TEXT    NOT NULL,
			overall_score      REAL    NOT NULL,
			descriptor         TEXT    NOT NULL,
			trajectory         TEXT    NOT NULL,
			source             TEXT    NOT NULL,
			idm_path           TEXT    NOT NULL,
			created_at         TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE INDEX IF NOT EXISTS idx_runs_company ON runs(company_profile_id, id DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record inserts a run row and returns the trend against the company's
// previous run. The first run for a company is labelled FIRST_RUN.
func (s *Store) Record(run Run) (Trend, error) {
	prev, err := s.Previous(run.CompanyProfileID)
	if err != nil {
		return Trend{}, err
	}

	createdAt := run.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err = s.db.Exec(`
		INSERT INTO runs (assessment_run_id, company_profile_id, overall_score,
			descriptor, trajectory, source, idm_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.AssessmentRunID, run.CompanyProfileID, run.OverallScore,
		run.Descriptor, run.Trajectory, run.Source, run.IDMPath, createdAt)
	if err != nil {
		return Trend{}, fmt.Errorf("history: insert run: %w", err)
	}

	tr := Trend{Current: run.OverallScore, Label: "FIRST_RUN"}
	if prev == nil {
		return tr, nil
	}
	tr.Previous = prev.OverallScore
	tr.Delta = run.OverallScore - prev.OverallScore
	switch {
	case tr.Delta > 0:
		tr.Label = "IMPROVING"
	case tr.Delta < 0:
		tr.Label = "DECLINING"
	default:
		tr.Label = "SAME"
	}
	return tr, nil
}

// Previous returns the most recent run for a company, or nil when none
// has been recorded.
func (s *Store) Previous(companyProfileID string) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, assessment_run_id, company_profile_id, overall_score,
			descriptor, trajectory, source, idm_path, created_at
		FROM runs
		WHERE company_profile_id = ?
		ORDER BY id DESC
		LIMIT 1`, companyProfileID)

	var r Run
	err := row.Scan(&r.ID, &r.AssessmentRunID, &r.CompanyProfileID, &r.OverallScore,
		&r.Descriptor, &r.Trajectory, &r.Source, &r.IDMPath, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: previous run: %w", err)
	}
	return &r, nil
}

// Runs returns the most recent limit runs for a company, newest first.
func (s *Store) Runs(companyProfileID string, limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, assessment_run_id, company_profile_id, overall_score,
			descriptor, trajectory, source, idm_path, created_at
		FROM runs
		WHERE company_profile_id = ?
		ORDER BY id DESC
		LIMIT ?`, companyProfileID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.AssessmentRunID, &r.CompanyProfileID, &r.OverallScore,
			&r.Descriptor, &r.Trajectory, &r.Source, &r.IDMPath, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
