// Package store persists jobs and analysis results in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/analysis"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/records"
)

// createdAtLayout keeps a fixed width so created_at sorts as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a lookup has no row.
var ErrNotFound = errors.New("not found")

// Store is a SQLite database of jobs and analyses. Analyses are insert-only.
type Store struct {
	db *sql.DB
}

var _ analysis.Saver = (*Store)(nil)

// Open opens or creates the database at path and bootstraps the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS jobs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			required_skills TEXT NOT NULL,
			minimum_experience INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			job_id TEXT NOT NULL REFERENCES jobs(id),
			resume_id TEXT NOT NULL,
			candidate_name TEXT,
			coverage_percent REAL NOT NULL,
			band TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_job_id ON analyses(job_id)`,
		`CREATE TRIGGER IF NOT EXISTS analyses_immutable BEFORE UPDATE ON analyses BEGIN
			SELECT RAISE(ABORT, 'analyses are immutable');
		END`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveJob inserts or replaces a job.
func (s *Store) SaveJob(ctx context.Context, job *records.Job) error {
	if job == nil || job.ID == "" {
		return errors.New("job with an id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO jobs (id, title, required_skills, minimum_experience) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title,
			required_skills = excluded.required_skills,
			minimum_experience = excluded.minimum_experience`,
		job.ID, job.Title, job.RequiredSkills, job.MinimumExperience,
	)
	if err != nil {
		return fmt.Errorf("saving job %q: %w", job.ID, err)
	}
	return nil
}

// GetJob returns the job with id or ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id string) (*records.Job, error) {
	var job records.Job
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, required_skills, minimum_experience FROM jobs WHERE id = ?`, id,
	).Scan(&job.ID, &job.Title, &job.RequiredSkills, &job.MinimumExperience)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("job %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading job %q: %w", id, err)
	}
	return &job, nil
}

// SaveAnalysis inserts a result. Its job must be stored first; saving the
// same result twice fails.
func (s *Store) SaveAnalysis(ctx context.Context, r *analysis.Result) error {
	if r == nil || r.ID == "" {
		return errors.New("analysis with an id is required")
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding analysis: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, job_id, resume_id, candidate_name, coverage_percent, band, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.JobID, r.ResumeID, r.CandidateName, r.CoveragePercent, string(r.Band),
		string(payload), r.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("saving analysis %q: %w", r.ID, err)
	}
	return nil
}

// GetAnalysis returns the analysis with id or ErrNotFound.
func (s *Store) GetAnalysis(ctx context.Context, id string) (*analysis.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM analyses WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading analysis %q: %w", id, err)
	}
	return decodeResult(payload)
}

// ListAnalysesByJob returns the analyses of a job, best coverage first and
// newest first among equals.
func (s *Store) ListAnalysesByJob(ctx context.Context, jobID string) ([]*analysis.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM analyses WHERE job_id = ? ORDER BY coverage_percent DESC, created_at DESC`, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	defer rows.Close()

	results := make([]*analysis.Result, 0)
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning analysis: %w", err)
		}
		r, err := decodeResult(payload)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return results, nil
}

func decodeResult(payload string) (*analysis.Result, error) {
	var r analysis.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decoding analysis: %w", err)
	}
	return &r, nil
}
