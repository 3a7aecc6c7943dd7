// To handle all database interactions. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/libertyfm/libertyfm/internal/models"
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ImportRun is one persisted import summary. The history exists for
// inspection only; nothing in the import logic reads it back.
type ImportRun struct {
	ID         int64                 `json:"id"`
	CreatedAt  time.Time             `json:"created_at"`
	SourceRoot string                `json:"source_root"`
	AudioDir   string                `json:"audio_dir"`
	Tool       string                `json:"tool"`
	Target     string                `json:"target"`
	Expected   int                   `json:"expected"`
	Found      int                   `json:"found"`
	Copied     int                   `json:"copied"`
	Converted  int                   `json:"converted"`
	Missing    []models.Station      `json:"missing"`
	Failures   []models.Station      `json:"failures"`
	Details    []models.ImportRecord `json:"details"`
}

// SaveRun persists a completed summary and returns the new row id.
func (s *Store) SaveRun(summary *models.Summary) (int64, error) {
	missing, err := json.Marshal(summary.Missing)
	if err != nil {
		return 0, fmt.Errorf("could not encode missing stations: %w", err)
	}
	failures, err := json.Marshal(summary.Failures)
	if err != nil {
		return 0, fmt.Errorf("could not encode failures: %w", err)
	}
	details, err := json.Marshal(summary.Details)
	if err != nil {
		return 0, fmt.Errorf("could not encode details: %w", err)
	}

	res, err := s.db.Exec(`
		INSERT INTO import_runs (created_at, source_root, audio_dir, tool, target, expected, found, copied, converted, missing, failures, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), summary.SourceRoot, summary.AudioDir, summary.Tool, summary.Target,
		summary.Expected, summary.Found, summary.Copied, summary.Converted,
		string(missing), string(failures), string(details),
	)
	if err != nil {
		return 0, fmt.Errorf("could not insert import run: %w", err)
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent import runs, newest first.
func (s *Store) ListRuns(limit int) ([]*ImportRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, source_root, audio_dir, tool, target, expected, found, copied, converted, missing, failures, details
		FROM import_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*ImportRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns a single import run by id. sql.ErrNoRows is returned
// unchanged when the id is unknown.
func (s *Store) GetRun(id int64) (*ImportRun, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, source_root, audio_dir, tool, target, expected, found, copied, converted, missing, failures, details
		FROM import_runs WHERE id = ?`, id)
	return scanRun(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*ImportRun, error) {
	var run ImportRun
	var missing, failures, details string
	err := row.Scan(
		&run.ID, &run.CreatedAt, &run.SourceRoot, &run.AudioDir, &run.Tool, &run.Target,
		&run.Expected, &run.Found, &run.Copied, &run.Converted,
		&missing, &failures, &details,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(missing), &run.Missing); err != nil {
		return nil, fmt.Errorf("could not decode missing stations: %w", err)
	}
	if err := json.Unmarshal([]byte(failures), &run.Failures); err != nil {
		return nil, fmt.Errorf("could not decode failures: %w", err)
	}
	if err := json.Unmarshal([]byte(details), &run.Details); err != nil {
		return nil, fmt.Errorf("could not decode details: %w", err)
	}
	return &run, nil
}
