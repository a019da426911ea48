// Package auditstore persists pipeline.Result under a job id, for
// later retrieval by GET /v1/reconcile/:jobId. Grounded on the
// teacher's internal/db/postgres.go: a pgxpool-backed store, a
// schema.sql loaded from disk at InitSchema time, and a single
// transactional upsert per save — renamed and reshaped for this
// domain's job/result pair instead of block-height/heuristics rows.
package auditstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rawblock/cadastral-engine/internal/pipeline"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Store persists reconciliation jobs in PostgreSQL via a pgx
// connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool and verifies it with a ping.
func Connect(connStr string) (*Store, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}
	log.Println("Successfully connected to PostgreSQL for reconciliation audit store")
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema loads and executes schema.sql.
func (s *Store) InitSchema() error {
	schemaBytes, err := os.ReadFile("internal/auditstore/schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema file: %v", err)
	}
	if _, err := s.pool.Exec(context.Background(), string(schemaBytes)); err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}
	log.Println("Reconciliation audit schema initialized")
	return nil
}

// CreatePending records a new job id as pending before the pipeline
// runs, so a concurrent GET sees "in progress" rather than "unknown".
func (s *Store) CreatePending(ctx context.Context, jobID string) error {
	const sql = `
		INSERT INTO reconciliation_jobs (job_id, status)
		VALUES ($1, $2)
		ON CONFLICT (job_id) DO NOTHING;
	`
	_, err := s.pool.Exec(ctx, sql, jobID, StatusPending)
	if err != nil {
		return fmt.Errorf("failed to insert pending job %s: %v", jobID, err)
	}
	return nil
}

// SaveResult upserts the final pipeline.Result for a job id.
func (s *Store) SaveResult(ctx context.Context, jobID string, result pipeline.Result) error {
	status := StatusDone
	var errMsg *string
	if result.Err != nil {
		status = StatusFailed
		msg := result.Err.Error()
		errMsg = &msg
	}

	ops, err := json.Marshal(result.Operations)
	if err != nil {
		return fmt.Errorf("marshal operations for job %s: %w", jobID, err)
	}
	tuples, err := json.Marshal(result.SplitTuples)
	if err != nil {
		return fmt.Errorf("marshal split tuples for job %s: %w", jobID, err)
	}
	placements, err := json.Marshal(result.Placements)
	if err != nil {
		return fmt.Errorf("marshal placements for job %s: %w", jobID, err)
	}
	diagnostics, err := json.Marshal(result.Diagnostics)
	if err != nil {
		return fmt.Errorf("marshal diagnostics for job %s: %w", jobID, err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const sql = `
		INSERT INTO reconciliation_jobs (job_id, status, operations, split_tuples, placements, diagnostics, error_message, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (job_id) DO UPDATE
		SET status = EXCLUDED.status,
		    operations = EXCLUDED.operations,
		    split_tuples = EXCLUDED.split_tuples,
		    placements = EXCLUDED.placements,
		    diagnostics = EXCLUDED.diagnostics,
		    error_message = EXCLUDED.error_message,
		    updated_at = NOW();
	`
	if _, err := tx.Exec(ctx, sql, jobID, status, ops, tuples, placements, diagnostics, errMsg); err != nil {
		return fmt.Errorf("failed to upsert reconciliation job %s: %v", jobID, err)
	}
	return tx.Commit(ctx)
}

// JobRecord is the stored shape returned to GET /v1/reconcile/:jobId.
type JobRecord struct {
	JobID        string          `json:"jobId"`
	Status       string          `json:"status"`
	Operations   json.RawMessage `json:"operations"`
	SplitTuples  json.RawMessage `json:"splitTuples"`
	Placements   json.RawMessage `json:"placements"`
	Diagnostics  json.RawMessage `json:"diagnostics"`
	ErrorMessage *string         `json:"errorMessage,omitempty"`
}

// GetJob fetches a stored job by id. found is false if no row exists.
func (s *Store) GetJob(ctx context.Context, jobID string) (JobRecord, bool, error) {
	const sql = `
		SELECT job_id, status, operations, split_tuples, placements, diagnostics, error_message
		FROM reconciliation_jobs WHERE job_id = $1;
	`
	var rec JobRecord
	err := s.pool.QueryRow(ctx, sql, jobID).Scan(
		&rec.JobID, &rec.Status, &rec.Operations, &rec.SplitTuples, &rec.Placements, &rec.Diagnostics, &rec.ErrorMessage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobRecord{}, false, nil
		}
		return JobRecord{}, false, fmt.Errorf("failed to load job %s: %w", jobID, err)
	}
	return rec, true, nil
}
