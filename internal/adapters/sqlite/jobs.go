package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
)

var ErrJobNotFound = eris.New("lookup job not found")

const jobColumns = `id, term, status, oib, reason, attempts`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (domain.LookupJob, error) {
	var j domain.LookupJob
	err := row.Scan(&j.ID, &j.Term, &j.Status, &j.OIB, &j.Reason, &j.Attempts)
	return j, err
}

func (db *DB) CreateJob(ctx context.Context, job domain.LookupJob) error {
	_, err := db.SQL.ExecContext(ctx,
		`INSERT INTO lookup_jobs (id, term, status) VALUES (?, ?, 'queued')`, job.ID, job.Term)
	if err != nil {
		return eris.Wrapf(err, "create lookup job %s", job.ID)
	}
	return nil
}

func (db *DB) GetJob(ctx context.Context, jobID string) (domain.LookupJob, bool, error) {
	job, err := scanJob(db.SQL.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM lookup_jobs WHERE id = ?`, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, eris.Wrapf(err, "get lookup job %s", jobID)
	}
	return job, true, nil
}

// ClaimNext moves the oldest queued job to running in one statement; the
// single connection serialises concurrent claimers.
func (db *DB) ClaimNext(ctx context.Context) (domain.LookupJob, bool, error) {
	job, err := scanJob(db.SQL.QueryRowContext(ctx, `
		UPDATE lookup_jobs
		SET status = 'running', started_at = CURRENT_TIMESTAMP, attempts = attempts + 1
		WHERE id = (
			SELECT id FROM lookup_jobs
			WHERE status = 'queued'
			ORDER BY queued_at, rowid
			LIMIT 1
		)
		RETURNING `+jobColumns))
	if errors.Is(err, sql.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, eris.Wrap(err, "claim lookup job")
	}
	return job, true, nil
}

// CreateStartedJob inserts a job that is already running, so no claimer can
// take it before the caller processes it.
func (db *DB) CreateStartedJob(ctx context.Context, job domain.LookupJob) (domain.LookupJob, error) {
	started, err := scanJob(db.SQL.QueryRowContext(ctx, `
		INSERT INTO lookup_jobs (id, term, status, attempts, started_at)
		VALUES (?, ?, 'running', 1, CURRENT_TIMESTAMP)
		RETURNING `+jobColumns, job.ID, job.Term))
	if err != nil {
		return started, eris.Wrapf(err, "create started lookup job %s", job.ID)
	}
	return started, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string, oib string) error {
	return db.finish(ctx, jobID, `UPDATE lookup_jobs SET status = 'completed', oib = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`, oib)
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return db.finish(ctx, jobID, `UPDATE lookup_jobs SET status = 'failed', reason = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`, reason)
}

func (db *DB) finish(ctx context.Context, jobID, query, value string) error {
	res, err := db.SQL.ExecContext(ctx, query, value, jobID)
	if err != nil {
		return eris.Wrapf(err, "finish lookup job %s", jobID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return eris.Wrapf(ErrJobNotFound, "job %s", jobID)
	}
	return nil
}
