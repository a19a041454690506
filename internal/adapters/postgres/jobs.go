package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
)

var ErrJobNotFound = eris.New("lookup job not found")

const jobColumns = `id::text, term, status, oib, reason, attempts`

func (db *DB) CreateJob(ctx context.Context, job domain.LookupJob) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO lookup_jobs (id, term, status) VALUES ($1, $2, 'queued')
	`, job.ID, job.Term)
	if err != nil {
		return eris.Wrapf(err, "create lookup job %s", job.ID)
	}
	return nil
}

func (db *DB) GetJob(ctx context.Context, jobID string) (job domain.LookupJob, found bool, err error) {
	err = db.Pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM lookup_jobs WHERE id = $1`, jobID).
		Scan(&job.ID, &job.Term, &job.Status, &job.OIB, &job.Reason, &job.Attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, eris.Wrapf(err, "get lookup job %s", jobID)
	}
	return job, true, nil
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it running.
func (db *DB) ClaimNext(ctx context.Context) (job domain.LookupJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, eris.Wrap(err, "begin claim")
	}
	defer func() {
		if err != nil || !found {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var id string
	err = tx.QueryRow(ctx, `
		SELECT id::text FROM lookup_jobs
		WHERE status = 'queued'
		ORDER BY queued_at
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return job, false, nil
	}
	if err != nil {
		return job, false, eris.Wrap(err, "select queued job")
	}

	err = tx.QueryRow(ctx, `
		UPDATE lookup_jobs SET status = 'running', started_at = now(), attempts = attempts + 1
		WHERE id = $1
		RETURNING `+jobColumns, id).
		Scan(&job.ID, &job.Term, &job.Status, &job.OIB, &job.Reason, &job.Attempts)
	if err != nil {
		return job, false, eris.Wrapf(err, "mark job %s running", id)
	}
	return job, true, nil
}

// CreateStartedJob inserts a job that is already running, so ClaimNext never
// sees it queued.
func (db *DB) CreateStartedJob(ctx context.Context, job domain.LookupJob) (started domain.LookupJob, err error) {
	err = db.Pool.QueryRow(ctx, `
		INSERT INTO lookup_jobs (id, term, status, attempts, started_at)
		VALUES ($1, $2, 'running', 1, now())
		RETURNING `+jobColumns, job.ID, job.Term).
		Scan(&started.ID, &started.Term, &started.Status, &started.OIB, &started.Reason, &started.Attempts)
	if err != nil {
		return started, eris.Wrapf(err, "create started lookup job %s", job.ID)
	}
	return started, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string, oib string) error {
	return db.finish(ctx, jobID, `
		UPDATE lookup_jobs SET status = 'completed', oib = $2, finished_at = now() WHERE id = $1
	`, oib)
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	return db.finish(ctx, jobID, `
		UPDATE lookup_jobs SET status = 'failed', reason = $2, finished_at = now() WHERE id = $1
	`, reason)
}

func (db *DB) finish(ctx context.Context, jobID, query, value string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	tag, err := db.Pool.Exec(ctx, query, jobID, value)
	if err != nil {
		return eris.Wrapf(err, "finish lookup job %s", jobID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrJobNotFound, "job %s", jobID)
	}
	return nil
}
