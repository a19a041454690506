package ports

import (
	"context"

	"gradplus/internal/domain"
)

// LookupJobRepository supports creating, claiming and finishing lookup jobs.
type LookupJobRepository interface {
	CreateJob(ctx context.Context, job domain.LookupJob) error
	GetJob(ctx context.Context, jobID string) (job domain.LookupJob, found bool, err error)
	ClaimNext(ctx context.Context) (job domain.LookupJob, found bool, err error)
	// CreateStartedJob creates a job directly in the running state.
	CreateStartedJob(ctx context.Context, job domain.LookupJob) (domain.LookupJob, error)
	MarkCompleted(ctx context.Context, jobID string, oib string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
}
