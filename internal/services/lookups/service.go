package lookups

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
	"gradplus/internal/ports"
)

var (
	ErrEmptyTerm = eris.New("lookup term is empty")
	ErrNotFound  = eris.New("lookup job not found")
)

// Service queues company lookups for the background runner.
type Service struct {
	jobs ports.LookupJobRepository
}

func New(jobs ports.LookupJobRepository) *Service {
	return &Service{jobs: jobs}
}

// Enqueue creates a queued job for the background runner.
func (s *Service) Enqueue(ctx context.Context, term string) (string, error) {
	job, err := newJob(term)
	if err != nil {
		return "", err
	}
	if err := s.jobs.CreateJob(ctx, job); err != nil {
		return "", eris.Wrap(err, "create lookup job")
	}
	return job.ID, nil
}

// Start creates a job that is already running, for callers that process it
// themselves; the background runner never claims it.
func (s *Service) Start(ctx context.Context, term string) (domain.LookupJob, error) {
	job, err := newJob(term)
	if err != nil {
		return job, err
	}
	started, err := s.jobs.CreateStartedJob(ctx, job)
	if err != nil {
		return started, eris.Wrap(err, "create started lookup job")
	}
	return started, nil
}

func newJob(term string) (domain.LookupJob, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return domain.LookupJob{}, ErrEmptyTerm
	}
	return domain.LookupJob{ID: uuid.NewString(), Term: term, Status: domain.JobQueued}, nil
}

func (s *Service) Status(ctx context.Context, jobID string) (domain.LookupJob, error) {
	if _, err := uuid.Parse(jobID); err != nil {
		return domain.LookupJob{}, ErrNotFound
	}
	job, found, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return domain.LookupJob{}, eris.Wrapf(err, "get lookup job %s", jobID)
	}
	if !found {
		return domain.LookupJob{}, ErrNotFound
	}
	return job, nil
}
