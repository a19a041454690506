// Package memory is an in-process store for development and tests. Data is
// lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
)

var ErrJobNotFound = eris.New("lookup job not found")

type jobRow struct {
	job domain.LookupJob
	seq int64
}

// Store implements ports.CompanyStore and ports.LookupJobRepository.
type Store struct {
	mu        sync.Mutex
	companies map[string]domain.Company
	jobs      map[string]*jobRow
	seq       int64
}

func New() *Store {
	return &Store{
		companies: map[string]domain.Company{},
		jobs:      map[string]*jobRow{},
	}
}

func (s *Store) FindByOIB(_ context.Context, oib string) (domain.Company, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.companies[oib]
	return c, ok, nil
}

// Insert keeps the first record stored for an OIB.
func (s *Store) Insert(_ context.Context, c domain.Company) error {
	if c.NationalID == "" {
		return eris.New("company has no oib")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.companies[c.NationalID]; !ok {
		s.companies[c.NationalID] = c
	}
	return nil
}

// Len returns the number of cached companies.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.companies)
}

func (s *Store) CreateJob(_ context.Context, job domain.LookupJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return eris.Errorf("lookup job %s already exists", job.ID)
	}
	job.Status = domain.JobQueued
	s.seq++
	s.jobs[job.ID] = &jobRow{job: job, seq: s.seq}
	return nil
}

func (s *Store) GetJob(_ context.Context, jobID string) (domain.LookupJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.jobs[jobID]
	if !ok {
		return domain.LookupJob{}, false, nil
	}
	return r.job, true, nil
}

// ClaimNext moves the oldest queued job to running.
func (s *Store) ClaimNext(_ context.Context) (domain.LookupJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var queued []*jobRow
	for _, r := range s.jobs {
		if r.job.Status == domain.JobQueued {
			queued = append(queued, r)
		}
	}
	if len(queued) == 0 {
		return domain.LookupJob{}, false, nil
	}
	sort.Slice(queued, func(i, j int) bool { return queued[i].seq < queued[j].seq })
	r := queued[0]
	r.job.Status = domain.JobRunning
	r.job.Attempts++
	return r.job, true, nil
}

// CreateStartedJob stores a job that is already running.
func (s *Store) CreateStartedJob(_ context.Context, job domain.LookupJob) (domain.LookupJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		return domain.LookupJob{}, eris.Errorf("lookup job %s already exists", job.ID)
	}
	job.Status = domain.JobRunning
	job.Attempts = 1
	s.seq++
	s.jobs[job.ID] = &jobRow{job: job, seq: s.seq}
	return job, nil
}

func (s *Store) MarkCompleted(_ context.Context, jobID string, oib string) error {
	return s.finish(jobID, func(j *domain.LookupJob) {
		j.Status = domain.JobCompleted
		j.OIB = oib
	})
}

func (s *Store) MarkFailed(_ context.Context, jobID string, reason string) error {
	return s.finish(jobID, func(j *domain.LookupJob) {
		j.Status = domain.JobFailed
		j.Reason = reason
	})
}

func (s *Store) finish(jobID string, set func(*domain.LookupJob)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.jobs[jobID]
	if !ok {
		return eris.Wrapf(ErrJobNotFound, "job %s", jobID)
	}
	set(&r.job)
	return nil
}
