package lookuprunner

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gradplus/internal/domain"
	"gradplus/internal/logging"
	"gradplus/internal/ports"
)

// Processor performs the lookup for a job and returns the OIB found.
type Processor interface {
	Process(ctx context.Context, job domain.LookupJob) (oib string, err error)
}

// SearchProcessor runs jobs through the company search pipeline.
type SearchProcessor struct{ Companies ports.Companies }

func (p SearchProcessor) Process(ctx context.Context, job domain.LookupJob) (string, error) {
	c, err := p.Companies.Search(ctx, job.Term)
	if err != nil {
		return "", err
	}
	return c.NationalID, nil
}

// Options tune the runner. A nil Limiter means no pacing.
type Options struct {
	Concurrency  int
	PollInterval time.Duration
	Limiter      *rate.Limiter
	Logger       *zap.Logger
}

// Run starts worker goroutines that claim queued jobs and process them. It
// returns immediately; workers stop when ctx is cancelled.
func Run(ctx context.Context, repo ports.LookupJobRepository, processor Processor, opts Options) {
	if opts.Concurrency < 1 {
		return
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}
	log := logging.OrNop(opts.Logger)
	jobsCh := make(chan domain.LookupJob, opts.Concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(opts.PollInterval)
		defer ticker.Stop()
		defer close(jobsCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						if ctx.Err() == nil {
							log.Error("claim lookup job", zap.Error(err))
						}
						break
					}
					if !found {
						break
					}
					select {
					case jobsCh <- job:
					case <-ctx.Done():
						if err := repo.MarkFailed(context.WithoutCancel(ctx), job.ID, "shutting down"); err != nil {
							log.Error("release claimed lookup job", zap.String("job", job.ID), zap.Error(err))
						}
						return
					}
				}
			}
		}
	}()

	// workers
	for i := 0; i < opts.Concurrency; i++ {
		go func(idx int) {
			wlog := log.With(zap.Int("worker", idx))
			for job := range jobsCh {
				if err := wait(ctx, opts.Limiter); err != nil {
					_ = repo.MarkFailed(context.WithoutCancel(ctx), job.ID, "shutting down")
					continue
				}
				finish(ctx, repo, processor, job, wlog)
			}
		}(i)
	}
}

// ProcessInline processes a job created with CreateStartedJob synchronously,
// with the same processor logic as the background workers, and returns its
// final state.
func ProcessInline(ctx context.Context, repo ports.LookupJobRepository, processor Processor, job domain.LookupJob, limiter *rate.Limiter, log *zap.Logger) (domain.LookupJob, error) {
	if err := wait(ctx, limiter); err != nil {
		_ = repo.MarkFailed(context.WithoutCancel(ctx), job.ID, err.Error())
		return job, err
	}
	finish(ctx, repo, processor, job, logging.OrNop(log))
	job, _, err := repo.GetJob(context.WithoutCancel(ctx), job.ID)
	return job, err
}

func finish(ctx context.Context, repo ports.LookupJobRepository, processor Processor, job domain.LookupJob, log *zap.Logger) {
	log = log.With(zap.String("job", job.ID), zap.String("term", job.Term))
	oib, err := processor.Process(ctx, job)
	// Job state must be recorded even when the request that drove it is gone.
	ctx = context.WithoutCancel(ctx)
	if err != nil {
		if mErr := repo.MarkFailed(ctx, job.ID, err.Error()); mErr != nil {
			log.Error("mark lookup failed", zap.Error(mErr))
		}
		log.Info("lookup failed", zap.Error(err))
		return
	}
	if err := repo.MarkCompleted(ctx, job.ID, oib); err != nil {
		log.Error("mark lookup completed", zap.Error(err))
		return
	}
	log.Info("lookup completed", zap.String("oib", oib))
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	return limiter.Wait(ctx)
}
