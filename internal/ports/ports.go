package ports

import (
	"context"

	"gradplus/internal/domain"
)

// Companies resolves search terms into company records.
type Companies interface {
	Search(ctx context.Context, term string) (*domain.Company, error)
	Get(ctx context.Context, oib string) (*domain.Company, error)
}

// Lookups enqueues and tracks asynchronous company lookups.
type Lookups interface {
	Enqueue(ctx context.Context, term string) (jobID string, err error)
	Start(ctx context.Context, term string) (domain.LookupJob, error)
	Status(ctx context.Context, jobID string) (domain.LookupJob, error)
}

// PageFetcher returns the raw body of a third-party page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Completer is a generic text-completion service.
type Completer interface {
	Complete(ctx context.Context, prompt, systemPrompt string) (string, error)
}
