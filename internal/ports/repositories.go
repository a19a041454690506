package ports

import (
	"context"

	"gradplus/internal/domain"
)

// CompanyStore caches extracted records keyed by OIB. Insert must not
// overwrite an existing record; implementations ignore a duplicate key.
type CompanyStore interface {
	FindByOIB(ctx context.Context, oib string) (c domain.Company, found bool, err error)
	Insert(ctx context.Context, c domain.Company) error
}
