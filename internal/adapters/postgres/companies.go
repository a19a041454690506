package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
)

func (db *DB) FindByOIB(ctx context.Context, oib string) (domain.Company, bool, error) {
	var c domain.Company
	err := db.Pool.QueryRow(ctx, `SELECT data FROM companies WHERE oib = $1`, oib).Scan(&c)
	if errors.Is(err, pgx.ErrNoRows) {
		return c, false, nil
	}
	if err != nil {
		return c, false, eris.Wrapf(err, "select company %s", oib)
	}
	return c, true, nil
}

// Insert keeps the first record for an OIB; the primary key makes concurrent
// duplicate inserts collapse to one row.
func (db *DB) Insert(ctx context.Context, c domain.Company) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO companies (oib, name, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (oib) DO NOTHING
	`, c.NationalID, c.Name, c)
	if err != nil {
		return eris.Wrapf(err, "insert company %s", c.NationalID)
	}
	return nil
}
