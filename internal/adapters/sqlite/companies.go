package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rotisserie/eris"

	"gradplus/internal/domain"
)

func (db *DB) FindByOIB(ctx context.Context, oib string) (domain.Company, bool, error) {
	var c domain.Company
	var data string
	err := db.SQL.QueryRowContext(ctx, `SELECT data FROM companies WHERE oib = ?`, oib).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return c, false, nil
	}
	if err != nil {
		return c, false, eris.Wrapf(err, "select company %s", oib)
	}
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return c, false, eris.Wrapf(err, "decode company %s", oib)
	}
	return c, true, nil
}

// Insert ignores a second record for an OIB already stored.
func (db *DB) Insert(ctx context.Context, c domain.Company) error {
	data, err := json.Marshal(c)
	if err != nil {
		return eris.Wrap(err, "encode company")
	}
	_, err = db.SQL.ExecContext(ctx,
		`INSERT OR IGNORE INTO companies (oib, name, data) VALUES (?, ?, ?)`,
		c.NationalID, c.Name, string(data))
	if err != nil {
		return eris.Wrapf(err, "insert company %s", c.NationalID)
	}
	return nil
}
