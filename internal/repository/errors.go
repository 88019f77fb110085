package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

func mapScanErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
