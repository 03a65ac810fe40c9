package postgres

import (
	"errors"

	"charide/internal/general/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// mapErr translates pgx errors into the service error taxonomy. Missing rows
// become ErrNotFound, unique violations ErrConflict, everything else ErrStore.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errs.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errs.Conflictf("already exists: %s", pgErr.ConstraintName)
	}
	return errs.Storef(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrNotFound)
}
