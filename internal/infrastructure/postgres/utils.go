package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si el error es 42P01 (tabla inexistente, migración sin aplicar).
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01"
	}
	return false
}
