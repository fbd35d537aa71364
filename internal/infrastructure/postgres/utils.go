package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/taller-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapWrite traduce violaciones de unicidad a domain.ErrDuplicate.
func wrapWrite(op, what string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, what)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// expectOne comprueba que un UPDATE tocó exactamente una fila.
func expectOne(tag pgconn.CommandTag, what, id string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
	}
	return nil
}

// noRows (nil, nil) para pgx.ErrNoRows; cualquier otro error se envuelve.
func noRows[T any](v *T, err error, op string) (*T, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}
