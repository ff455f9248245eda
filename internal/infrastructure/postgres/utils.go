package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-ledger/internal/domain"
)

const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// classify traduce un error del driver a la taxonomía de dominio:
// serialización y deadlock -> ErrConcurrentUpdate, único -> ErrDuplicate, CHECK -> ErrInvalidInput,
// cualquier otro error del servidor se envuelve tal cual y los errores de red o
// conexión (sin código SQLSTATE) -> ErrPersistence.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrConcurrentUpdate, err)
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
		case codeCheckViolation:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if errors.Is(err, domain.ErrConcurrentUpdate) || errors.Is(err, domain.ErrDuplicate) || errors.Is(err, domain.ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

// nullIfEmpty mapea "" a NULL para columnas opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
