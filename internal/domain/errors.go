package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrMaterialNotFound = fmt.Errorf("material: %w", ErrNotFound)
	ErrLocationNotFound = fmt.Errorf("ubicación: %w", ErrNotFound)
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrConflict         = errors.New("conflicto con el estado actual")
	// ErrConcurrentUpdate una transacción perdió la carrera sobre una fila de saldo
	// (serialización o deadlock). El caso de uso la reintenta.
	ErrConcurrentUpdate = fmt.Errorf("actualización concurrente: %w", ErrConflict)
	// ErrPersistence almacenamiento no disponible; reintentable por el cliente.
	ErrPersistence = errors.New("almacenamiento no disponible")
)

// ValidationError describe un campo inválido de una solicitud. Es ErrInvalidInput para errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un *ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
