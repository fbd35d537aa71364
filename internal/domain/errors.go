package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// ErrOrderLocked la orden está pagada y no admite cambios. Es un ErrConflict.
var ErrOrderLocked = fmt.Errorf("%w: la orden está pagada, cambios bloqueados", ErrConflict)

// Validation envuelve ErrInvalidInput con el detalle del campo.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// NotFound envuelve ErrNotFound indicando qué recurso falta.
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// Conflict envuelve ErrConflict con el motivo.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Forbidden envuelve ErrForbidden con el motivo.
func Forbidden(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}
