package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// AuditFilter filtros del historial de una orden.
type AuditFilter struct {
	OrderID string
	Entity  entity.AuditEntity // vacío = todas
	Action  entity.AuditAction // vacío = todas
	Limit   int
}

// AuditRepository log append-only: no existe Update ni Delete.
type AuditRepository interface {
	Append(ctx context.Context, entry *entity.AuditLog) error
	// List devuelve las filas más recientes primero.
	List(ctx context.Context, filter AuditFilter) ([]*entity.AuditLog, error)
}
