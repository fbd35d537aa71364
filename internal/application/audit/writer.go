// Package audit escribe y consulta el historial append-only de mutaciones.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Record datos de una fila de auditoría.
type Record struct {
	Actor    entity.Actor
	Action   entity.AuditAction
	Entity   entity.AuditEntity
	EntityID string
	OrderID  *string
	Diff     audit.Diff
}

// Write agrega la fila usando el repositorio de la transacción en curso,
// de modo que un rollback de la mutación también descarta la auditoría.
func Write(ctx context.Context, repo repository.AuditRepository, rec Record, now time.Time) error {
	entry := &entity.AuditLog{
		ID:        uuid.New().String(),
		ActorID:   rec.Actor.UserID,
		Action:    rec.Action,
		Entity:    rec.Entity,
		EntityID:  rec.EntityID,
		OrderID:   rec.OrderID,
		Diff:      rec.Diff,
		CreatedAt: now.UTC(),
	}
	if err := repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("audit: append %s %s: %w", rec.Action, rec.Entity, err)
	}
	return nil
}

// Truncate recorta s a max runas agregando "..." (textos largos en diffs).
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
