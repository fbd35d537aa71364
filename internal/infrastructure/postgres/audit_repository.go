package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo log append-only sobre audit_logs. Sólo INSERT y SELECT.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta la fila con el diff serializado a jsonb.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditLog) error {
	var diff []byte
	if e.Diff != nil {
		raw, err := json.Marshal(e.Diff)
		if err != nil {
			return fmt.Errorf("marshal audit diff: %w", err)
		}
		diff = raw
	}
	query := `
		INSERT INTO audit_logs (id, actor_id, action, entity, entity_id, order_id, diff, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query,
		e.ID, e.ActorID, e.Action, e.Entity, e.EntityID, e.OrderID, diff, e.CreatedAt); err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List más recientes primero; seq desempata filas del mismo instante.
func (r *AuditRepo) List(ctx context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	query := `SELECT id, actor_id, action, entity, entity_id, order_id, diff, created_at FROM audit_logs WHERE TRUE`
	var args []any
	pos := 1
	if f.OrderID != "" {
		query += fmt.Sprintf(" AND order_id = $%d", pos)
		args = append(args, f.OrderID)
		pos++
	}
	if f.Entity != "" {
		query += fmt.Sprintf(" AND entity = $%d", pos)
		args = append(args, string(f.Entity))
		pos++
	}
	if f.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", pos)
		args = append(args, string(f.Action))
		pos++
	}
	query += " ORDER BY created_at DESC, seq DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", pos)
		args = append(args, f.Limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var e entity.AuditLog
		var raw []byte
		if err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Entity, &e.EntityID, &e.OrderID, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		if e.Diff, err = audit.Decode(raw); err != nil {
			return nil, err
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
