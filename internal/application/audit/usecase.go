package audit

import (
	"context"
	"strings"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

const (
	defaultListLimit = 200
	maxListLimit     = 500
)

// UseCase lectura del historial de una orden.
type UseCase struct {
	tx ports.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// ListByOrder historial de la orden, más reciente primero.
func (uc *UseCase) ListByOrder(ctx context.Context, orderID string, in dto.AuditListRequest) ([]dto.AuditLogResponse, error) {
	filter, err := buildFilter(orderID, in)
	if err != nil {
		return nil, err
	}
	var out []dto.AuditLogResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("orden")
		}
		rows, err := r.Audit.List(ctx, filter)
		if err != nil {
			return err
		}
		out = ToResponses(rows)
		return nil
	})
	return out, err
}

func buildFilter(orderID string, in dto.AuditListRequest) (repository.AuditFilter, error) {
	f := repository.AuditFilter{OrderID: orderID, Limit: in.Limit}
	if f.Limit == 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit < 1 || f.Limit > maxListLimit {
		return f, domain.Validation("limit debe estar entre 1 y 500")
	}
	if e := strings.ToUpper(strings.TrimSpace(in.Entity)); e != "" {
		if !entity.ValidAuditEntity(e) {
			return f, domain.Validation("entity desconocida: " + in.Entity)
		}
		f.Entity = entity.AuditEntity(e)
	}
	if a := strings.ToUpper(strings.TrimSpace(in.Action)); a != "" {
		if !entity.ValidAuditAction(a) {
			return f, domain.Validation("action desconocida: " + in.Action)
		}
		f.Action = entity.AuditAction(a)
	}
	return f, nil
}

// ToResponses mapea filas del log a DTO.
func ToResponses(rows []*entity.AuditLog) []dto.AuditLogResponse {
	out := make([]dto.AuditLogResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.AuditLogResponse{
			ID:        r.ID,
			ActorID:   r.ActorID,
			Action:    string(r.Action),
			Entity:    string(r.Entity),
			EntityID:  r.EntityID,
			OrderID:   r.OrderID,
			Diff:      r.Diff,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
