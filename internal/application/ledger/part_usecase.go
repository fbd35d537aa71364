package ledger

import (
	"context"

	"github.com/google/uuid"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// PartUseCase alta, edición y baja de repuestos.
type PartUseCase struct {
	tx  ports.TxRunner
	now Clock
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(tx ports.TxRunner, clock Clock) *PartUseCase {
	return &PartUseCase{tx: tx, now: clockOrNow(clock)}
}

// Add agrega un repuesto a la orden.
func (uc *PartUseCase) Add(ctx context.Context, actor entity.Actor, orderID string, in dto.AddPartRequest) (*dto.PartResponse, error) {
	name, err := text("name", in.Name, 1, 120)
	if err != nil {
		return nil, err
	}
	if err := nonNegativeCents("unit_price_cents", in.UnitPriceCents); err != nil {
		return nil, err
	}
	qty, err := quantity(in.Quantity)
	if err != nil {
		return nil, err
	}
	if in.CostCents != nil {
		if err := nonNegativeCents("cost_cents", *in.CostCents); err != nil {
			return nil, err
		}
	}

	var out dto.PartResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		now := uc.now().UTC()
		part := &entity.OrderPart{
			ID:             uuid.New().String(),
			OrderID:        order.ID,
			Name:           name,
			UnitPriceCents: in.UnitPriceCents,
			Quantity:       qty,
			CostCents:      in.CostCents,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := r.Parts.Create(ctx, part); err != nil {
			return err
		}
		if _, err := Recalc(ctx, r, order.ID); err != nil {
			return err
		}
		created := audit.Created{
			"id":             part.ID,
			"name":           part.Name,
			"unitPriceCents": part.UnitPriceCents,
			"quantity":       part.Quantity,
		}
		if part.CostCents != nil {
			created["costCents"] = *part.CostCents
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionCreate, Entity: entity.AuditOrderPart,
			EntityID: part.ID, OrderID: &order.ID, Diff: created,
		}, now); err != nil {
			return err
		}
		out = toPartResponse(part, actor.IsAdmin)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita un repuesto; cost_cents admite null.
func (uc *PartUseCase) Update(ctx context.Context, actor entity.Actor, orderID, partID string, in dto.UpdatePartRequest) (*dto.PartResponse, error) {
	if in.Name == nil && in.UnitPriceCents == nil && in.Quantity == nil && !in.CostCents.Set {
		return nil, domain.Validation("no hay campos para actualizar")
	}
	var name string
	if in.Name != nil {
		v, err := text("name", *in.Name, 1, 120)
		if err != nil {
			return nil, err
		}
		name = v
	}
	if in.UnitPriceCents != nil {
		if err := nonNegativeCents("unit_price_cents", *in.UnitPriceCents); err != nil {
			return nil, err
		}
	}
	if in.Quantity != nil {
		if _, err := quantity(in.Quantity); err != nil {
			return nil, err
		}
	}
	if in.CostCents.Value != nil {
		if err := nonNegativeCents("cost_cents", *in.CostCents.Value); err != nil {
			return nil, err
		}
	}

	var out dto.PartResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		cur, err := r.Parts.GetByID(ctx, order.ID, partID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NotFound("repuesto")
		}

		next := *cur
		if in.Name != nil {
			next.Name = name
		}
		if in.UnitPriceCents != nil {
			next.UnitPriceCents = *in.UnitPriceCents
		}
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		if in.CostCents.Set {
			next.CostCents = in.CostCents.Value
		}

		changed := audit.Changed{}
		audit.Track(changed, "name", cur.Name, next.Name)
		audit.Track(changed, "unitPriceCents", cur.UnitPriceCents, next.UnitPriceCents)
		audit.Track(changed, "quantity", cur.Quantity, next.Quantity)
		audit.TrackOptional(changed, "costCents", cur.CostCents, next.CostCents)
		if changed.Empty() {
			out = toPartResponse(cur, actor.IsAdmin)
			return nil
		}

		now := uc.now().UTC()
		next.UpdatedAt = now
		if err := r.Parts.Update(ctx, &next); err != nil {
			return err
		}
		if _, err := Recalc(ctx, r, order.ID); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditOrderPart,
			EntityID: next.ID, OrderID: &order.ID, Diff: changed,
		}, now); err != nil {
			return err
		}
		out = toPartResponse(&next, actor.IsAdmin)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el repuesto y recalcula la orden.
func (uc *PartUseCase) Delete(ctx context.Context, actor entity.Actor, orderID, partID string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		cur, err := r.Parts.GetByID(ctx, order.ID, partID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NotFound("repuesto")
		}
		if err := r.Parts.Delete(ctx, cur.ID); err != nil {
			return err
		}
		if _, err := Recalc(ctx, r, order.ID); err != nil {
			return err
		}
		return appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionDelete, Entity: entity.AuditOrderPart,
			EntityID: cur.ID, OrderID: &order.ID, Diff: audit.Deleted{ID: cur.ID},
		}, uc.now())
	})
}
