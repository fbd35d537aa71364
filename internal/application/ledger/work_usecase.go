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
	rules "github.com/jhoicas/taller-api/internal/domain/ledger"
)

// WorkUseCase alta, edición y baja de líneas de mano de obra.
type WorkUseCase struct {
	tx  ports.TxRunner
	now Clock
}

// NewWorkUseCase construye el caso de uso. clock nil = time.Now.
func NewWorkUseCase(tx ports.TxRunner, clock Clock) *WorkUseCase {
	return &WorkUseCase{tx: tx, now: clockOrNow(clock)}
}

// AddFromService agrega una línea a partir de un servicio del catálogo.
// Sin precio explícito se usa el precio por defecto del servicio.
func (uc *WorkUseCase) AddFromService(ctx context.Context, actor entity.Actor, orderID string, in dto.AddWorkFromServiceRequest) (*dto.WorkResponse, error) {
	if err := requiredID("service_id", in.ServiceID); err != nil {
		return nil, err
	}
	if err := requiredID("performer_id", in.PerformerID); err != nil {
		return nil, err
	}
	if in.UnitPriceCents != nil {
		if err := nonNegativeCents("unit_price_cents", *in.UnitPriceCents); err != nil {
			return nil, err
		}
	}
	qty, err := quantity(in.Quantity)
	if err != nil {
		return nil, err
	}

	var out dto.WorkResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		svc, err := r.Services.GetByID(ctx, in.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return domain.NotFound("servicio")
		}
		performer, err := loadPerformer(ctx, r, in.PerformerID)
		if err != nil {
			return err
		}
		price := svc.DefaultPriceCents
		if in.UnitPriceCents != nil {
			price = *in.UnitPriceCents
		}
		work, err := uc.create(ctx, r, actor, order, entity.CatalogSource{ServiceID: svc.ID}, svc.Name, price, qty, performer)
		if err != nil {
			return err
		}
		out = toWorkResponse(work)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddCustom agrega un trabajo libre (sin servicio del catálogo).
func (uc *WorkUseCase) AddCustom(ctx context.Context, actor entity.Actor, orderID string, in dto.AddCustomWorkRequest) (*dto.WorkResponse, error) {
	name, err := text("service_name", in.ServiceName, 1, 80)
	if err != nil {
		return nil, err
	}
	if err := requiredID("performer_id", in.PerformerID); err != nil {
		return nil, err
	}
	if err := nonNegativeCents("unit_price_cents", in.UnitPriceCents); err != nil {
		return nil, err
	}
	qty, err := quantity(in.Quantity)
	if err != nil {
		return nil, err
	}

	var out dto.WorkResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		performer, err := loadPerformer(ctx, r, in.PerformerID)
		if err != nil {
			return err
		}
		work, err := uc.create(ctx, r, actor, order, entity.CustomSource{}, name, in.UnitPriceCents, qty, performer)
		if err != nil {
			return err
		}
		out = toWorkResponse(work)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (uc *WorkUseCase) create(
	ctx context.Context, r ports.Repos, actor entity.Actor, order *entity.Order,
	src entity.WorkSource, name string, price int64, qty int, performer *entity.User,
) (*entity.OrderWork, error) {
	pct, cents := rules.Snapshot(performer, price, qty)
	now := uc.now().UTC()
	work := &entity.OrderWork{
		ID:                      uuid.New().String(),
		OrderID:                 order.ID,
		Source:                  src,
		ServiceName:             name,
		UnitPriceCents:          price,
		Quantity:                qty,
		PerformerID:             performer.ID,
		CommissionPctSnapshot:   pct,
		CommissionCentsSnapshot: cents,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := r.Works.Create(ctx, work); err != nil {
		return nil, err
	}
	if _, err := Recalc(ctx, r, order.ID); err != nil {
		return nil, err
	}
	err := appaudit.Write(ctx, r.Audit, appaudit.Record{
		Actor:    actor,
		Action:   entity.ActionCreate,
		Entity:   entity.AuditOrderWork,
		EntityID: work.ID,
		OrderID:  &order.ID,
		Diff: audit.Created{
			"id":                      work.ID,
			"serviceName":             work.ServiceName,
			"unitPriceCents":          work.UnitPriceCents,
			"quantity":                work.Quantity,
			"performerId":             work.PerformerID,
			"commissionPctSnapshot":   work.CommissionPctSnapshot,
			"commissionCentsSnapshot": work.CommissionCentsSnapshot,
		},
	}, now)
	if err != nil {
		return nil, err
	}
	return work, nil
}

// Update edita una línea. Reasignar el ejecutor toma su porcentaje actual;
// cambios de precio o cantidad recalculan la comisión con el porcentaje ya congelado.
// Si nada cambia no se escribe ni se audita.
func (uc *WorkUseCase) Update(ctx context.Context, actor entity.Actor, orderID, workID string, in dto.UpdateWorkRequest) (*dto.WorkResponse, error) {
	if in.ServiceName == nil && in.UnitPriceCents == nil && in.Quantity == nil && in.PerformerID == nil {
		return nil, domain.Validation("no hay campos para actualizar")
	}
	var name string
	if in.ServiceName != nil {
		v, err := text("service_name", *in.ServiceName, 1, 80)
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
	if in.PerformerID != nil {
		if err := requiredID("performer_id", *in.PerformerID); err != nil {
			return nil, err
		}
	}

	var out dto.WorkResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		cur, err := r.Works.GetByID(ctx, order.ID, workID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NotFound("línea de trabajo")
		}
		if in.ServiceName != nil && !cur.IsCustom() {
			return domain.Conflict("el nombre sólo puede editarse en trabajos libres")
		}

		next := *cur
		if in.PerformerID != nil && *in.PerformerID != cur.PerformerID {
			performer, err := loadPerformer(ctx, r, *in.PerformerID)
			if err != nil {
				return err
			}
			next.PerformerID = performer.ID
			next.CommissionPctSnapshot = performer.EffectiveCommissionPct()
		}
		if in.ServiceName != nil {
			next.ServiceName = name
		}
		if in.UnitPriceCents != nil {
			next.UnitPriceCents = *in.UnitPriceCents
		}
		if in.Quantity != nil {
			next.Quantity = *in.Quantity
		}
		next.CommissionCentsSnapshot = rules.CommissionFor(next.CommissionPctSnapshot, next.UnitPriceCents, next.Quantity)

		changed := audit.Changed{}
		audit.Track(changed, "serviceName", cur.ServiceName, next.ServiceName)
		audit.Track(changed, "unitPriceCents", cur.UnitPriceCents, next.UnitPriceCents)
		audit.Track(changed, "quantity", cur.Quantity, next.Quantity)
		audit.Track(changed, "performerId", cur.PerformerID, next.PerformerID)
		audit.Track(changed, "commissionPctSnapshot", cur.CommissionPctSnapshot, next.CommissionPctSnapshot)
		audit.Track(changed, "commissionCentsSnapshot", cur.CommissionCentsSnapshot, next.CommissionCentsSnapshot)
		if changed.Empty() {
			out = toWorkResponse(cur)
			return nil
		}

		now := uc.now().UTC()
		next.UpdatedAt = now
		if err := r.Works.Update(ctx, &next); err != nil {
			return err
		}
		if _, err := Recalc(ctx, r, order.ID); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditOrderWork,
			EntityID: next.ID, OrderID: &order.ID, Diff: changed,
		}, now); err != nil {
			return err
		}
		out = toWorkResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina la línea y recalcula la orden.
func (uc *WorkUseCase) Delete(ctx context.Context, actor entity.Actor, orderID, workID string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		cur, err := r.Works.GetByID(ctx, order.ID, workID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NotFound("línea de trabajo")
		}
		if err := r.Works.Delete(ctx, cur.ID); err != nil {
			return err
		}
		if _, err := Recalc(ctx, r, order.ID); err != nil {
			return err
		}
		return appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionDelete, Entity: entity.AuditOrderWork,
			EntityID: cur.ID, OrderID: &order.ID, Diff: audit.Deleted{ID: cur.ID},
		}, uc.now())
	})
}
