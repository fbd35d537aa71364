package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
)

// ServiceUseCase catálogo de servicios con precio sugerido.
type ServiceUseCase struct {
	tx  ports.TxRunner
	now func() time.Time
}

// NewServiceUseCase construye el caso de uso.
func NewServiceUseCase(tx ports.TxRunner, now func() time.Time) *ServiceUseCase {
	if now == nil {
		now = time.Now
	}
	return &ServiceUseCase{tx: tx, now: now}
}

func serviceName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 1 || n > 60 {
		return "", domain.Validation("name: 1..60 caracteres")
	}
	return s, nil
}

func servicePrice(cents int64) error {
	if cents < 0 || cents > money.MaxCents {
		return domain.Validation("default_price_cents fuera de rango")
	}
	return nil
}

// List catálogo ordenado por nombre; activeOnly para el selector de líneas.
func (uc *ServiceUseCase) List(ctx context.Context, activeOnly bool) ([]dto.ServiceResponse, error) {
	var out []dto.ServiceResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		rows, err := r.Services.List(ctx, activeOnly)
		if err != nil {
			return err
		}
		out = make([]dto.ServiceResponse, 0, len(rows))
		for _, s := range rows {
			out = append(out, toServiceResponse(s))
		}
		return nil
	})
	return out, err
}

// Create alta de servicio. Nombre repetido = domain.ErrDuplicate.
func (uc *ServiceUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	name, err := serviceName(in.Name)
	if err != nil {
		return nil, err
	}
	if err := servicePrice(in.DefaultPriceCents); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	var out dto.ServiceResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		now := uc.now().UTC()
		s := &entity.Service{
			ID:                uuid.New().String(),
			Name:              name,
			DefaultPriceCents: in.DefaultPriceCents,
			IsActive:          active,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := r.Services.Create(ctx, s); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionCreate, Entity: entity.AuditService, EntityID: s.ID,
			Diff: audit.Created{
				"id":                s.ID,
				"name":              s.Name,
				"defaultPriceCents": s.DefaultPriceCents,
				"isActive":          s.IsActive,
			},
		}, now); err != nil {
			return err
		}
		out = toServiceResponse(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita nombre, precio o estado. Las líneas ya creadas conservan su nombre y precio.
func (uc *ServiceUseCase) Update(ctx context.Context, actor entity.Actor, serviceID string, in dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	if in.Name == nil && in.DefaultPriceCents == nil && in.IsActive == nil {
		return nil, domain.Validation("no hay campos para actualizar")
	}
	var name string
	if in.Name != nil {
		v, err := serviceName(*in.Name)
		if err != nil {
			return nil, err
		}
		name = v
	}
	if in.DefaultPriceCents != nil {
		if err := servicePrice(*in.DefaultPriceCents); err != nil {
			return nil, err
		}
	}

	var out dto.ServiceResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		cur, err := r.Services.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NotFound("servicio")
		}
		next := *cur
		if in.Name != nil {
			next.Name = name
		}
		if in.DefaultPriceCents != nil {
			next.DefaultPriceCents = *in.DefaultPriceCents
		}
		if in.IsActive != nil {
			next.IsActive = *in.IsActive
		}

		changed := audit.Changed{}
		audit.Track(changed, "name", cur.Name, next.Name)
		audit.Track(changed, "defaultPriceCents", cur.DefaultPriceCents, next.DefaultPriceCents)
		audit.Track(changed, "isActive", cur.IsActive, next.IsActive)
		if changed.Empty() {
			out = toServiceResponse(cur)
			return nil
		}

		now := uc.now().UTC()
		next.UpdatedAt = now
		if err := r.Services.Update(ctx, &next); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditService,
			EntityID: next.ID, Diff: changed,
		}, now); err != nil {
			return err
		}
		out = toServiceResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func toServiceResponse(s *entity.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:                s.ID,
		Name:              s.Name,
		DefaultPriceCents: s.DefaultPriceCents,
		IsActive:          s.IsActive,
	}
}
