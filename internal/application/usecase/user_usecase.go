package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

const minPasswordLen = 6

var userNamePattern = regexp.MustCompile(`^\S+$`)

// UserUseCase administración de usuarios (maestros y admins). Nunca se borran, sólo se desactivan.
type UserUseCase struct {
	tx  ports.TxRunner
	now func() time.Time
}

// NewUserUseCase construye el caso de uso. now nil = time.Now.
func NewUserUseCase(tx ports.TxRunner, now func() time.Time) *UserUseCase {
	if now == nil {
		now = time.Now
	}
	return &UserUseCase{tx: tx, now: now}
}

// HashPassword bcrypt con costo por defecto; lo usa también el seed.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", domain.Validation(fmt.Sprintf("password: mínimo %d caracteres", minPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validCommission(pct int) error {
	if pct < 0 || pct > 100 {
		return domain.Validation("commission_pct debe estar entre 0 y 100")
	}
	return nil
}

// ListPerformers usuarios activos seleccionables como ejecutor. Los admins figuran con 0%.
func (uc *UserUseCase) ListPerformers(ctx context.Context) ([]dto.PerformerResponse, error) {
	var out []dto.PerformerResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		users, err := r.Users.List(ctx, true)
		if err != nil {
			return err
		}
		out = make([]dto.PerformerResponse, 0, len(users))
		for _, u := range users {
			out = append(out, dto.PerformerResponse{
				ID:            u.ID,
				Name:          u.Name,
				IsAdmin:       u.IsAdmin,
				CommissionPct: u.EffectiveCommissionPct(),
			})
		}
		return nil
	})
	return out, err
}

// List todos los usuarios (admin).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		users, err := r.Users.List(ctx, false)
		if err != nil {
			return err
		}
		out = make([]dto.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, toUserResponse(u))
		}
		return nil
	})
	return out, err
}

// Create alta de usuario. El porcentaje de un admin se fuerza a 0.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || utf8.RuneCountInString(name) > 32 || !userNamePattern.MatchString(name) {
		return nil, domain.Validation("name: 1..32 caracteres sin espacios")
	}
	if err := validCommission(in.CommissionPct); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	pct := in.CommissionPct
	if in.IsAdmin {
		pct = 0
	}

	var out dto.UserResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		now := uc.now().UTC()
		u := &entity.User{
			ID:            uuid.New().String(),
			Name:          name,
			PasswordHash:  hash,
			IsAdmin:       in.IsAdmin,
			IsActive:      active,
			CommissionPct: pct,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Users.Create(ctx, u); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionCreate, Entity: entity.AuditUser, EntityID: u.ID,
			Diff: audit.Created{
				"id":            u.ID,
				"name":          u.Name,
				"isAdmin":       u.IsAdmin,
				"commissionPct": u.CommissionPct,
				"isActive":      u.IsActive,
			},
		}, now); err != nil {
			return err
		}
		out = toUserResponse(u)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update cambia rol, estado o porcentaje.
// Un admin no puede desactivarse a sí mismo ni quitarse el rol si es el único admin activo.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if in.IsAdmin == nil && in.IsActive == nil && in.CommissionPct == nil {
		return nil, domain.Validation("no hay campos para actualizar")
	}
	if in.CommissionPct != nil {
		if err := validCommission(*in.CommissionPct); err != nil {
			return nil, err
		}
	}

	var out dto.UserResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		cur, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.NotFound("usuario")
		}
		self := cur.ID == actor.UserID
		if self && in.IsActive != nil && !*in.IsActive {
			return domain.Conflict("no puede desactivarse a sí mismo")
		}
		if self && cur.IsAdmin && in.IsAdmin != nil && !*in.IsAdmin {
			admins, err := r.Users.CountActiveAdmins(ctx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return domain.Conflict("es el único admin activo")
			}
		}

		next := *cur
		if in.IsAdmin != nil {
			next.IsAdmin = *in.IsAdmin
		}
		if in.IsActive != nil {
			next.IsActive = *in.IsActive
		}
		if in.CommissionPct != nil || in.IsAdmin != nil {
			if next.IsAdmin {
				next.CommissionPct = 0
			} else if in.CommissionPct != nil {
				next.CommissionPct = *in.CommissionPct
			}
		}

		changed := audit.Changed{}
		audit.Track(changed, "isAdmin", cur.IsAdmin, next.IsAdmin)
		audit.Track(changed, "isActive", cur.IsActive, next.IsActive)
		audit.Track(changed, "commissionPct", cur.CommissionPct, next.CommissionPct)
		if changed.Empty() {
			out = toUserResponse(cur)
			return nil
		}

		now := uc.now().UTC()
		next.UpdatedAt = now
		if err := r.Users.Update(ctx, &next); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditUser,
			EntityID: next.ID, Diff: changed,
		}, now); err != nil {
			return err
		}
		out = toUserResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword fija una nueva contraseña; el diff no incluye el hash.
func (uc *UserUseCase) ResetPassword(ctx context.Context, actor entity.Actor, userID string, in dto.ResetPasswordRequest) error {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		u, err := r.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if u == nil {
			return domain.NotFound("usuario")
		}
		now := uc.now().UTC()
		u.PasswordHash = hash
		u.UpdatedAt = now
		if err := r.Users.Update(ctx, u); err != nil {
			return err
		}
		return appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditUser,
			EntityID: u.ID, Diff: audit.Event{"passwordReset": true},
		}, now)
	})
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		IsAdmin:       u.IsAdmin,
		IsActive:      u.IsActive,
		CommissionPct: u.EffectiveCommissionPct(),
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
