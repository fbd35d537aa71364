package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/application/usecase"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func newUsers(t *testing.T) (*usecase.UserUseCase, *memory.Store, entity.Actor) {
	t.Helper()
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store, nil)
	root := &entity.User{ID: "root", Name: "admin", IsAdmin: true, IsActive: true}
	require.NoError(t, store.Run(context.Background(), func(r ports.Repos) error {
		return r.Users.Create(context.Background(), root)
	}))
	return uc, store, entity.Actor{UserID: root.ID, Name: root.Name, IsAdmin: true}
}

func auditFor(t *testing.T, store *memory.Store, entityID string) []*entity.AuditLog {
	t.Helper()
	var out []*entity.AuditLog
	require.NoError(t, store.Run(context.Background(), func(r ports.Repos) error {
		rows, err := r.Audit.List(context.Background(), repository.AuditFilter{Entity: entity.AuditUser})
		for _, row := range rows {
			if row.EntityID == entityID {
				out = append(out, row)
			}
		}
		return err
	}))
	return out
}

func TestUserCreate_AdminConPorcentajeCero(t *testing.T) {
	uc, store, root := newUsers(t)

	u, err := uc.Create(context.Background(), root, dto.CreateUserRequest{Name: "boss2", Password: "secret1", IsAdmin: true, CommissionPct: 30})
	require.NoError(t, err)
	assert.Zero(t, u.CommissionPct)
	assert.True(t, u.IsActive)

	rows := auditFor(t, store, u.ID)
	require.Len(t, rows, 1)
	created, ok := rows[0].Diff.(audit.Created)
	require.True(t, ok)
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "passwordHash")
}

func TestUserCreate_Validaciones(t *testing.T) {
	uc, _, root := newUsers(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, root, dto.CreateUserRequest{Name: "con espacio", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, root, dto.CreateUserRequest{Name: "m1", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, root, dto.CreateUserRequest{Name: "m1", Password: "secret1", CommissionPct: 101})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, root, dto.CreateUserRequest{Name: "admin", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUpdate_NoPuedeDesactivarseASiMismo(t *testing.T) {
	uc, _, root := newUsers(t)
	f := false
	_, err := uc.Update(context.Background(), root, root.UserID, dto.UpdateUserRequest{IsActive: &f})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUserUpdate_UnicoAdminNoSeQuitaElRol(t *testing.T) {
	uc, _, root := newUsers(t)
	ctx := context.Background()
	f := false

	_, err := uc.Update(ctx, root, root.UserID, dto.UpdateUserRequest{IsAdmin: &f})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Create(ctx, root, dto.CreateUserRequest{Name: "boss2", Password: "secret1", IsAdmin: true})
	require.NoError(t, err)
	u, err := uc.Update(ctx, root, root.UserID, dto.UpdateUserRequest{IsAdmin: &f})
	require.NoError(t, err, "con otro admin activo sí puede")
	assert.False(t, u.IsAdmin)
}

func TestUserUpdate_PorcentajeYNoOp(t *testing.T) {
	uc, store, root := newUsers(t)
	ctx := context.Background()

	m, err := uc.Create(ctx, root, dto.CreateUserRequest{Name: "master1", Password: "secret1", CommissionPct: 40})
	require.NoError(t, err)

	pct := 35
	u, err := uc.Update(ctx, root, m.ID, dto.UpdateUserRequest{CommissionPct: &pct})
	require.NoError(t, err)
	assert.Equal(t, 35, u.CommissionPct)

	_, err = uc.Update(ctx, root, m.ID, dto.UpdateUserRequest{CommissionPct: &pct})
	require.NoError(t, err)
	assert.Len(t, auditFor(t, store, m.ID), 2, "create + un update; el segundo no cambia nada")

	tr := true
	u, err = uc.Update(ctx, root, m.ID, dto.UpdateUserRequest{IsAdmin: &tr})
	require.NoError(t, err)
	assert.Zero(t, u.CommissionPct, "promover a admin fuerza 0%")
}

func TestUserResetPassword(t *testing.T) {
	uc, store, root := newUsers(t)
	ctx := context.Background()
	m, err := uc.Create(ctx, root, dto.CreateUserRequest{Name: "master1", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, uc.ResetPassword(ctx, root, m.ID, dto.ResetPasswordRequest{Password: "nueva-clave"}))

	require.NoError(t, store.Run(ctx, func(r ports.Repos) error {
		u, err := r.Users.GetByID(ctx, m.ID)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("nueva-clave")))
		return nil
	}))
	rows := auditFor(t, store, m.ID)
	assert.Equal(t, audit.Event{"passwordReset": true}, rows[0].Diff)

	assert.ErrorIs(t, uc.ResetPassword(ctx, root, "nope", dto.ResetPasswordRequest{Password: "nueva-clave"}), domain.ErrNotFound)
}

func TestListPerformers_SoloActivos(t *testing.T) {
	uc, _, root := newUsers(t)
	ctx := context.Background()
	f := false
	_, err := uc.Create(ctx, root, dto.CreateUserRequest{Name: "master1", Password: "secret1", CommissionPct: 40})
	require.NoError(t, err)
	_, err = uc.Create(ctx, root, dto.CreateUserRequest{Name: "old", Password: "secret1", IsActive: &f})
	require.NoError(t, err)

	rows, err := uc.ListPerformers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "admin", rows[0].Name)
	assert.Equal(t, "master1", rows[1].Name)
	assert.Equal(t, 40, rows[1].CommissionPct)
}

func TestService_CrearDuplicadoYEditar(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewServiceUseCase(store, nil)
	ctx := context.Background()
	admin := entity.Actor{UserID: "root", IsAdmin: true}

	s, err := uc.Create(ctx, admin, dto.CreateServiceRequest{Name: "Setup", DefaultPriceCents: 150000})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateServiceRequest{Name: "Setup", DefaultPriceCents: 1})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	f := false
	_, err = uc.Update(ctx, admin, s.ID, dto.UpdateServiceRequest{IsActive: &f})
	require.NoError(t, err)

	active, err := uc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := uc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_PrecioFueraDeRango(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewServiceUseCase(store, nil)
	ctx := context.Background()
	admin := entity.Actor{UserID: "root", IsAdmin: true}

	_, err := uc.Create(ctx, admin, dto.CreateServiceRequest{Name: "Setup", DefaultPriceCents: money.MaxCents + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, admin, dto.CreateServiceRequest{Name: "Setup", DefaultPriceCents: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s, err := uc.Create(ctx, admin, dto.CreateServiceRequest{Name: "Setup", DefaultPriceCents: money.MaxCents})
	require.NoError(t, err)
	huge := money.MaxCents + 1
	_, err = uc.Update(ctx, admin, s.ID, dto.UpdateServiceRequest{DefaultPriceCents: &huge})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
