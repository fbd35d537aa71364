package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ledger"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

// fixture taller en memoria con un admin, un maestro y un servicio de catálogo.
type fixture struct {
	store    *memory.Store
	clock    *fakeClock
	orders   *ledger.OrderUseCase
	works    *ledger.WorkUseCase
	parts    *ledger.PartUseCase
	expenses *ledger.ExpenseUseCase
	comments *ledger.CommentUseCase

	admin   entity.Actor
	master  entity.Actor
	service *entity.Service
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFixture(t *testing.T, masterPct int) *fixture {
	t.Helper()
	store := memory.NewStore()
	clock := &fakeClock{t: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	f := &fixture{
		store:    store,
		clock:    clock,
		orders:   ledger.NewOrderUseCase(store, clock.Now),
		works:    ledger.NewWorkUseCase(store, clock.Now),
		parts:    ledger.NewPartUseCase(store, clock.Now),
		expenses: ledger.NewExpenseUseCase(store, clock.Now),
		comments: ledger.NewCommentUseCase(store, clock.Now),
	}
	admin := f.addUser(t, "admin", true, 0)
	master := f.addUser(t, "master1", false, masterPct)
	f.admin = entity.Actor{UserID: admin.ID, Name: admin.Name, IsAdmin: true}
	f.master = entity.Actor{UserID: master.ID, Name: master.Name}

	f.service = &entity.Service{ID: uuid.New().String(), Name: "Diagnostics", DefaultPriceCents: 100000, IsActive: true}
	require.NoError(t, store.Run(context.Background(), func(r ports.Repos) error {
		return r.Services.Create(context.Background(), f.service)
	}))
	return f
}

func (f *fixture) addUser(t *testing.T, name string, admin bool, pct int) *entity.User {
	t.Helper()
	u := &entity.User{
		ID: uuid.New().String(), Name: name, PasswordHash: "x",
		IsAdmin: admin, IsActive: true, CommissionPct: pct,
	}
	require.NoError(t, f.store.Run(context.Background(), func(r ports.Repos) error {
		return r.Users.Create(context.Background(), u)
	}))
	return u
}

func (f *fixture) setCommission(t *testing.T, userID string, pct int) {
	t.Helper()
	require.NoError(t, f.store.Run(context.Background(), func(r ports.Repos) error {
		u, err := r.Users.GetByID(context.Background(), userID)
		if err != nil {
			return err
		}
		u.CommissionPct = pct
		return r.Users.Update(context.Background(), u)
	}))
}

func (f *fixture) newOrder(t *testing.T) string {
	t.Helper()
	o, err := f.orders.Create(context.Background(), f.admin, dto.CreateOrderRequest{Title: "Fender Strat", GuitarSerial: "SN-001"})
	require.NoError(t, err)
	return o.ID
}

func (f *fixture) order(t *testing.T, id string) *entity.Order {
	t.Helper()
	var out *entity.Order
	require.NoError(t, f.store.Run(context.Background(), func(r ports.Repos) error {
		o, err := r.Orders.GetByID(context.Background(), id)
		out = o
		return err
	}))
	require.NotNil(t, out)
	return out
}

func (f *fixture) auditRows(t *testing.T, orderID string) []*entity.AuditLog {
	t.Helper()
	var out []*entity.AuditLog
	require.NoError(t, f.store.Run(context.Background(), func(r ports.Repos) error {
		rows, err := r.Audit.List(context.Background(), repository.AuditFilter{OrderID: orderID})
		out = rows
		return err
	}))
	return out
}

func ptr[T any](v T) *T { return &v }
