// Package ledger implementa las operaciones del libro de órdenes: líneas de trabajo,
// repuestos, gastos, estado y comentarios.
//
// Cada mutación sigue el mismo orden dentro de una única transacción:
// leer la orden con bloqueo → candado (PAID) → validar contra el estado actual →
// escribir → recalcular totales → auditar. Cualquier error aborta la transacción completa.
package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	rules "github.com/jhoicas/taller-api/internal/domain/ledger"
)

// Clock fuente de tiempo inyectable (tests).
type Clock func() time.Time

func clockOrNow(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// loadOrder lee la orden bloqueando la fila; NotFound si no existe.
func loadOrder(ctx context.Context, r ports.Repos, orderID string) (*entity.Order, error) {
	order, err := r.Orders.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("orden")
	}
	return order, nil
}

// loadMutableOrder igual que loadOrder y además aplica el candado de orden pagada.
func loadMutableOrder(ctx context.Context, r ports.Repos, orderID string) (*entity.Order, error) {
	order, err := loadOrder(ctx, r, orderID)
	if err != nil {
		return nil, err
	}
	if err := rules.AssertMutable(order); err != nil {
		return nil, err
	}
	return order, nil
}

// loadPerformer el ejecutor debe existir y estar activo.
func loadPerformer(ctx context.Context, r ports.Repos, userID string) (*entity.User, error) {
	u, err := r.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NotFound("ejecutor")
	}
	if !u.IsActive {
		return nil, domain.Conflict("el ejecutor está inactivo")
	}
	return u, nil
}
