package ledger

import (
	"time"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// AssertMutable rechaza cualquier cambio sobre una orden pagada, también para admin.
// Debe ser la primera comprobación de toda operación que modifica la orden.
func AssertMutable(order *entity.Order) error {
	if order.IsLocked() {
		return domain.ErrOrderLocked
	}
	return nil
}

// AssertStatusChange valida la transición de estado.
// Entre estados no pagados cualquiera puede moverse; entrar o salir de PAID exige admin.
func AssertStatusChange(actor entity.Actor, current, next entity.OrderStatus) error {
	if !next.Valid() {
		return domain.Validation("estado desconocido: " + string(next))
	}
	if actor.IsAdmin {
		return nil
	}
	if current == entity.StatusPaid {
		return domain.Conflict("sólo un admin puede cambiar el estado de una orden pagada")
	}
	if next == entity.StatusPaid {
		return domain.Conflict("sólo un admin puede marcar una orden como pagada")
	}
	return nil
}

// NextPaidAt paidAt resultante: now al entrar en PAID, nil en cualquier otro estado.
func NextPaidAt(next entity.OrderStatus, now time.Time) *time.Time {
	if next != entity.StatusPaid {
		return nil
	}
	t := now.UTC()
	return &t
}
