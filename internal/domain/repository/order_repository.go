package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes.
type OrderFilter struct {
	Query       string               // título o serie, sin distinguir mayúsculas
	Statuses    []entity.OrderStatus // vacío = todos
	PerformerID string               // sólo órdenes con alguna línea de este ejecutor ("mine")
}

// OrderRepository define el puerto de persistencia para Order.
// GetByID y GetForUpdate devuelven (nil, nil) si la orden no existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate lee la orden bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// Update persiste campos descriptivos, estado y paidAt. Nunca los totales.
	Update(ctx context.Context, order *entity.Order) error
	// UpdateTotals es exclusivo del motor de recálculo.
	UpdateTotals(ctx context.Context, orderID string, totals entity.OrderTotals) error
	// List ordena por updatedAt descendente.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
}
