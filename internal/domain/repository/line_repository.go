package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// WorkRepository puerto de persistencia para líneas de mano de obra.
type WorkRepository interface {
	Create(ctx context.Context, work *entity.OrderWork) error
	// GetByID busca la línea dentro de la orden; (nil, nil) si no existe.
	GetByID(ctx context.Context, orderID, id string) (*entity.OrderWork, error)
	Update(ctx context.Context, work *entity.OrderWork) error
	Delete(ctx context.Context, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderWork, error)
	// SumByOrder suma precio × cantidad de todas las líneas de la orden.
	SumByOrder(ctx context.Context, orderID string) (int64, error)
}

// PartRepository puerto de persistencia para repuestos.
type PartRepository interface {
	Create(ctx context.Context, part *entity.OrderPart) error
	GetByID(ctx context.Context, orderID, id string) (*entity.OrderPart, error)
	Update(ctx context.Context, part *entity.OrderPart) error
	Delete(ctx context.Context, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderPart, error)
	SumByOrder(ctx context.Context, orderID string) (int64, error)
}
