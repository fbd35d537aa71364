package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// ExpenseFilter rango opcional por fecha del gasto (ambos extremos inclusivos).
type ExpenseFilter struct {
	From *time.Time
	To   *time.Time
}

// ExpenseRepository puerto de persistencia para gastos de orden y generales.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id string) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Expense, error)
	// ListShopWide sólo gastos sin orden, por fecha desc y luego creación desc.
	ListShopWide(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)
	SumByOrder(ctx context.Context, orderID string) (int64, error)
}
