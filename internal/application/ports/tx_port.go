package ports

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Orders   repository.OrderRepository
	Works    repository.WorkRepository
	Parts    repository.PartRepository
	Expenses repository.ExpenseRepository
	Users    repository.UserRepository
	Services repository.ServiceRepository
	Comments repository.CommentRepository
	Audit    repository.AuditRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Lo implementan postgres.TxRunner y memory.Store.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
