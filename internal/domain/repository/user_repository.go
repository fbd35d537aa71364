package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create y Update devuelven domain.ErrDuplicate si el nombre ya existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, activeOnly bool) ([]*entity.User, error)
	CountActiveAdmins(ctx context.Context) (int, error)
}

// ServiceRepository puerto de persistencia del catálogo de servicios.
type ServiceRepository interface {
	Create(ctx context.Context, service *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Update(ctx context.Context, service *entity.Service) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Service, error)
}
