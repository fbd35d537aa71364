package repository

import (
	"context"

	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// CommentRepository puerto de persistencia de comentarios.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	// ListByOrder devuelve los comentarios más recientes primero.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Comment, error)
	LastByOrder(ctx context.Context, orderID string) (*entity.Comment, error)
}
