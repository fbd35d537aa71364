package ledger

import (
	"context"

	"github.com/google/uuid"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// auditTextLimit máximo de caracteres del comentario copiados al diff.
const auditTextLimit = 200

// CommentUseCase comentarios de una orden; agregarlos respeta el candado de pago.
type CommentUseCase struct {
	tx  ports.TxRunner
	now Clock
}

// NewCommentUseCase construye el caso de uso.
func NewCommentUseCase(tx ports.TxRunner, clock Clock) *CommentUseCase {
	return &CommentUseCase{tx: tx, now: clockOrNow(clock)}
}

// Add agrega un comentario del actor.
func (uc *CommentUseCase) Add(ctx context.Context, actor entity.Actor, orderID string, in dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	body, err := text("text", in.Text, 1, 2000)
	if err != nil {
		return nil, err
	}
	var out dto.CommentResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		now := uc.now().UTC()
		c := &entity.Comment{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			AuthorID:  actor.UserID,
			Text:      body,
			CreatedAt: now,
		}
		if err := r.Comments.Create(ctx, c); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionCreate, Entity: entity.AuditComment,
			EntityID: c.ID, OrderID: &order.ID,
			Diff: audit.Created{
				"id":       c.ID,
				"orderId":  c.OrderID,
				"authorId": c.AuthorID,
				"text":     appaudit.Truncate(c.Text, auditTextLimit),
			},
		}, now); err != nil {
			return err
		}
		out = toCommentResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List comentarios de la orden, más recientes primero.
func (uc *CommentUseCase) List(ctx context.Context, orderID string) ([]dto.CommentResponse, error) {
	var out []dto.CommentResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("orden")
		}
		rows, err := r.Comments.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		out = make([]dto.CommentResponse, 0, len(rows))
		for _, c := range rows {
			out = append(out, toCommentResponse(c))
		}
		return nil
	})
	return out, err
}
