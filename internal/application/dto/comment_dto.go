package dto

import (
	"time"

	"github.com/jhoicas/taller-api/internal/domain/audit"
)

// CreateCommentRequest body para POST /api/orders/:id/comments.
type CreateCommentRequest struct {
	Text string `json:"text"` // 1..2000
}

// CommentResponse comentario.
type CommentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	AuthorID  string    `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AuditListRequest query de GET /api/orders/:id/audit.
type AuditListRequest struct {
	Limit  int    `query:"limit"` // 1..500, default 200
	Entity string `query:"entity"`
	Action string `query:"action"`
}

// AuditLogResponse fila del historial; diff conserva el esquema persistido.
type AuditLogResponse struct {
	ID        string     `json:"id"`
	ActorID   string     `json:"actor_id"`
	Action    string     `json:"action"`
	Entity    string     `json:"entity"`
	EntityID  string     `json:"entity_id"`
	OrderID   *string    `json:"order_id"`
	Diff      audit.Diff `json:"diff"`
	CreatedAt time.Time  `json:"created_at"`
}
