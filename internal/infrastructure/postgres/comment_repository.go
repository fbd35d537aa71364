package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.CommentRepository = (*CommentRepo)(nil)

// CommentRepo comentarios por orden.
type CommentRepo struct {
	q Querier
}

// NewCommentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCommentRepository(q Querier) *CommentRepo {
	return &CommentRepo{q: q}
}

const commentColumns = `id, order_id, author_id, text, created_at`

func scanComment(row interface{ Scan(dest ...any) error }) (*entity.Comment, error) {
	var c entity.Comment
	if err := row.Scan(&c.ID, &c.OrderID, &c.AuthorID, &c.Text, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO comments (`+commentColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.OrderID, c.AuthorID, c.Text, c.CreatedAt)
	if err != nil {
		return wrapWrite("insert comment", "comentario "+c.ID, err)
	}
	return nil
}

func (r *CommentRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Comment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE order_id = $1 ORDER BY created_at DESC, id DESC`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CommentRepo) LastByOrder(ctx context.Context, orderID string) (*entity.Comment, error) {
	c, err := scanComment(r.q.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE order_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`, orderID))
	return noRows(c, err, "last comment")
}
