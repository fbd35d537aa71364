package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo gastos de orden (order_id) y generales (order_id NULL).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, order_id, title, amount_cents, expense_date, created_by_id, created_at, updated_at`

func scanExpense(row interface{ Scan(dest ...any) error }) (*entity.Expense, error) {
	var e entity.Expense
	var orderID *string
	if err := row.Scan(&e.ID, &orderID, &e.Title, &e.AmountCents, &e.ExpenseDate, &e.CreatedByID,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Scope = entity.ScopeFromOrderID(orderID)
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *entity.Expense) error {
	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, entity.OrderIDOf(e.Scope), e.Title, e.AmountCents, e.ExpenseDate, e.CreatedByID, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return wrapWrite("insert expense", "gasto "+e.ID, err)
	}
	return nil
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*entity.Expense, error) {
	e, err := scanExpense(r.q.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id))
	return noRows(e, err, "get expense")
}

// Update el alcance (order_id) no cambia después de crear el gasto.
func (r *ExpenseRepo) Update(ctx context.Context, e *entity.Expense) error {
	query := `
		UPDATE expenses
		SET title = $2, amount_cents = $3, expense_date = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, e.ID, e.Title, e.AmountCents, e.ExpenseDate, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return expectOne(tag, "gasto", e.ID)
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Expense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE order_id = $1
		ORDER BY expense_date DESC, created_at DESC`, orderID)
}

// ListShopWide gastos sin orden, opcionalmente acotados por fecha.
func (r *ExpenseRepo) ListShopWide(ctx context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE order_id IS NULL`
	var args []any
	pos := 1
	if f.From != nil {
		query += fmt.Sprintf(" AND expense_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND expense_date <= $%d", pos)
		args = append(args, *f.To)
	}
	query += " ORDER BY expense_date DESC, created_at DESC"
	return r.list(ctx, query, args...)
}

func (r *ExpenseRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Expense, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func (r *ExpenseRepo) SumByOrder(ctx context.Context, orderID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)::BIGINT FROM expenses WHERE order_id = $1`, orderID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum expenses: %w", err)
	}
	return sum, nil
}
