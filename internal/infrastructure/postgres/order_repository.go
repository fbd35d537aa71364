package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, title, guitar_serial, description, customer_name, customer_phone, status, paid_at,
	created_by_id, labor_subtotal_cents, parts_subtotal_cents, invoice_total_cents, order_expenses_cents,
	created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }, o *entity.Order) error {
	return row.Scan(&o.ID, &o.Title, &o.GuitarSerial, &o.Description, &o.CustomerName, &o.CustomerPhone,
		&o.Status, &o.PaidAt, &o.CreatedByID,
		&o.LaborSubtotalCents, &o.PartsSubtotalCents, &o.InvoiceTotalCents, &o.OrderExpensesCents,
		&o.CreatedAt, &o.UpdatedAt)
}

// Create persiste una orden nueva (totales en cero).
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Title, o.GuitarSerial, o.Description, o.CustomerName, o.CustomerPhone, o.Status, o.PaidAt,
		o.CreatedByID, o.LaborSubtotalCents, o.PartsSubtotalCents, o.InvoiceTotalCents, o.OrderExpensesCents,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert order", "orden "+o.ID, err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &o)
	return noRows(&o, err, "get order")
}

// GetForUpdate igual que GetByID pero con SELECT ... FOR UPDATE.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id), &o)
	return noRows(&o, err, "get order for update")
}

// Update escribe campos descriptivos, estado y paid_at. No toca totales.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders
		SET title = $2, guitar_serial = $3, description = $4, customer_name = $5, customer_phone = $6,
		    status = $7, paid_at = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.Title, o.GuitarSerial, o.Description, o.CustomerName, o.CustomerPhone,
		o.Status, o.PaidAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return expectOne(tag, "orden", o.ID)
}

// UpdateTotals escribe los cuatro totales derivados. updated_at no cambia.
func (r *OrderRepo) UpdateTotals(ctx context.Context, orderID string, t entity.OrderTotals) error {
	query := `
		UPDATE orders
		SET labor_subtotal_cents = $2, parts_subtotal_cents = $3, invoice_total_cents = $4, order_expenses_cents = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, orderID,
		t.LaborSubtotalCents, t.PartsSubtotalCents, t.InvoiceTotalCents, t.OrderExpensesCents)
	if err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return expectOne(tag, "orden", orderID)
}

// List filtra por texto, estados y ejecutor; más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE TRUE`
	var args []any
	pos := 1
	if q := strings.TrimSpace(f.Query); q != "" {
		query += fmt.Sprintf(" AND (o.title ILIKE $%d OR o.guitar_serial ILIKE $%d)", pos, pos)
		args = append(args, "%"+escapeLike(q)+"%")
		pos++
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, 0, len(f.Statuses))
		for _, s := range f.Statuses {
			statuses = append(statuses, string(s))
		}
		query += fmt.Sprintf(" AND o.status = ANY($%d)", pos)
		args = append(args, statuses)
		pos++
	}
	if f.PerformerID != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM order_works w WHERE w.order_id = o.id AND w.performer_id = $%d)", pos)
		args = append(args, f.PerformerID)
	}
	query += " ORDER BY o.updated_at DESC, o.created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// escapeLike neutraliza comodines de ILIKE en la búsqueda del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
