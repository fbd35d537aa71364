package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var (
	_ repository.WorkRepository = (*WorkRepo)(nil)
	_ repository.PartRepository = (*PartRepo)(nil)
)

// WorkRepo líneas de mano de obra (order_works).
type WorkRepo struct {
	q Querier
}

// NewWorkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkRepository(q Querier) *WorkRepo {
	return &WorkRepo{q: q}
}

const workColumns = `id, order_id, service_id, service_name, unit_price_cents, quantity, performer_id,
	commission_pct_snapshot, commission_cents_snapshot, created_at, updated_at`

func scanWork(row interface{ Scan(dest ...any) error }) (*entity.OrderWork, error) {
	var w entity.OrderWork
	var serviceID *string
	if err := row.Scan(&w.ID, &w.OrderID, &serviceID, &w.ServiceName, &w.UnitPriceCents, &w.Quantity,
		&w.PerformerID, &w.CommissionPctSnapshot, &w.CommissionCentsSnapshot, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	w.Source = entity.SourceFromServiceID(serviceID)
	return &w, nil
}

// Create inserta la línea con su snapshot de comisión.
func (r *WorkRepo) Create(ctx context.Context, w *entity.OrderWork) error {
	query := `
		INSERT INTO order_works (` + workColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		w.ID, w.OrderID, entity.ServiceIDOf(w.Source), w.ServiceName, w.UnitPriceCents, w.Quantity,
		w.PerformerID, w.CommissionPctSnapshot, w.CommissionCentsSnapshot, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return wrapWrite("insert order work", "línea "+w.ID, err)
	}
	return nil
}

// GetByID línea dentro de la orden indicada.
func (r *WorkRepo) GetByID(ctx context.Context, orderID, id string) (*entity.OrderWork, error) {
	w, err := scanWork(r.q.QueryRow(ctx,
		`SELECT `+workColumns+` FROM order_works WHERE id = $1 AND order_id = $2`, id, orderID))
	return noRows(w, err, "get order work")
}

// Update reescribe la línea completa (nombre, precio, cantidad, ejecutor y snapshot).
func (r *WorkRepo) Update(ctx context.Context, w *entity.OrderWork) error {
	query := `
		UPDATE order_works
		SET service_id = $2, service_name = $3, unit_price_cents = $4, quantity = $5, performer_id = $6,
		    commission_pct_snapshot = $7, commission_cents_snapshot = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		w.ID, entity.ServiceIDOf(w.Source), w.ServiceName, w.UnitPriceCents, w.Quantity, w.PerformerID,
		w.CommissionPctSnapshot, w.CommissionCentsSnapshot, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order work: %w", err)
	}
	return expectOne(tag, "línea", w.ID)
}

func (r *WorkRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_works WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order work: %w", err)
	}
	return nil
}

// ListByOrder en orden de creación.
func (r *WorkRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderWork, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+workColumns+` FROM order_works WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order works: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderWork
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order work: %w", err)
		}
		list = append(list, w)
	}
	return list, rows.Err()
}

func (r *WorkRepo) SumByOrder(ctx context.Context, orderID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(unit_price_cents * quantity), 0)::BIGINT FROM order_works WHERE order_id = $1`,
		orderID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum order works: %w", err)
	}
	return sum, nil
}

// PartRepo repuestos (order_parts).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

const partColumns = `id, order_id, name, unit_price_cents, quantity, cost_cents, created_at, updated_at`

func scanPart(row interface{ Scan(dest ...any) error }) (*entity.OrderPart, error) {
	var p entity.OrderPart
	if err := row.Scan(&p.ID, &p.OrderID, &p.Name, &p.UnitPriceCents, &p.Quantity, &p.CostCents,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PartRepo) Create(ctx context.Context, p *entity.OrderPart) error {
	query := `
		INSERT INTO order_parts (` + partColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrderID, p.Name, p.UnitPriceCents, p.Quantity, p.CostCents, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return wrapWrite("insert order part", "repuesto "+p.ID, err)
	}
	return nil
}

func (r *PartRepo) GetByID(ctx context.Context, orderID, id string) (*entity.OrderPart, error) {
	p, err := scanPart(r.q.QueryRow(ctx,
		`SELECT `+partColumns+` FROM order_parts WHERE id = $1 AND order_id = $2`, id, orderID))
	return noRows(p, err, "get order part")
}

func (r *PartRepo) Update(ctx context.Context, p *entity.OrderPart) error {
	query := `
		UPDATE order_parts
		SET name = $2, unit_price_cents = $3, quantity = $4, cost_cents = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Name, p.UnitPriceCents, p.Quantity, p.CostCents, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order part: %w", err)
	}
	return expectOne(tag, "repuesto", p.ID)
}

func (r *PartRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_parts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order part: %w", err)
	}
	return nil
}

func (r *PartRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderPart, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+partColumns+` FROM order_parts WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderPart
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order part: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartRepo) SumByOrder(ctx context.Context, orderID string) (int64, error) {
	var sum int64
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(unit_price_cents * quantity), 0)::BIGINT FROM order_parts WHERE order_id = $1`,
		orderID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum order parts: %w", err)
	}
	return sum, nil
}
