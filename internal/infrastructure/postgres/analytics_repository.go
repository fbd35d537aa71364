package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/taller-api/internal/domain/analytics"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para reportes del taller y comisiones.
// Los buckets se calculan en UTC; date_trunc('week') empieza en lunes.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// LaborByBucket mano de obra de órdenes pagadas agrupada por paid_at.
func (r *AnalyticsRepo) LaborByBucket(ctx context.Context, rg analytics.Range, b analytics.Bucket) ([]repository.BucketAmount, error) {
	const query = `
	SELECT date_trunc($3, o.paid_at AT TIME ZONE 'UTC') AS bucket,
	       SUM(o.labor_subtotal_cents)                  AS cents
	FROM orders o
	WHERE o.status = 'PAID'
	  AND o.paid_at BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY 1`
	return r.buckets(ctx, "analytics.LaborByBucket", query, rg.From, rg.To, string(b))
}

// CommissionsByBucket suma de snapshots de comisión de las líneas de órdenes pagadas.
func (r *AnalyticsRepo) CommissionsByBucket(ctx context.Context, rg analytics.Range, b analytics.Bucket) ([]repository.BucketAmount, error) {
	const query = `
	SELECT date_trunc($3, o.paid_at AT TIME ZONE 'UTC') AS bucket,
	       SUM(w.commission_cents_snapshot)             AS cents
	FROM orders o
	JOIN order_works w ON w.order_id = o.id
	WHERE o.status = 'PAID'
	  AND o.paid_at BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY 1`
	return r.buckets(ctx, "analytics.CommissionsByBucket", query, rg.From, rg.To, string(b))
}

// ExpensesByBucket gastos de orden y generales por fecha del gasto.
func (r *AnalyticsRepo) ExpensesByBucket(ctx context.Context, rg analytics.Range, b analytics.Bucket) ([]repository.BucketAmount, error) {
	const query = `
	SELECT date_trunc($3, e.expense_date AT TIME ZONE 'UTC') AS bucket,
	       SUM(e.amount_cents)                                AS cents
	FROM expenses e
	WHERE e.expense_date BETWEEN $1 AND $2
	GROUP BY 1
	ORDER BY 1`
	return r.buckets(ctx, "analytics.ExpensesByBucket", query, rg.From, rg.To, string(b))
}

func (r *AnalyticsRepo) buckets(ctx context.Context, op, query string, args ...any) ([]repository.BucketAmount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []repository.BucketAmount
	for rows.Next() {
		var start time.Time
		var cents decimal.Decimal
		if err := rows.Scan(&start, &cents); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, repository.BucketAmount{
			Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
			Cents: cents.IntPart(),
		})
	}
	return out, rows.Err()
}

// PerformerRollup mano de obra y comisión por ejecutor en órdenes pagadas.
func (r *AnalyticsRepo) PerformerRollup(ctx context.Context, rg analytics.Range) ([]repository.PerformerTotals, error) {
	const query = `
	SELECT w.performer_id,
	       u.name,
	       SUM(w.unit_price_cents * w.quantity) AS labor_cents,
	       SUM(w.commission_cents_snapshot)     AS commission_cents
	FROM orders o
	JOIN order_works w ON w.order_id = o.id
	JOIN users       u ON u.id       = w.performer_id
	WHERE o.status = 'PAID'
	  AND o.paid_at BETWEEN $1 AND $2
	GROUP BY w.performer_id, u.name`

	rows, err := r.pool.Query(ctx, query, rg.From, rg.To)
	if err != nil {
		return nil, fmt.Errorf("analytics.PerformerRollup: %w", err)
	}
	defer rows.Close()

	var out []repository.PerformerTotals
	for rows.Next() {
		var t repository.PerformerTotals
		var labor, commission decimal.Decimal
		if err := rows.Scan(&t.PerformerID, &t.Name, &labor, &commission); err != nil {
			return nil, fmt.Errorf("analytics.PerformerRollup scan: %w", err)
		}
		t.LaborCents = labor.IntPart()
		t.CommissionCents = commission.IntPart()
		out = append(out, t)
	}
	return out, rows.Err()
}

// PerformerLines detalle por línea para "mi comisión", pagos más recientes primero.
func (r *AnalyticsRepo) PerformerLines(ctx context.Context, rg analytics.Range, performerID string) ([]repository.PerformerLine, error) {
	const query = `
	SELECT o.id, o.title, o.paid_at,
	       w.id, w.service_name, w.unit_price_cents, w.quantity,
	       w.commission_pct_snapshot, w.commission_cents_snapshot
	FROM orders o
	JOIN order_works w ON w.order_id = o.id
	WHERE o.status = 'PAID'
	  AND o.paid_at BETWEEN $1 AND $2
	  AND w.performer_id = $3
	ORDER BY o.paid_at DESC, w.created_at`

	rows, err := r.pool.Query(ctx, query, rg.From, rg.To, performerID)
	if err != nil {
		return nil, fmt.Errorf("analytics.PerformerLines: %w", err)
	}
	defer rows.Close()

	var out []repository.PerformerLine
	for rows.Next() {
		var l repository.PerformerLine
		if err := rows.Scan(&l.OrderID, &l.OrderTitle, &l.PaidAt,
			&l.WorkID, &l.ServiceName, &l.UnitPriceCents, &l.Quantity,
			&l.CommissionPctSnapshot, &l.CommissionCentsSnapshot); err != nil {
			return nil, fmt.Errorf("analytics.PerformerLines scan: %w", err)
		}
		l.PaidAt = l.PaidAt.UTC()
		out = append(out, l)
	}
	return out, rows.Err()
}
