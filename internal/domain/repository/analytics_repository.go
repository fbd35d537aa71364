package repository

import (
	"context"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/analytics"
)

// BucketAmount suma agrupada por inicio de bucket (UTC).
type BucketAmount struct {
	Start time.Time
	Cents int64
}

// PerformerTotals acumulado de un ejecutor sobre órdenes pagadas.
type PerformerTotals struct {
	PerformerID     string
	Name            string
	LaborCents      int64
	CommissionCents int64
}

// PerformerLine línea de trabajo de un ejecutor en una orden pagada.
type PerformerLine struct {
	OrderID                 string
	OrderTitle              string
	PaidAt                  time.Time
	WorkID                  string
	ServiceName             string
	UnitPriceCents          int64
	Quantity                int
	CommissionPctSnapshot   int
	CommissionCentsSnapshot int64
}

// AnalyticsRepository consultas de lectura para reportes. No modifican datos
// y se ejecutan fuera de las transacciones del libro.
// Sólo cuentan órdenes PAID con paidAt dentro del rango; los gastos se filtran por expenseDate.
type AnalyticsRepository interface {
	// LaborByBucket suma laborSubtotalCents de órdenes pagadas.
	LaborByBucket(ctx context.Context, r analytics.Range, b analytics.Bucket) ([]BucketAmount, error)
	// CommissionsByBucket suma commissionCentsSnapshot de las líneas de órdenes pagadas.
	CommissionsByBucket(ctx context.Context, r analytics.Range, b analytics.Bucket) ([]BucketAmount, error)
	// ExpensesByBucket suma gastos de orden y generales.
	ExpensesByBucket(ctx context.Context, r analytics.Range, b analytics.Bucket) ([]BucketAmount, error)
	// PerformerRollup un registro por ejecutor con al menos una línea pagada en el rango.
	PerformerRollup(ctx context.Context, r analytics.Range) ([]PerformerTotals, error)
	// PerformerLines líneas pagadas de un único ejecutor.
	PerformerLines(ctx context.Context, r analytics.Range, performerID string) ([]PerformerLine, error)
}
