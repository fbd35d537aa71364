package dto

import "time"

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsRequest parámetros de GET /api/admin/analytics y GET /api/me/commission.
type AnalyticsRequest struct {
	From   string `query:"from"`   // YYYY-MM-DD; por defecto primer día del mes actual
	To     string `query:"to"`     // YYYY-MM-DD inclusivo; por defecto hoy
	Bucket string `query:"bucket"` // day|week|month
}

// RangeDTO rango efectivamente consultado.
type RangeDTO struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Bucket string `json:"bucket"`
}

// ── Taller ────────────────────────────────────────────────────────────────────

// ShopTotalsDTO totales del rango. net = labor - comisiones - gastos.
type ShopTotalsDTO struct {
	LaborRevenuePaidCents int64 `json:"labor_revenue_paid_cents"`
	CommissionsPaidCents  int64 `json:"commissions_paid_cents"`
	ExpensesCents         int64 `json:"expenses_cents"`
	NetProfitCents        int64 `json:"net_profit_cents"`
}

// ShopSeriesPointDTO punto de la serie; existe aunque el bucket esté vacío.
type ShopSeriesPointDTO struct {
	BucketStart time.Time `json:"bucket_start"`
	ShopTotalsDTO
}

// MasterTotalsDTO acumulado por ejecutor.
type MasterTotalsDTO struct {
	PerformerID     string `json:"performer_id"`
	Name            string `json:"name"`
	LaborCents      int64  `json:"labor_cents"`
	CommissionCents int64  `json:"commission_cents"`
}

// ShopAnalyticsResponse respuesta de GET /api/admin/analytics.
type ShopAnalyticsResponse struct {
	Range    RangeDTO             `json:"range"`
	Totals   ShopTotalsDTO        `json:"totals"`
	Series   []ShopSeriesPointDTO `json:"series"`
	ByMaster []MasterTotalsDTO    `json:"by_master"`
}

// ── Comisión propia ───────────────────────────────────────────────────────────

// CommissionTotalsDTO totales del ejecutor.
type CommissionTotalsDTO struct {
	CommissionCents int64 `json:"commission_cents"`
	LaborCents      int64 `json:"labor_cents"`
}

// CommissionSeriesPointDTO punto de la serie del ejecutor.
type CommissionSeriesPointDTO struct {
	BucketStart time.Time `json:"bucket_start"`
	CommissionTotalsDTO
}

// CommissionLineDTO línea de trabajo pagada.
type CommissionLineDTO struct {
	WorkID                  string `json:"work_id"`
	ServiceName             string `json:"service_name"`
	UnitPriceCents          int64  `json:"unit_price_cents"`
	Quantity                int    `json:"quantity"`
	LineTotalCents          int64  `json:"line_total_cents"`
	CommissionPctSnapshot   int    `json:"commission_pct_snapshot"`
	CommissionCentsSnapshot int64  `json:"commission_cents_snapshot"`
}

// CommissionOrderDTO orden pagada con las líneas del ejecutor.
type CommissionOrderDTO struct {
	OrderID         string              `json:"order_id"`
	Title           string              `json:"title"`
	PaidAt          time.Time           `json:"paid_at"`
	CommissionCents int64               `json:"commission_cents"`
	LaborCents      int64               `json:"labor_cents"`
	Lines           []CommissionLineDTO `json:"lines"`
}

// MyCommissionResponse respuesta de GET /api/me/commission.
type MyCommissionResponse struct {
	Range   RangeDTO                   `json:"range"`
	Totals  CommissionTotalsDTO        `json:"totals"`
	Series  []CommissionSeriesPointDTO `json:"series"`
	ByOrder []CommissionOrderDTO       `json:"by_order"`
}
