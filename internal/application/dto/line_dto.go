package dto

import "time"

// ── Mano de obra ──────────────────────────────────────────────────────────────

// AddWorkFromServiceRequest body para POST /api/orders/:id/works/from-service.
type AddWorkFromServiceRequest struct {
	ServiceID      string `json:"service_id"`
	PerformerID    string `json:"performer_id"`
	UnitPriceCents *int64 `json:"unit_price_cents"` // nil = precio por defecto del servicio
	Quantity       *int   `json:"quantity"`         // nil = 1
}

// AddCustomWorkRequest body para POST /api/orders/:id/works/custom.
type AddCustomWorkRequest struct {
	ServiceName    string `json:"service_name"` // 1..80
	PerformerID    string `json:"performer_id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       *int   `json:"quantity"`
}

// UpdateWorkRequest body para PATCH /api/orders/:id/works/:workId. Al menos un campo.
type UpdateWorkRequest struct {
	ServiceName    *string `json:"service_name"` // sólo trabajos libres
	UnitPriceCents *int64  `json:"unit_price_cents"`
	Quantity       *int    `json:"quantity"`
	PerformerID    *string `json:"performer_id"`
}

// WorkResponse línea de mano de obra.
type WorkResponse struct {
	ID                      string    `json:"id"`
	OrderID                 string    `json:"order_id"`
	ServiceID               *string   `json:"service_id"`
	ServiceName             string    `json:"service_name"`
	UnitPriceCents          int64     `json:"unit_price_cents"`
	Quantity                int       `json:"quantity"`
	PerformerID             string    `json:"performer_id"`
	CommissionPctSnapshot   int       `json:"commission_pct_snapshot"`
	CommissionCentsSnapshot int64     `json:"commission_cents_snapshot"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// ── Repuestos ─────────────────────────────────────────────────────────────────

// AddPartRequest body para POST /api/orders/:id/parts.
type AddPartRequest struct {
	Name           string `json:"name"` // 1..120
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       *int   `json:"quantity"`
	CostCents      *int64 `json:"cost_cents"`
}

// UpdatePartRequest body para PATCH /api/orders/:id/parts/:partId.
// cost_cents admite null para borrar el costo.
type UpdatePartRequest struct {
	Name           *string         `json:"name"`
	UnitPriceCents *int64          `json:"unit_price_cents"`
	Quantity       *int            `json:"quantity"`
	CostCents      Nullable[int64] `json:"cost_cents"`
}

// PartResponse repuesto; cost_cents sólo se expone a admin.
type PartResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"order_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	CostCents      *int64    `json:"cost_cents,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
