package dto

import "time"

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Title        string `json:"title"`                   // 1..80
	GuitarSerial string `json:"guitar_serial,omitempty"` // ≤80
	Description  string `json:"description,omitempty"`   // ≤2000
}

// UpdateOrderRequest body para PATCH /api/orders/:id (admin).
// nil = no tocar; "" = vaciar (null).
type UpdateOrderRequest struct {
	Title         *string `json:"title"`
	GuitarSerial  *string `json:"guitar_serial"`
	Description   *string `json:"description"`
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
}

// ChangeStatusRequest body para PATCH /api/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderListRequest query de GET /api/orders.
type OrderListRequest struct {
	Q      string   `query:"q"`
	Status []string `query:"status"`
	Mine   bool     `query:"mine"`
}

// ── Responses ─────────────────────────────────────────────────────────────────

// OrderResponse orden con sus totales desnormalizados.
type OrderResponse struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	GuitarSerial       *string          `json:"guitar_serial"`
	Description        *string          `json:"description"`
	CustomerName       *string          `json:"customer_name"`
	CustomerPhone      *string          `json:"customer_phone"`
	Status             string           `json:"status"`
	PaidAt             *time.Time       `json:"paid_at"`
	CreatedByID        string           `json:"created_by_id"`
	LaborSubtotalCents int64            `json:"labor_subtotal_cents"`
	PartsSubtotalCents int64            `json:"parts_subtotal_cents"`
	InvoiceTotalCents  int64            `json:"invoice_total_cents"`
	OrderExpensesCents int64            `json:"order_expenses_cents"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
	LastComment        *CommentResponse `json:"last_comment,omitempty"`
}

// OrderDetailResponse detalle completo para GET /api/orders/:id.
type OrderDetailResponse struct {
	OrderResponse
	Works    []WorkResponse     `json:"works"`
	Parts    []PartResponse     `json:"parts"`
	Expenses []ExpenseResponse  `json:"expenses"`
	Comments []CommentResponse  `json:"comments"`
	Audit    []AuditLogResponse `json:"audit"` // últimas 50 entradas
}
