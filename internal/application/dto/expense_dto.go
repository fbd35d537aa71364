package dto

import "time"

// CreateExpenseRequest body para crear un gasto (de orden o general).
type CreateExpenseRequest struct {
	Title       string `json:"title"`        // 1..160
	AmountCents int64  `json:"amount_cents"` // > 0
	ExpenseDate string `json:"expense_date"` // YYYY-MM-DD o RFC3339; vacío = ahora
}

// UpdateExpenseRequest body PATCH de gasto.
type UpdateExpenseRequest struct {
	Title       *string `json:"title"`
	AmountCents *int64  `json:"amount_cents"`
	ExpenseDate *string `json:"expense_date"`
}

// ExpenseListRequest query de GET /api/expenses.
type ExpenseListRequest struct {
	From string `query:"from"` // YYYY-MM-DD
	To   string `query:"to"`   // YYYY-MM-DD, inclusivo
}

// ExpenseResponse gasto; order_id null para gastos generales.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	OrderID     *string   `json:"order_id"`
	Title       string    `json:"title"`
	AmountCents int64     `json:"amount_cents"`
	ExpenseDate time.Time `json:"expense_date"`
	CreatedByID string    `json:"created_by_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
