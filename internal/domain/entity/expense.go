package entity

import "time"

// ExpenseScope alcance de un gasto: de una orden o general del taller.
type ExpenseScope interface {
	isExpenseScope()
}

// OrderScope gasto imputado a una orden; entra en OrderExpensesCents.
type OrderScope struct {
	OrderID string
}

// ShopWide gasto general del taller; no afecta totales de ninguna orden.
type ShopWide struct{}

func (OrderScope) isExpenseScope() {}
func (ShopWide) isExpenseScope()   {}

// OrderIDOf devuelve el id de la orden o nil para gastos generales.
func OrderIDOf(scope ExpenseScope) *string {
	if s, ok := scope.(OrderScope); ok {
		id := s.OrderID
		return &id
	}
	return nil
}

// ScopeFromOrderID reconstruye el alcance a partir de la columna order_id.
func ScopeFromOrderID(orderID *string) ExpenseScope {
	if orderID == nil || *orderID == "" {
		return ShopWide{}
	}
	return OrderScope{OrderID: *orderID}
}

// Expense gasto con importe positivo.
type Expense struct {
	ID          string
	Scope       ExpenseScope
	Title       string
	AmountCents int64
	ExpenseDate time.Time
	CreatedByID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelongsTo indica si el gasto está imputado a la orden dada.
func (e *Expense) BelongsTo(orderID string) bool {
	s, ok := e.Scope.(OrderScope)
	return ok && s.OrderID == orderID
}
