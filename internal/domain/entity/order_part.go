package entity

import "time"

// OrderPart repuesto cobrado en una orden.
type OrderPart struct {
	ID             string
	OrderID        string
	Name           string
	UnitPriceCents int64
	Quantity       int
	CostCents      *int64 // costo interno, sólo visible para admin
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
