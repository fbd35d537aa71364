package entity

import "time"

// OrderStatus estado del ciclo de vida de una orden de trabajo.
type OrderStatus string

const (
	StatusNew            OrderStatus = "NEW"
	StatusInProgress     OrderStatus = "IN_PROGRESS"
	StatusWaitingParts   OrderStatus = "WAITING_PARTS"
	StatusReadyForPickup OrderStatus = "READY_FOR_PICKUP"
	StatusPaid           OrderStatus = "PAID"
)

// OrderStatuses todos los estados válidos, en el orden del flujo de trabajo.
var OrderStatuses = []OrderStatus{StatusNew, StatusInProgress, StatusWaitingParts, StatusReadyForPickup, StatusPaid}

// Valid indica si el estado pertenece al conjunto conocido.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order orden de trabajo del taller (una guitarra, un cliente).
// Los cuatro totales son desnormalizados: sólo los escribe el motor de recálculo.
type Order struct {
	ID            string
	Title         string
	GuitarSerial  *string
	Description   *string
	CustomerName  *string
	CustomerPhone *string
	Status        OrderStatus
	PaidAt        *time.Time
	CreatedByID   string

	LaborSubtotalCents int64
	PartsSubtotalCents int64
	InvoiceTotalCents  int64 // labor + parts
	OrderExpensesCents int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLocked una orden pagada no admite cambios en líneas, repuestos, gastos ni comentarios.
func (o *Order) IsLocked() bool {
	return o.Status == StatusPaid
}

// Totals devuelve los totales actuales de la orden.
func (o *Order) Totals() OrderTotals {
	return OrderTotals{
		LaborSubtotalCents: o.LaborSubtotalCents,
		PartsSubtotalCents: o.PartsSubtotalCents,
		InvoiceTotalCents:  o.InvoiceTotalCents,
		OrderExpensesCents: o.OrderExpensesCents,
	}
}

// OrderTotals totales derivados de una orden.
type OrderTotals struct {
	LaborSubtotalCents int64
	PartsSubtotalCents int64
	InvoiceTotalCents  int64
	OrderExpensesCents int64
}
