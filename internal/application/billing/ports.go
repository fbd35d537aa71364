package billing

import (
	"context"
	"time"
)

// ReceiptLine fila de la tabla del recibo (mano de obra o repuesto).
type ReceiptLine struct {
	Name           string
	UnitPriceCents int64
	Quantity       int
	TotalCents     int64
}

// Receipt datos ya resueltos que necesita el generador; no contiene costos internos.
type Receipt struct {
	ShopName      string
	OrderID       string
	Title         string
	GuitarSerial  string
	CustomerName  string
	CustomerPhone string
	Status        string
	PaidAt        *time.Time
	IssuedAt      time.Time

	Works []ReceiptLine
	Parts []ReceiptLine

	LaborSubtotalCents int64
	PartsSubtotalCents int64
	InvoiceTotalCents  int64
}

// ReceiptGenerator genera la representación PDF del recibo.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *Receipt) ([]byte, error)
}
