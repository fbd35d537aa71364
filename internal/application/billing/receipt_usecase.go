package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/money"
)

// ReceiptUseCase genera el recibo PDF de una orden con sus líneas y totales.
type ReceiptUseCase struct {
	tx        ports.TxRunner
	generator ReceiptGenerator
	shopName  string
	now       func() time.Time
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(tx ports.TxRunner, generator ReceiptGenerator, shopName string, now func() time.Time) *ReceiptUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReceiptUseCase{tx: tx, generator: generator, shopName: shopName, now: now}
}

// Download arma el recibo dentro de una transacción de lectura y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
func (uc *ReceiptUseCase) Download(ctx context.Context, orderID string) (pdfBytes []byte, filename string, err error) {
	receipt, err := uc.Build(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}
	return pdfBytes, ReceiptFilename(orderID), nil
}

// Build reúne orden, líneas y repuestos; los totales son los persistidos por el recálculo.
func (uc *ReceiptUseCase) Build(ctx context.Context, orderID string) (*Receipt, error) {
	var out *Receipt
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		o, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.NotFound("orden")
		}
		works, err := r.Works.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		parts, err := r.Parts.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}

		rc := &Receipt{
			ShopName:           uc.shopName,
			OrderID:            o.ID,
			Title:              o.Title,
			GuitarSerial:       deref(o.GuitarSerial),
			CustomerName:       deref(o.CustomerName),
			CustomerPhone:      deref(o.CustomerPhone),
			Status:             string(o.Status),
			PaidAt:             o.PaidAt,
			IssuedAt:           uc.now().UTC(),
			LaborSubtotalCents: o.LaborSubtotalCents,
			PartsSubtotalCents: o.PartsSubtotalCents,
			InvoiceTotalCents:  o.InvoiceTotalCents,
		}
		for _, w := range works {
			rc.Works = append(rc.Works, ReceiptLine{
				Name:           w.ServiceName,
				UnitPriceCents: w.UnitPriceCents,
				Quantity:       w.Quantity,
				TotalCents:     money.LineTotal(w.UnitPriceCents, w.Quantity),
			})
		}
		for _, p := range parts {
			rc.Parts = append(rc.Parts, ReceiptLine{
				Name:           p.Name,
				UnitPriceCents: p.UnitPriceCents,
				Quantity:       p.Quantity,
				TotalCents:     money.LineTotal(p.UnitPriceCents, p.Quantity),
			})
		}
		out = rc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReceiptFilename nombre sugerido para Content-Disposition.
func ReceiptFilename(orderID string) string {
	short := orderID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("recibo_%s.pdf", short)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
