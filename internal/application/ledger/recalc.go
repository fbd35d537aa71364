package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

// Recalc vuelve a sumar desde cero las líneas, repuestos y gastos de la orden y escribe
// los cuatro totales en la misma transacción. Nunca ajusta incrementalmente.
// Los gastos generales (sin orden) no participan.
func Recalc(ctx context.Context, r ports.Repos, orderID string) (entity.OrderTotals, error) {
	labor, err := r.Works.SumByOrder(ctx, orderID)
	if err != nil {
		return entity.OrderTotals{}, fmt.Errorf("recalc: sumar trabajos: %w", err)
	}
	parts, err := r.Parts.SumByOrder(ctx, orderID)
	if err != nil {
		return entity.OrderTotals{}, fmt.Errorf("recalc: sumar repuestos: %w", err)
	}
	expenses, err := r.Expenses.SumByOrder(ctx, orderID)
	if err != nil {
		return entity.OrderTotals{}, fmt.Errorf("recalc: sumar gastos: %w", err)
	}
	totals := entity.OrderTotals{
		LaborSubtotalCents: labor,
		PartsSubtotalCents: parts,
		InvoiceTotalCents:  labor + parts,
		OrderExpensesCents: expenses,
	}
	if err := r.Orders.UpdateTotals(ctx, orderID, totals); err != nil {
		return entity.OrderTotals{}, fmt.Errorf("recalc: %w", err)
	}
	return totals, nil
}
