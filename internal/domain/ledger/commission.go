// Package ledger reúne las reglas de negocio puras del libro de órdenes:
// snapshot de comisión y bloqueo por pago.
package ledger

import (
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
)

// Snapshot congela el porcentaje vigente del ejecutor y calcula la comisión de la línea.
func Snapshot(performer *entity.User, unitPriceCents int64, quantity int) (pct int, cents int64) {
	pct = performer.EffectiveCommissionPct()
	return pct, CommissionFor(pct, unitPriceCents, quantity)
}

// CommissionFor comisión de una línea con un porcentaje ya congelado.
func CommissionFor(pct int, unitPriceCents int64, quantity int) int64 {
	return money.Commission(money.LineTotal(unitPriceCents, quantity), pct)
}
