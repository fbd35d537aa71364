package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/analytics"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ledger"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: líneas → totales → PAID → candado
// ──────────────────────────────────────────────────────────────────────────────

func TestScenario_OrdenCompletaHastaPagada(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	work, err := f.works.AddFromService(ctx, f.admin, orderID, dto.AddWorkFromServiceRequest{
		ServiceID:   f.service.ID,
		PerformerID: f.master.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), work.UnitPriceCents, "sin precio explícito usa el del servicio")
	assert.Equal(t, 1, work.Quantity)
	assert.Equal(t, 40, work.CommissionPctSnapshot)
	assert.Equal(t, int64(40000), work.CommissionCentsSnapshot)
	assert.Equal(t, int64(100000), f.order(t, orderID).LaborSubtotalCents)

	_, err = f.parts.Add(ctx, f.admin, orderID, dto.AddPartRequest{Name: "Cuerdas", UnitPriceCents: 50000, Quantity: ptr(2)})
	require.NoError(t, err)

	o := f.order(t, orderID)
	assert.Equal(t, int64(100000), o.PartsSubtotalCents)
	assert.Equal(t, int64(200000), o.InvoiceTotalCents)

	paid, err := f.orders.ChangeStatus(ctx, f.admin, orderID, dto.ChangeStatusRequest{Status: "PAID"})
	require.NoError(t, err)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, f.clock.Now(), *paid.PaidAt)

	report, err := analytics.NewUseCase(f.store, f.clock.Now).Shop(ctx, dto.AnalyticsRequest{
		From: "2024-03-01", To: "2024-03-31", Bucket: "month",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100000), report.Totals.LaborRevenuePaidCents)
	assert.Equal(t, int64(40000), report.Totals.CommissionsPaidCents)
	assert.Equal(t, int64(0), report.Totals.ExpensesCents)
	assert.Equal(t, int64(60000), report.Totals.NetProfitCents)
	require.Len(t, report.ByMaster, 1)
	assert.Equal(t, f.master.UserID, report.ByMaster[0].PerformerID)
	assert.Equal(t, int64(100000), report.ByMaster[0].LaborCents)
	assert.Equal(t, int64(40000), report.ByMaster[0].CommissionCents)

	_, err = f.works.AddCustom(ctx, f.master, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Extra", PerformerID: f.master.UserID, UnitPriceCents: 1000,
	})
	assert.ErrorIs(t, err, domain.ErrOrderLocked)
}

func TestLines_PrecioSobreElTopeSeRechaza(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	_, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: money.MaxCents + 1, Quantity: ptr(2),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.parts.Add(ctx, f.admin, orderID, dto.AddPartRequest{Name: "Pastilla", UnitPriceCents: money.MaxCents + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.parts.Add(ctx, f.admin, orderID, dto.AddPartRequest{Name: "Pastilla", UnitPriceCents: 1000, CostCents: ptr(money.MaxCents + 1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	o := f.order(t, orderID)
	assert.Equal(t, int64(0), o.LaborSubtotalCents)
	assert.Equal(t, int64(0), o.InvoiceTotalCents)

	work, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: money.MaxCents, Quantity: ptr(999),
	})
	require.NoError(t, err, "el tope exacto con la cantidad máxima no desborda")
	line := money.LineTotal(money.MaxCents, 999)
	assert.Positive(t, line)
	assert.Equal(t, money.Commission(line, 40), work.CommissionCentsSnapshot)
	assert.Equal(t, line, f.order(t, orderID).LaborSubtotalCents)
}

func TestChangeStatus_SalirDePaidLimpiaPaidAt(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	_, err := f.orders.ChangeStatus(ctx, f.admin, orderID, dto.ChangeStatusRequest{Status: "PAID"})
	require.NoError(t, err)
	back, err := f.orders.ChangeStatus(ctx, f.admin, orderID, dto.ChangeStatusRequest{Status: "in_progress"})
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", back.Status)
	assert.Nil(t, back.PaidAt)

	rows := f.auditRows(t, orderID)
	require.NotEmpty(t, rows)
	last := rows[0]
	assert.Equal(t, entity.ActionStatusChange, last.Action)
	changed, ok := last.Diff.(audit.Changed)
	require.True(t, ok)
	assert.Equal(t, "PAID", changed["status"].From)
	assert.Equal(t, "IN_PROGRESS", changed["status"].To)
	assert.NotNil(t, changed["paidAt"].From)
	assert.Nil(t, changed["paidAt"].To)
}

func TestChangeStatus_NoAdminNoTocaPaid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	_, err := f.orders.ChangeStatus(ctx, f.master, orderID, dto.ChangeStatusRequest{Status: "READY_FOR_PICKUP"})
	require.NoError(t, err, "estados intermedios son libres")

	_, err = f.orders.ChangeStatus(ctx, f.master, orderID, dto.ChangeStatusRequest{Status: "PAID"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.StatusReadyForPickup, f.order(t, orderID).Status)
}

func TestChangeStatus_MismoEstadoNoAudita(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)
	before := len(f.auditRows(t, orderID))

	_, err := f.orders.ChangeStatus(ctx, f.master, orderID, dto.ChangeStatusRequest{Status: "NEW"})
	require.NoError(t, err)
	assert.Len(t, f.auditRows(t, orderID), before)
}

// ──────────────────────────────────────────────────────────────────────────────
// Congelamiento de comisión
// ──────────────────────────────────────────────────────────────────────────────

func TestCommissionFreeze_CambioDeTasaNoAfectaLineasExistentes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	orderID := f.newOrder(t)

	work, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Ajuste de cejuela", PerformerID: f.master.UserID, UnitPriceCents: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), work.CommissionCentsSnapshot)

	f.setCommission(t, f.master.UserID, 20)

	updated, err := f.works.Update(ctx, f.admin, orderID, work.ID, dto.UpdateWorkRequest{Quantity: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.CommissionPctSnapshot, "el porcentaje congelado no cambia")
	assert.Equal(t, int64(2000), updated.CommissionCentsSnapshot)
}

func TestCommissionFreeze_ReasignarEjecutorTomaSuTasaActual(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	other := f.addUser(t, "master2", false, 35)
	orderID := f.newOrder(t)

	work, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 10000,
	})
	require.NoError(t, err)

	updated, err := f.works.Update(ctx, f.admin, orderID, work.ID, dto.UpdateWorkRequest{PerformerID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.PerformerID)
	assert.Equal(t, 35, updated.CommissionPctSnapshot)
	assert.Equal(t, int64(3500), updated.CommissionCentsSnapshot)
}

// Un admin que revierte PAID y agrega una línea congela la tasa vigente en ese momento.
func TestCommissionFreeze_ReabrirOrdenUsaTasaVigente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	orderID := f.newOrder(t)

	_, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 10000,
	})
	require.NoError(t, err)
	_, err = f.orders.ChangeStatus(ctx, f.admin, orderID, dto.ChangeStatusRequest{Status: "PAID"})
	require.NoError(t, err)

	f.setCommission(t, f.master.UserID, 20)
	_, err = f.orders.ChangeStatus(ctx, f.admin, orderID, dto.ChangeStatusRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)

	added, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Trastes", PerformerID: f.master.UserID, UnitPriceCents: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, added.CommissionPctSnapshot)

	detail, err := f.orders.Get(ctx, f.admin, orderID)
	require.NoError(t, err)
	require.Len(t, detail.Works, 2)
	assert.Equal(t, 10, detail.Works[0].CommissionPctSnapshot)
	assert.Equal(t, 20, detail.Works[1].CommissionPctSnapshot)
}

func TestWorkUpdate_NombreSoloEnTrabajoLibre(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	work, err := f.works.AddFromService(ctx, f.admin, orderID, dto.AddWorkFromServiceRequest{
		ServiceID: f.service.ID, PerformerID: f.master.UserID,
	})
	require.NoError(t, err)

	_, err = f.works.Update(ctx, f.admin, orderID, work.ID, dto.UpdateWorkRequest{ServiceName: ptr("Otro")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestWorkUpdate_SinCambiosNoAudita(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	work, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 5000,
	})
	require.NoError(t, err)
	before := len(f.auditRows(t, orderID))

	_, err = f.works.Update(ctx, f.admin, orderID, work.ID, dto.UpdateWorkRequest{Quantity: ptr(1), UnitPriceCents: ptr(int64(5000))})
	require.NoError(t, err)
	assert.Len(t, f.auditRows(t, orderID), before)
}

// ──────────────────────────────────────────────────────────────────────────────
// Candado de orden pagada
// ──────────────────────────────────────────────────────────────────────────────

func TestLock_OrdenPagadaRechazaTodaMutacion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	work, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 10000,
	})
	require.NoError(t, err)
	part, err := f.parts.Add(ctx, f.admin, orderID, dto.AddPartRequest{Name: "Cejuela", UnitPriceCents: 3000})
	require.NoError(t, err)
	exp, err := f.expenses.AddToOrder(ctx, f.master, orderID, dto.CreateExpenseRequest{Title: "Envío", AmountCents: 700})
	require.NoError(t, err)

	_, err = f.orders.ChangeStatus(ctx, f.admin, orderID, dto.ChangeStatusRequest{Status: "PAID"})
	require.NoError(t, err)

	totals := f.order(t, orderID).Totals()
	auditBefore := len(f.auditRows(t, orderID))

	for _, actor := range []entity.Actor{f.master, f.admin} {
		attempts := map[string]error{}
		_, attempts["work add"] = f.works.AddCustom(ctx, actor, orderID, dto.AddCustomWorkRequest{
			ServiceName: "X", PerformerID: f.master.UserID, UnitPriceCents: 1,
		})
		_, attempts["work from service"] = f.works.AddFromService(ctx, actor, orderID, dto.AddWorkFromServiceRequest{
			ServiceID: f.service.ID, PerformerID: f.master.UserID,
		})
		_, attempts["work update"] = f.works.Update(ctx, actor, orderID, work.ID, dto.UpdateWorkRequest{Quantity: ptr(3)})
		attempts["work delete"] = f.works.Delete(ctx, actor, orderID, work.ID)
		_, attempts["part add"] = f.parts.Add(ctx, actor, orderID, dto.AddPartRequest{Name: "X", UnitPriceCents: 1})
		_, attempts["part update"] = f.parts.Update(ctx, actor, orderID, part.ID, dto.UpdatePartRequest{Quantity: ptr(5)})
		attempts["part delete"] = f.parts.Delete(ctx, actor, orderID, part.ID)
		_, attempts["expense add"] = f.expenses.AddToOrder(ctx, actor, orderID, dto.CreateExpenseRequest{Title: "X", AmountCents: 1})
		_, attempts["expense update"] = f.expenses.UpdateOrderExpense(ctx, actor, orderID, exp.ID, dto.UpdateExpenseRequest{AmountCents: ptr(int64(9))})
		attempts["expense delete"] = f.expenses.DeleteOrderExpense(ctx, actor, orderID, exp.ID)
		_, attempts["comment"] = f.comments.Add(ctx, actor, orderID, dto.CreateCommentRequest{Text: "hola"})
		_, attempts["order update"] = f.orders.Update(ctx, actor, orderID, dto.UpdateOrderRequest{Title: ptr("Nuevo")})

		for op, err := range attempts {
			require.Error(t, err, op)
			if op == "order update" && !actor.IsAdmin {
				assert.ErrorIs(t, err, domain.ErrForbidden, op)
				continue
			}
			assert.ErrorIs(t, err, domain.ErrConflict, "%s (admin=%v)", op, actor.IsAdmin)
		}
	}

	assert.Equal(t, totals, f.order(t, orderID).Totals(), "los totales no cambian")
	assert.Len(t, f.auditRows(t, orderID), auditBefore, "no se audita un intento rechazado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recálculo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalc_EsIdempotenteYCoincideConLineas(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	w, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 2500, Quantity: ptr(3),
	})
	require.NoError(t, err)
	_, err = f.parts.Add(ctx, f.admin, orderID, dto.AddPartRequest{Name: "Pastillas", UnitPriceCents: 12000})
	require.NoError(t, err)
	_, err = f.expenses.AddToOrder(ctx, f.admin, orderID, dto.CreateExpenseRequest{Title: "Envío", AmountCents: 1500, ExpenseDate: "2024-03-14"})
	require.NoError(t, err)
	_, err = f.expenses.CreateShop(ctx, f.admin, dto.CreateExpenseRequest{Title: "Alquiler", AmountCents: 900000})
	require.NoError(t, err)
	require.NoError(t, f.works.Delete(ctx, f.admin, orderID, w.ID))

	want := entity.OrderTotals{
		LaborSubtotalCents: 0,
		PartsSubtotalCents: 12000,
		InvoiceTotalCents:  12000,
		OrderExpensesCents: 1500,
	}
	assert.Equal(t, want, f.order(t, orderID).Totals(), "el gasto general no afecta a la orden")

	for i := 0; i < 2; i++ {
		var got entity.OrderTotals
		require.NoError(t, f.store.Run(ctx, func(r ports.Repos) error {
			var err error
			got, err = ledger.Recalc(ctx, r, orderID)
			return err
		}))
		assert.Equal(t, want, got)
	}
	assert.Equal(t, want, f.order(t, orderID).Totals())
}

// ──────────────────────────────────────────────────────────────────────────────
// Auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestAudit_CadaMutacionDejaUnaFila(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	w, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 1000,
	})
	require.NoError(t, err)
	_, err = f.works.Update(ctx, f.admin, orderID, w.ID, dto.UpdateWorkRequest{UnitPriceCents: ptr(int64(2000))})
	require.NoError(t, err)
	require.NoError(t, f.works.Delete(ctx, f.admin, orderID, w.ID))

	rows := f.auditRows(t, orderID)
	require.Len(t, rows, 4)
	assert.Equal(t, entity.ActionDelete, rows[0].Action)
	assert.Equal(t, audit.Deleted{ID: w.ID}, rows[0].Diff)

	upd, ok := rows[1].Diff.(audit.Changed)
	require.True(t, ok)
	assert.Equal(t, audit.Change{From: int64(1000), To: int64(2000)}, upd["unitPriceCents"])
	assert.Contains(t, upd, "commissionCentsSnapshot")
	assert.NotContains(t, upd, "quantity")

	assert.Equal(t, entity.ActionCreate, rows[2].Action)
	assert.Equal(t, entity.AuditOrderWork, rows[2].Entity)
	assert.Equal(t, entity.AuditOrder, rows[3].Entity)
}

func TestAudit_RechazoDentroDeTransaccionNoEscribeNada(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	inactive := f.addUser(t, "ex-master", false, 30)
	require.NoError(t, f.store.Run(ctx, func(r ports.Repos) error {
		u, _ := r.Users.GetByID(ctx, inactive.ID)
		u.IsActive = false
		return r.Users.Update(ctx, u)
	}))
	orderID := f.newOrder(t)
	before := len(f.auditRows(t, orderID))

	_, err := f.works.AddCustom(ctx, f.admin, orderID, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: inactive.ID, UnitPriceCents: 1000,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	detail, err := f.orders.Get(ctx, f.admin, orderID)
	require.NoError(t, err)
	assert.Empty(t, detail.Works)
	assert.Len(t, f.auditRows(t, orderID), before)
}

func TestComment_TextoLargoSeTruncaEnAuditoria(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	long := make([]rune, 300)
	for i := range long {
		long[i] = 'ж'
	}
	c, err := f.comments.Add(ctx, f.master, orderID, dto.CreateCommentRequest{Text: string(long)})
	require.NoError(t, err)
	assert.Equal(t, string(long), c.Text)

	rows := f.auditRows(t, orderID)
	created, ok := rows[0].Diff.(audit.Created)
	require.True(t, ok)
	text := created["text"].(string)
	assert.Equal(t, 203, len([]rune(text)))
	assert.Equal(t, "...", text[len(text)-3:])
}

// ──────────────────────────────────────────────────────────────────────────────
// Repuestos, gastos y órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestPart_CostoOcultoParaNoAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	_, err := f.parts.Add(ctx, f.admin, orderID, dto.AddPartRequest{Name: "Puente", UnitPriceCents: 9000, CostCents: ptr(int64(6000))})
	require.NoError(t, err)

	asMaster, err := f.orders.Get(ctx, f.master, orderID)
	require.NoError(t, err)
	require.Len(t, asMaster.Parts, 1)
	assert.Nil(t, asMaster.Parts[0].CostCents)

	asAdmin, err := f.orders.Get(ctx, f.admin, orderID)
	require.NoError(t, err)
	require.NotNil(t, asAdmin.Parts[0].CostCents)
	assert.Equal(t, int64(6000), *asAdmin.Parts[0].CostCents)

	upd, err := f.parts.Update(ctx, f.admin, orderID, asAdmin.Parts[0].ID, dto.UpdatePartRequest{CostCents: dto.Null[int64]()})
	require.NoError(t, err)
	assert.Nil(t, upd.CostCents)
}

func TestPart_CantidadFueraDeRango(t *testing.T) {
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	_, err := f.parts.Add(context.Background(), f.admin, orderID, dto.AddPartRequest{Name: "X", UnitPriceCents: 1, Quantity: ptr(1000)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.parts.Add(context.Background(), f.admin, orderID, dto.AddPartRequest{Name: "X", UnitPriceCents: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExpense_SoloCreadorOAdminEdita(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	other := f.addUser(t, "master2", false, 20)
	otherActor := entity.Actor{UserID: other.ID, Name: other.Name}

	exp, err := f.expenses.CreateShop(ctx, f.admin, dto.CreateExpenseRequest{Title: "Luz", AmountCents: 5000, ExpenseDate: "2024-03-01"})
	require.NoError(t, err)
	assert.Nil(t, exp.OrderID)

	_, err = f.expenses.UpdateShop(ctx, otherActor, exp.ID, dto.UpdateExpenseRequest{AmountCents: ptr(int64(1))})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.expenses.CreateShop(ctx, f.master, dto.CreateExpenseRequest{Title: "Luz", AmountCents: 5000})
	assert.ErrorIs(t, err, domain.ErrForbidden, "crear gastos generales es sólo de admin")

	require.NoError(t, f.expenses.DeleteShop(ctx, f.admin, exp.ID))
}

func TestExpense_ListadoGeneralPorRango(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	for _, d := range []string{"2024-02-28", "2024-03-01", "2024-03-10", "2024-03-11"} {
		_, err := f.expenses.CreateShop(ctx, f.admin, dto.CreateExpenseRequest{Title: "Gasto " + d, AmountCents: 100, ExpenseDate: d})
		require.NoError(t, err)
	}

	rows, err := f.expenses.ListShop(ctx, f.admin, dto.ExpenseListRequest{From: "2024-03-01", To: "2024-03-10"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Gasto 2024-03-10", rows[0].Title)
	assert.Equal(t, "Gasto 2024-03-01", rows[1].Title)
}

func TestExpense_FechaInvalida(t *testing.T) {
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	_, err := f.expenses.AddToOrder(context.Background(), f.admin, orderID, dto.CreateExpenseRequest{Title: "X", AmountCents: 10, ExpenseDate: "14/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.expenses.AddToOrder(context.Background(), f.admin, orderID, dto.CreateExpenseRequest{Title: "X", AmountCents: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderUpdate_VaciarCampoYTelefono(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)
	orderID := f.newOrder(t)

	upd, err := f.orders.Update(ctx, f.admin, orderID, dto.UpdateOrderRequest{
		GuitarSerial:  ptr(""),
		CustomerName:  ptr("Iván"),
		CustomerPhone: ptr("+7 (999) 123-45-67"),
	})
	require.NoError(t, err)
	assert.Nil(t, upd.GuitarSerial)
	require.NotNil(t, upd.CustomerPhone)

	_, err = f.orders.Update(ctx, f.admin, orderID, dto.UpdateOrderRequest{CustomerPhone: ptr("llamar")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.orders.Update(ctx, f.master, orderID, dto.UpdateOrderRequest{Title: ptr("X")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestOrderList_FiltrosYUltimoComentario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 40)

	first := f.newOrder(t)
	f.clock.Advance(time.Minute)
	second, err := f.orders.Create(ctx, f.admin, dto.CreateOrderRequest{Title: "Gibson Les Paul"})
	require.NoError(t, err)

	_, err = f.works.AddCustom(ctx, f.admin, first, dto.AddCustomWorkRequest{
		ServiceName: "Setup", PerformerID: f.master.UserID, UnitPriceCents: 1,
	})
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, f.master, first, dto.CreateCommentRequest{Text: "listo"})
	require.NoError(t, err)

	all, err := f.orders.List(ctx, f.admin, dto.OrderListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "updatedAt desc")
	require.NotNil(t, all[1].LastComment)
	assert.Equal(t, "listo", all[1].LastComment.Text)

	mine, err := f.orders.List(ctx, f.master, dto.OrderListRequest{Mine: true})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first, mine[0].ID)

	byQuery, err := f.orders.List(ctx, f.admin, dto.OrderListRequest{Q: "sn-001"})
	require.NoError(t, err)
	require.Len(t, byQuery, 1)

	_, err = f.orders.List(ctx, f.admin, dto.OrderListRequest{Status: []string{"LOST"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
