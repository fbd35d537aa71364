package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/taller-api/internal/application/analytics"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/infrastructure/memory"
)

func day(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }

// seed dos órdenes pagadas (01 y 10 de marzo) y un gasto general el 05.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	paid1, paid10 := day(1), day(10)
	require.NoError(t, s.Run(ctx, func(r ports.Repos) error {
		require.NoError(t, r.Users.Create(ctx, &entity.User{ID: "p1", Name: "master1", IsActive: true, CommissionPct: 40}))
		require.NoError(t, r.Users.Create(ctx, &entity.User{ID: "p2", Name: "master2", IsActive: true, CommissionPct: 40}))
		require.NoError(t, r.Orders.Create(ctx, &entity.Order{ID: "o1", Title: "Strat", Status: entity.StatusPaid, PaidAt: &paid1, LaborSubtotalCents: 100000}))
		require.NoError(t, r.Orders.Create(ctx, &entity.Order{ID: "o10", Title: "Tele", Status: entity.StatusPaid, PaidAt: &paid10, LaborSubtotalCents: 20000}))
		require.NoError(t, r.Works.Create(ctx, &entity.OrderWork{ID: "w1", OrderID: "o1", PerformerID: "p1", ServiceName: "Diagnostics", UnitPriceCents: 100000, Quantity: 1, CommissionPctSnapshot: 40, CommissionCentsSnapshot: 40000, CreatedAt: paid1}))
		require.NoError(t, r.Works.Create(ctx, &entity.OrderWork{ID: "w2", OrderID: "o10", PerformerID: "p2", ServiceName: "Setup", UnitPriceCents: 10000, Quantity: 2, CommissionPctSnapshot: 40, CommissionCentsSnapshot: 8000, CreatedAt: paid10}))
		require.NoError(t, r.Expenses.Create(ctx, &entity.Expense{ID: "e1", Scope: entity.ShopWide{}, Title: "Luz", AmountCents: 1500, ExpenseDate: day(5)}))
		return nil
	}))
	return s
}

func newUseCase(s *memory.Store) *analytics.UseCase {
	return analytics.NewUseCase(s, func() time.Time { return day(20) })
}

func TestShop_SerieContinuaConBucketsVacios(t *testing.T) {
	uc := newUseCase(seed(t))

	res, err := uc.Shop(context.Background(), dto.AnalyticsRequest{From: "2024-03-01", To: "2024-03-10", Bucket: "day"})
	require.NoError(t, err)

	require.Len(t, res.Series, 10)
	for i, p := range res.Series {
		assert.Equal(t, time.Date(2024, 3, i+1, 0, 0, 0, 0, time.UTC), p.BucketStart)
	}
	assert.Equal(t, int64(100000), res.Series[0].LaborRevenuePaidCents)
	assert.Equal(t, int64(60000), res.Series[0].NetProfitCents)
	for _, p := range res.Series[1:9] {
		if p.BucketStart.Day() == 5 {
			assert.Equal(t, int64(1500), p.ExpensesCents)
			assert.Equal(t, int64(-1500), p.NetProfitCents)
			continue
		}
		assert.Zero(t, p.LaborRevenuePaidCents)
		assert.Zero(t, p.CommissionsPaidCents)
		assert.Zero(t, p.ExpensesCents)
	}
	assert.Equal(t, int64(20000), res.Series[9].LaborRevenuePaidCents)

	assert.Equal(t, dto.ShopTotalsDTO{
		LaborRevenuePaidCents: 120000,
		CommissionsPaidCents:  48000,
		ExpensesCents:         1500,
		NetProfitCents:        70500,
	}, res.Totals)
	assert.Equal(t, dto.RangeDTO{From: "2024-03-01", To: "2024-03-10", Bucket: "day"}, res.Range)

	require.Len(t, res.ByMaster, 2)
	assert.Equal(t, "p1", res.ByMaster[0].PerformerID)
}

func TestShop_SemanasAlineadasAlLunes(t *testing.T) {
	uc := newUseCase(seed(t))

	res, err := uc.Shop(context.Background(), dto.AnalyticsRequest{From: "2024-03-01", To: "2024-03-10", Bucket: "week"})
	require.NoError(t, err)
	// 2024-03-01 es viernes: semanas del 26-feb y del 04-mar.
	require.Len(t, res.Series, 2)
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), res.Series[0].BucketStart)
	assert.Equal(t, int64(100000), res.Series[0].LaborRevenuePaidCents)
	assert.Equal(t, int64(20000), res.Series[1].LaborRevenuePaidCents)
}

func TestShop_RangoInvalido(t *testing.T) {
	uc := newUseCase(seed(t))

	_, err := uc.Shop(context.Background(), dto.AnalyticsRequest{From: "2024-03-10", To: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Shop(context.Background(), dto.AnalyticsRequest{Bucket: "year"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSortMasters_Desempates(t *testing.T) {
	rows := []dto.MasterTotalsDTO{
		{Name: "c", CommissionCents: 10, LaborCents: 100},
		{Name: "b", CommissionCents: 10, LaborCents: 200},
		{Name: "a", CommissionCents: 10, LaborCents: 100},
		{Name: "z", CommissionCents: 50, LaborCents: 1},
	}
	analytics.SortMasters(rows)
	names := []string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name}
	assert.Equal(t, []string{"z", "b", "a", "c"}, names)
}

func TestMyCommission_SoloLineasPropias(t *testing.T) {
	uc := newUseCase(seed(t))

	res, err := uc.MyCommission(context.Background(), entity.Actor{UserID: "p2"}, dto.AnalyticsRequest{From: "2024-03-01", To: "2024-03-31", Bucket: "month"})
	require.NoError(t, err)
	assert.Equal(t, dto.CommissionTotalsDTO{CommissionCents: 8000, LaborCents: 20000}, res.Totals)
	require.Len(t, res.Series, 1)
	require.Len(t, res.ByOrder, 1)
	assert.Equal(t, "o10", res.ByOrder[0].OrderID)
	require.Len(t, res.ByOrder[0].Lines, 1)
	assert.Equal(t, int64(20000), res.ByOrder[0].Lines[0].LineTotalCents)
}

func TestMyCommission_AdminRecibeVacio(t *testing.T) {
	uc := newUseCase(seed(t))

	res, err := uc.MyCommission(context.Background(), entity.Actor{UserID: "p1", IsAdmin: true}, dto.AnalyticsRequest{})
	require.NoError(t, err)
	assert.Zero(t, res.Totals)
	assert.Empty(t, res.Series)
	assert.Empty(t, res.ByOrder)
	assert.Equal(t, "2024-03-01", res.Range.From, "por defecto desde el primer día del mes")
	assert.Equal(t, "2024-03-20", res.Range.To)
}
