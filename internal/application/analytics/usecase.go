// Package analytics casos de uso de reportes: totales del taller por periodo
// y comisiones del propio ejecutor.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	buckets "github.com/jhoicas/taller-api/internal/domain/analytics"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// UseCase agrega ingresos, comisiones y gastos de órdenes pagadas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only, sin transacción).
type UseCase struct {
	repo repository.AnalyticsRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso. now nil = time.Now.
func NewUseCase(repo repository.AnalyticsRepository, now func() time.Time) *UseCase {
	if now == nil {
		now = time.Now
	}
	return &UseCase{repo: repo, now: now}
}

func (uc *UseCase) parse(in dto.AnalyticsRequest, def buckets.Bucket) (buckets.Range, buckets.Bucket, error) {
	b, err := buckets.ParseBucket(strings.ToLower(strings.TrimSpace(in.Bucket)), def)
	if err != nil {
		return buckets.Range{}, "", domain.Validation(err.Error())
	}
	r, err := buckets.ParseRange(strings.TrimSpace(in.From), strings.TrimSpace(in.To), uc.now())
	if err != nil {
		return buckets.Range{}, "", domain.Validation(err.Error())
	}
	return r, b, nil
}

func rangeDTO(r buckets.Range, b buckets.Bucket) dto.RangeDTO {
	return dto.RangeDTO{
		From:   r.From.Format(buckets.DateLayout),
		To:     r.To.Format(buckets.DateLayout),
		Bucket: string(b),
	}
}

// Shop totales del taller, serie continua y ranking por ejecutor.
//
// Cuatro consultas en paralelo:
//  1. LaborByBucket
//  2. CommissionsByBucket
//  3. ExpensesByBucket
//  4. PerformerRollup
func (uc *UseCase) Shop(ctx context.Context, in dto.AnalyticsRequest) (*dto.ShopAnalyticsResponse, error) {
	r, b, err := uc.parse(in, buckets.Day)
	if err != nil {
		return nil, err
	}

	type seriesResult struct {
		rows []repository.BucketAmount
		err  error
	}
	type rollupResult struct {
		rows []repository.PerformerTotals
		err  error
	}

	laborCh := make(chan seriesResult, 1)
	commCh := make(chan seriesResult, 1)
	expCh := make(chan seriesResult, 1)
	rollCh := make(chan rollupResult, 1)

	go func() {
		rows, err := uc.repo.LaborByBucket(ctx, r, b)
		laborCh <- seriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.CommissionsByBucket(ctx, r, b)
		commCh <- seriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ExpensesByBucket(ctx, r, b)
		expCh <- seriesResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.PerformerRollup(ctx, r)
		rollCh <- rollupResult{rows, err}
	}()

	labor := <-laborCh
	comm := <-commCh
	exp := <-expCh
	roll := <-rollCh

	if labor.err != nil {
		return nil, fmt.Errorf("analytics: mano de obra: %w", labor.err)
	}
	if comm.err != nil {
		return nil, fmt.Errorf("analytics: comisiones: %w", comm.err)
	}
	if exp.err != nil {
		return nil, fmt.Errorf("analytics: gastos: %w", exp.err)
	}
	if roll.err != nil {
		return nil, fmt.Errorf("analytics: ejecutores: %w", roll.err)
	}

	laborBy := indexByStart(labor.rows, b)
	commBy := indexByStart(comm.rows, b)
	expBy := indexByStart(exp.rows, b)

	out := &dto.ShopAnalyticsResponse{Range: rangeDTO(r, b)}
	starts := buckets.Starts(r.From, r.To, b)
	out.Series = make([]dto.ShopSeriesPointDTO, 0, len(starts))
	for _, s := range starts {
		p := dto.ShopSeriesPointDTO{
			BucketStart: s,
			ShopTotalsDTO: dto.ShopTotalsDTO{
				LaborRevenuePaidCents: laborBy[s],
				CommissionsPaidCents:  commBy[s],
				ExpensesCents:         expBy[s],
			},
		}
		p.NetProfitCents = p.LaborRevenuePaidCents - p.CommissionsPaidCents - p.ExpensesCents
		out.Series = append(out.Series, p)

		out.Totals.LaborRevenuePaidCents += p.LaborRevenuePaidCents
		out.Totals.CommissionsPaidCents += p.CommissionsPaidCents
		out.Totals.ExpensesCents += p.ExpensesCents
	}
	out.Totals.NetProfitCents = out.Totals.LaborRevenuePaidCents - out.Totals.CommissionsPaidCents - out.Totals.ExpensesCents

	out.ByMaster = make([]dto.MasterTotalsDTO, 0, len(roll.rows))
	for _, t := range roll.rows {
		out.ByMaster = append(out.ByMaster, dto.MasterTotalsDTO{
			PerformerID:     t.PerformerID,
			Name:            t.Name,
			LaborCents:      t.LaborCents,
			CommissionCents: t.CommissionCents,
		})
	}
	SortMasters(out.ByMaster)
	return out, nil
}

// SortMasters comisión desc, luego mano de obra desc, luego nombre asc.
func SortMasters(rows []dto.MasterTotalsDTO) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.CommissionCents != b.CommissionCents {
			return a.CommissionCents > b.CommissionCents
		}
		if a.LaborCents != b.LaborCents {
			return a.LaborCents > b.LaborCents
		}
		return a.Name < b.Name
	})
}

// indexByStart normaliza cada inicio con Truncate para que coincida con Starts.
func indexByStart(rows []repository.BucketAmount, b buckets.Bucket) map[time.Time]int64 {
	out := make(map[time.Time]int64, len(rows))
	for _, r := range rows {
		out[buckets.Truncate(r.Start, b)] += r.Cents
	}
	return out
}

// MyCommission comisiones del actor. Un admin no cobra comisión: recibe totales en cero y listas vacías.
func (uc *UseCase) MyCommission(ctx context.Context, actor entity.Actor, in dto.AnalyticsRequest) (*dto.MyCommissionResponse, error) {
	r, b, err := uc.parse(in, buckets.Day)
	if err != nil {
		return nil, err
	}
	out := &dto.MyCommissionResponse{
		Range:   rangeDTO(r, b),
		Series:  []dto.CommissionSeriesPointDTO{},
		ByOrder: []dto.CommissionOrderDTO{},
	}
	if actor.IsAdmin {
		return out, nil
	}

	lines, err := uc.repo.PerformerLines(ctx, r, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("analytics: líneas del ejecutor: %w", err)
	}

	type bucketSum struct{ labor, comm int64 }
	sums := map[time.Time]bucketSum{}
	orders := map[string]int{}
	for _, l := range lines {
		lineTotal := money.LineTotal(l.UnitPriceCents, l.Quantity)

		start := buckets.Truncate(l.PaidAt, b)
		s := sums[start]
		s.labor += lineTotal
		s.comm += l.CommissionCentsSnapshot
		sums[start] = s

		out.Totals.LaborCents += lineTotal
		out.Totals.CommissionCents += l.CommissionCentsSnapshot

		idx, ok := orders[l.OrderID]
		if !ok {
			idx = len(out.ByOrder)
			orders[l.OrderID] = idx
			out.ByOrder = append(out.ByOrder, dto.CommissionOrderDTO{
				OrderID: l.OrderID,
				Title:   l.OrderTitle,
				PaidAt:  l.PaidAt,
				Lines:   []dto.CommissionLineDTO{},
			})
		}
		o := &out.ByOrder[idx]
		o.LaborCents += lineTotal
		o.CommissionCents += l.CommissionCentsSnapshot
		o.Lines = append(o.Lines, dto.CommissionLineDTO{
			WorkID:                  l.WorkID,
			ServiceName:             l.ServiceName,
			UnitPriceCents:          l.UnitPriceCents,
			Quantity:                l.Quantity,
			LineTotalCents:          lineTotal,
			CommissionPctSnapshot:   l.CommissionPctSnapshot,
			CommissionCentsSnapshot: l.CommissionCentsSnapshot,
		})
	}

	for _, s := range buckets.Starts(r.From, r.To, b) {
		v := sums[s]
		out.Series = append(out.Series, dto.CommissionSeriesPointDTO{
			BucketStart:         s,
			CommissionTotalsDTO: dto.CommissionTotalsDTO{CommissionCents: v.comm, LaborCents: v.labor},
		})
	}
	sort.SliceStable(out.ByOrder, func(i, j int) bool { return out.ByOrder[i].PaidAt.After(out.ByOrder[j].PaidAt) })
	return out, nil
}
