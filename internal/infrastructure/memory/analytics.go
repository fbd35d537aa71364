package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/taller-api/internal/domain/analytics"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*Store)(nil)

// paidOrders órdenes PAID cuyo paidAt cae en el rango. Llamar con el lock tomado.
func (s *Store) paidOrders(r analytics.Range) map[string]entity.Order {
	out := map[string]entity.Order{}
	for id, o := range s.state.orders {
		if o.v.Status == entity.StatusPaid && o.v.PaidAt != nil && r.Contains(*o.v.PaidAt) {
			out[id] = o.v
		}
	}
	return out
}

func bucketize(sums map[time.Time]int64) []repository.BucketAmount {
	out := make([]repository.BucketAmount, 0, len(sums))
	for start, cents := range sums {
		out = append(out, repository.BucketAmount{Start: start, Cents: cents})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (s *Store) LaborByBucket(_ context.Context, r analytics.Range, b analytics.Bucket) ([]repository.BucketAmount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sums := map[time.Time]int64{}
	for _, o := range s.paidOrders(r) {
		sums[analytics.Truncate(*o.PaidAt, b)] += o.LaborSubtotalCents
	}
	return bucketize(sums), nil
}

func (s *Store) CommissionsByBucket(_ context.Context, r analytics.Range, b analytics.Bucket) ([]repository.BucketAmount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paid := s.paidOrders(r)
	sums := map[time.Time]int64{}
	for _, w := range s.state.works {
		o, ok := paid[w.v.OrderID]
		if !ok {
			continue
		}
		sums[analytics.Truncate(*o.PaidAt, b)] += w.v.CommissionCentsSnapshot
	}
	return bucketize(sums), nil
}

func (s *Store) ExpensesByBucket(_ context.Context, r analytics.Range, b analytics.Bucket) ([]repository.BucketAmount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sums := map[time.Time]int64{}
	for _, e := range s.state.expenses {
		if r.Contains(e.v.ExpenseDate) {
			sums[analytics.Truncate(e.v.ExpenseDate, b)] += e.v.AmountCents
		}
	}
	return bucketize(sums), nil
}

func (s *Store) PerformerRollup(_ context.Context, r analytics.Range) ([]repository.PerformerTotals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paid := s.paidOrders(r)
	byID := map[string]*repository.PerformerTotals{}
	for _, w := range s.state.works {
		if _, ok := paid[w.v.OrderID]; !ok {
			continue
		}
		t, ok := byID[w.v.PerformerID]
		if !ok {
			t = &repository.PerformerTotals{PerformerID: w.v.PerformerID}
			if u, ok := s.state.users[w.v.PerformerID]; ok {
				t.Name = u.v.Name
			}
			byID[w.v.PerformerID] = t
		}
		t.LaborCents += money.LineTotal(w.v.UnitPriceCents, w.v.Quantity)
		t.CommissionCents += w.v.CommissionCentsSnapshot
	}
	out := make([]repository.PerformerTotals, 0, len(byID))
	for _, t := range byID {
		out = append(out, *t)
	}
	return out, nil
}

func (s *Store) PerformerLines(_ context.Context, r analytics.Range, performerID string) ([]repository.PerformerLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paid := s.paidOrders(r)
	works := s.state.works.sorted(func(w *entity.OrderWork) bool {
		_, ok := paid[w.OrderID]
		return ok && w.PerformerID == performerID
	}, func(a, b *entity.OrderWork) int { return a.CreatedAt.Compare(b.CreatedAt) })

	out := make([]repository.PerformerLine, 0, len(works))
	for _, w := range works {
		o := paid[w.OrderID]
		out = append(out, repository.PerformerLine{
			OrderID:                 o.ID,
			OrderTitle:              o.Title,
			PaidAt:                  *o.PaidAt,
			WorkID:                  w.ID,
			ServiceName:             w.ServiceName,
			UnitPriceCents:          w.UnitPriceCents,
			Quantity:                w.Quantity,
			CommissionPctSnapshot:   w.CommissionPctSnapshot,
			CommissionCentsSnapshot: w.CommissionCentsSnapshot,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.After(out[j].PaidAt) })
	return out, nil
}
