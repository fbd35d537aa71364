package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/money"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

func missing(what, id string) error {
	return fmt.Errorf("%w: %s %s", domain.ErrNotFound, what, id)
}

// --- orders ---

type orderRepo struct{ st *state }

func (r *orderRepo) Create(_ context.Context, o *entity.Order) error {
	if _, ok := r.st.orders[o.ID]; ok {
		return fmt.Errorf("%w: orden %s", domain.ErrDuplicate, o.ID)
	}
	r.st.orders[o.ID] = row[entity.Order]{v: *o, seq: r.st.next()}
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	return r.st.orders.get(id), nil
}

// GetForUpdate no necesita bloqueo: Run ya serializa las transacciones.
func (r *orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *orderRepo) Update(_ context.Context, o *entity.Order) error {
	cur, ok := r.st.orders[o.ID]
	if !ok {
		return missing("orden", o.ID)
	}
	next := *o
	totals := cur.v.Totals()
	next.LaborSubtotalCents = totals.LaborSubtotalCents
	next.PartsSubtotalCents = totals.PartsSubtotalCents
	next.InvoiceTotalCents = totals.InvoiceTotalCents
	next.OrderExpensesCents = totals.OrderExpensesCents
	next.CreatedAt = cur.v.CreatedAt
	next.CreatedByID = cur.v.CreatedByID
	r.st.orders[o.ID] = row[entity.Order]{v: next, seq: cur.seq}
	return nil
}

func (r *orderRepo) UpdateTotals(_ context.Context, orderID string, t entity.OrderTotals) error {
	cur, ok := r.st.orders[orderID]
	if !ok {
		return missing("orden", orderID)
	}
	cur.v.LaborSubtotalCents = t.LaborSubtotalCents
	cur.v.PartsSubtotalCents = t.PartsSubtotalCents
	cur.v.InvoiceTotalCents = t.InvoiceTotalCents
	cur.v.OrderExpensesCents = t.OrderExpensesCents
	r.st.orders[orderID] = cur
	return nil
}

func (r *orderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	q := strings.ToLower(f.Query)
	keep := func(o *entity.Order) bool {
		if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.Status) {
			return false
		}
		if q != "" {
			inTitle := strings.Contains(strings.ToLower(o.Title), q)
			inSerial := o.GuitarSerial != nil && strings.Contains(strings.ToLower(*o.GuitarSerial), q)
			if !inTitle && !inSerial {
				return false
			}
		}
		if f.PerformerID != "" && !r.hasPerformer(o.ID, f.PerformerID) {
			return false
		}
		return true
	}
	return r.st.orders.sorted(keep, func(a, b *entity.Order) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	}), nil
}

func (r *orderRepo) hasPerformer(orderID, performerID string) bool {
	for _, w := range r.st.works {
		if w.v.OrderID == orderID && w.v.PerformerID == performerID {
			return true
		}
	}
	return false
}

// --- works ---

type workRepo struct{ st *state }

func (r *workRepo) Create(_ context.Context, w *entity.OrderWork) error {
	r.st.works[w.ID] = row[entity.OrderWork]{v: *w, seq: r.st.next()}
	return nil
}

func (r *workRepo) GetByID(_ context.Context, orderID, id string) (*entity.OrderWork, error) {
	w := r.st.works.get(id)
	if w == nil || w.OrderID != orderID {
		return nil, nil
	}
	return w, nil
}

func (r *workRepo) Update(_ context.Context, w *entity.OrderWork) error {
	cur, ok := r.st.works[w.ID]
	if !ok {
		return missing("línea", w.ID)
	}
	r.st.works[w.ID] = row[entity.OrderWork]{v: *w, seq: cur.seq}
	return nil
}

func (r *workRepo) Delete(_ context.Context, id string) error {
	delete(r.st.works, id)
	return nil
}

func (r *workRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderWork, error) {
	return r.st.works.sorted(
		func(w *entity.OrderWork) bool { return w.OrderID == orderID },
		func(a, b *entity.OrderWork) int { return a.CreatedAt.Compare(b.CreatedAt) },
	), nil
}

func (r *workRepo) SumByOrder(_ context.Context, orderID string) (int64, error) {
	var sum int64
	for _, w := range r.st.works {
		if w.v.OrderID == orderID {
			sum += money.LineTotal(w.v.UnitPriceCents, w.v.Quantity)
		}
	}
	return sum, nil
}

// --- parts ---

type partRepo struct{ st *state }

func (r *partRepo) Create(_ context.Context, p *entity.OrderPart) error {
	r.st.parts[p.ID] = row[entity.OrderPart]{v: *p, seq: r.st.next()}
	return nil
}

func (r *partRepo) GetByID(_ context.Context, orderID, id string) (*entity.OrderPart, error) {
	p := r.st.parts.get(id)
	if p == nil || p.OrderID != orderID {
		return nil, nil
	}
	return p, nil
}

func (r *partRepo) Update(_ context.Context, p *entity.OrderPart) error {
	cur, ok := r.st.parts[p.ID]
	if !ok {
		return missing("repuesto", p.ID)
	}
	r.st.parts[p.ID] = row[entity.OrderPart]{v: *p, seq: cur.seq}
	return nil
}

func (r *partRepo) Delete(_ context.Context, id string) error {
	delete(r.st.parts, id)
	return nil
}

func (r *partRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderPart, error) {
	return r.st.parts.sorted(
		func(p *entity.OrderPart) bool { return p.OrderID == orderID },
		func(a, b *entity.OrderPart) int { return a.CreatedAt.Compare(b.CreatedAt) },
	), nil
}

func (r *partRepo) SumByOrder(_ context.Context, orderID string) (int64, error) {
	var sum int64
	for _, p := range r.st.parts {
		if p.v.OrderID == orderID {
			sum += money.LineTotal(p.v.UnitPriceCents, p.v.Quantity)
		}
	}
	return sum, nil
}

// --- expenses ---

type expenseRepo struct{ st *state }

func (r *expenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.st.expenses[e.ID] = row[entity.Expense]{v: *e, seq: r.st.next()}
	return nil
}

func (r *expenseRepo) GetByID(_ context.Context, id string) (*entity.Expense, error) {
	return r.st.expenses.get(id), nil
}

func (r *expenseRepo) Update(_ context.Context, e *entity.Expense) error {
	cur, ok := r.st.expenses[e.ID]
	if !ok {
		return missing("gasto", e.ID)
	}
	r.st.expenses[e.ID] = row[entity.Expense]{v: *e, seq: cur.seq}
	return nil
}

func (r *expenseRepo) Delete(_ context.Context, id string) error {
	delete(r.st.expenses, id)
	return nil
}

func (r *expenseRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Expense, error) {
	return r.st.expenses.sorted(
		func(e *entity.Expense) bool { return e.BelongsTo(orderID) },
		byExpenseDateDesc,
	), nil
}

func (r *expenseRepo) ListShopWide(_ context.Context, f repository.ExpenseFilter) ([]*entity.Expense, error) {
	return r.st.expenses.sorted(func(e *entity.Expense) bool {
		if _, ok := e.Scope.(entity.ShopWide); !ok {
			return false
		}
		if f.From != nil && e.ExpenseDate.Before(*f.From) {
			return false
		}
		if f.To != nil && e.ExpenseDate.After(*f.To) {
			return false
		}
		return true
	}, byExpenseDateDesc), nil
}

func byExpenseDateDesc(a, b *entity.Expense) int {
	if c := b.ExpenseDate.Compare(a.ExpenseDate); c != 0 {
		return c
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

func (r *expenseRepo) SumByOrder(_ context.Context, orderID string) (int64, error) {
	var sum int64
	for _, e := range r.st.expenses {
		if e.v.BelongsTo(orderID) {
			sum += e.v.AmountCents
		}
	}
	return sum, nil
}

// --- users ---

type userRepo struct{ st *state }

func (r *userRepo) nameTaken(name, exceptID string) bool {
	for id, u := range r.st.users {
		if id != exceptID && u.v.Name == name {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	if r.nameTaken(u.Name, "") {
		return fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, u.Name)
	}
	r.st.users[u.ID] = row[entity.User]{v: *u, seq: r.st.next()}
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.st.users.get(id), nil
}

func (r *userRepo) GetByName(_ context.Context, name string) (*entity.User, error) {
	for _, u := range r.st.users {
		if u.v.Name == name {
			v := u.v
			return &v, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Update(_ context.Context, u *entity.User) error {
	cur, ok := r.st.users[u.ID]
	if !ok {
		return missing("usuario", u.ID)
	}
	if r.nameTaken(u.Name, u.ID) {
		return fmt.Errorf("%w: usuario %s", domain.ErrDuplicate, u.Name)
	}
	r.st.users[u.ID] = row[entity.User]{v: *u, seq: cur.seq}
	return nil
}

func (r *userRepo) List(_ context.Context, activeOnly bool) ([]*entity.User, error) {
	return r.st.users.sorted(
		func(u *entity.User) bool { return !activeOnly || u.IsActive },
		func(a, b *entity.User) int { return strings.Compare(a.Name, b.Name) },
	), nil
}

func (r *userRepo) CountActiveAdmins(_ context.Context) (int, error) {
	n := 0
	for _, u := range r.st.users {
		if u.v.IsAdmin && u.v.IsActive {
			n++
		}
	}
	return n, nil
}

// --- services ---

type serviceRepo struct{ st *state }

func (r *serviceRepo) nameTaken(name, exceptID string) bool {
	for id, s := range r.st.services {
		if id != exceptID && s.v.Name == name {
			return true
		}
	}
	return false
}

func (r *serviceRepo) Create(_ context.Context, s *entity.Service) error {
	if r.nameTaken(s.Name, "") {
		return fmt.Errorf("%w: servicio %s", domain.ErrDuplicate, s.Name)
	}
	r.st.services[s.ID] = row[entity.Service]{v: *s, seq: r.st.next()}
	return nil
}

func (r *serviceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	return r.st.services.get(id), nil
}

func (r *serviceRepo) Update(_ context.Context, s *entity.Service) error {
	cur, ok := r.st.services[s.ID]
	if !ok {
		return missing("servicio", s.ID)
	}
	if r.nameTaken(s.Name, s.ID) {
		return fmt.Errorf("%w: servicio %s", domain.ErrDuplicate, s.Name)
	}
	r.st.services[s.ID] = row[entity.Service]{v: *s, seq: cur.seq}
	return nil
}

func (r *serviceRepo) List(_ context.Context, activeOnly bool) ([]*entity.Service, error) {
	return r.st.services.sorted(
		func(s *entity.Service) bool { return !activeOnly || s.IsActive },
		func(a, b *entity.Service) int { return strings.Compare(a.Name, b.Name) },
	), nil
}

// --- comments ---

type commentRepo struct{ st *state }

func (r *commentRepo) Create(_ context.Context, c *entity.Comment) error {
	r.st.comments[c.ID] = row[entity.Comment]{v: *c, seq: r.st.next()}
	return nil
}

func (r *commentRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.Comment, error) {
	rows := r.st.comments.sorted(
		func(c *entity.Comment) bool { return c.OrderID == orderID },
		func(a, b *entity.Comment) int { return a.CreatedAt.Compare(b.CreatedAt) },
	)
	slices.Reverse(rows)
	return rows, nil
}

func (r *commentRepo) LastByOrder(ctx context.Context, orderID string) (*entity.Comment, error) {
	rows, _ := r.ListByOrder(ctx, orderID)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// --- audit ---

type auditRepo struct{ st *state }

func (r *auditRepo) Append(_ context.Context, e *entity.AuditLog) error {
	r.st.audit = append(r.st.audit, *e)
	return nil
}

func (r *auditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditLog, error) {
	out := make([]*entity.AuditLog, 0)
	for i := len(r.st.audit) - 1; i >= 0; i-- {
		e := r.st.audit[i]
		if f.OrderID != "" && (e.OrderID == nil || *e.OrderID != f.OrderID) {
			continue
		}
		if f.Entity != "" && e.Entity != f.Entity {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		out = append(out, &e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}
