package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/analytics"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

// ExpenseUseCase gastos de orden (afectan OrderExpensesCents) y gastos generales del taller.
type ExpenseUseCase struct {
	tx  ports.TxRunner
	now Clock
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(tx ports.TxRunner, clock Clock) *ExpenseUseCase {
	return &ExpenseUseCase{tx: tx, now: clockOrNow(clock)}
}

type expenseInput struct {
	title  string
	amount int64
	date   time.Time
}

func (uc *ExpenseUseCase) validateCreate(in dto.CreateExpenseRequest) (expenseInput, error) {
	title, err := text("title", in.Title, 1, 160)
	if err != nil {
		return expenseInput{}, err
	}
	if err := positiveCents("amount_cents", in.AmountCents); err != nil {
		return expenseInput{}, err
	}
	date, err := ParseExpenseDate(in.ExpenseDate, uc.now())
	if err != nil {
		return expenseInput{}, err
	}
	return expenseInput{title: title, amount: in.AmountCents, date: date}, nil
}

type expensePatch struct {
	title  *string
	amount *int64
	date   *time.Time
}

func (uc *ExpenseUseCase) validatePatch(in dto.UpdateExpenseRequest) (expensePatch, error) {
	var p expensePatch
	if in.Title == nil && in.AmountCents == nil && in.ExpenseDate == nil {
		return p, domain.Validation("no hay campos para actualizar")
	}
	if in.Title != nil {
		v, err := text("title", *in.Title, 1, 160)
		if err != nil {
			return p, err
		}
		p.title = &v
	}
	if in.AmountCents != nil {
		if err := positiveCents("amount_cents", *in.AmountCents); err != nil {
			return p, err
		}
		p.amount = in.AmountCents
	}
	if in.ExpenseDate != nil {
		if *in.ExpenseDate == "" {
			return p, domain.Validation("expense_date no puede estar vacío")
		}
		d, err := ParseExpenseDate(*in.ExpenseDate, uc.now())
		if err != nil {
			return p, err
		}
		p.date = &d
	}
	return p, nil
}

// canEdit admin o el creador del gasto.
func canEdit(actor entity.Actor, e *entity.Expense) error {
	if actor.IsAdmin || e.CreatedByID == actor.UserID {
		return nil
	}
	return domain.Forbidden("sólo un admin o quien registró el gasto puede modificarlo")
}

func (uc *ExpenseUseCase) insert(ctx context.Context, r ports.Repos, actor entity.Actor, scope entity.ExpenseScope, v expenseInput) (*entity.Expense, error) {
	now := uc.now().UTC()
	e := &entity.Expense{
		ID:          uuid.New().String(),
		Scope:       scope,
		Title:       v.title,
		AmountCents: v.amount,
		ExpenseDate: v.date,
		CreatedByID: actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.Expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	orderID := entity.OrderIDOf(scope)
	if orderID != nil {
		if _, err := Recalc(ctx, r, *orderID); err != nil {
			return nil, err
		}
	}
	err := appaudit.Write(ctx, r.Audit, appaudit.Record{
		Actor: actor, Action: entity.ActionCreate, Entity: entity.AuditExpense,
		EntityID: e.ID, OrderID: orderID,
		Diff: audit.Created{
			"id":          e.ID,
			"orderId":     audit.Value(orderID),
			"title":       e.Title,
			"amountCents": e.AmountCents,
			"expenseDate": audit.Timestamp(&e.ExpenseDate),
		},
	}, now)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// apply aplica el patch, audita y recalcula si el gasto es de una orden.
// Devuelve el gasto sin cambios si el patch no modifica nada.
func (uc *ExpenseUseCase) apply(ctx context.Context, r ports.Repos, actor entity.Actor, cur *entity.Expense, p expensePatch) (*entity.Expense, error) {
	next := *cur
	if p.title != nil {
		next.Title = *p.title
	}
	if p.amount != nil {
		next.AmountCents = *p.amount
	}
	if p.date != nil {
		next.ExpenseDate = *p.date
	}
	changed := audit.Changed{}
	audit.Track(changed, "title", cur.Title, next.Title)
	audit.Track(changed, "amountCents", cur.AmountCents, next.AmountCents)
	audit.TrackTime(changed, "expenseDate", &cur.ExpenseDate, &next.ExpenseDate)
	if changed.Empty() {
		return cur, nil
	}

	now := uc.now().UTC()
	next.UpdatedAt = now
	if err := r.Expenses.Update(ctx, &next); err != nil {
		return nil, err
	}
	orderID := entity.OrderIDOf(next.Scope)
	if orderID != nil {
		if _, err := Recalc(ctx, r, *orderID); err != nil {
			return nil, err
		}
	}
	if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
		Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditExpense,
		EntityID: next.ID, OrderID: orderID, Diff: changed,
	}, now); err != nil {
		return nil, err
	}
	return &next, nil
}

func (uc *ExpenseUseCase) remove(ctx context.Context, r ports.Repos, actor entity.Actor, cur *entity.Expense) error {
	if err := r.Expenses.Delete(ctx, cur.ID); err != nil {
		return err
	}
	orderID := entity.OrderIDOf(cur.Scope)
	if orderID != nil {
		if _, err := Recalc(ctx, r, *orderID); err != nil {
			return err
		}
	}
	return appaudit.Write(ctx, r.Audit, appaudit.Record{
		Actor: actor, Action: entity.ActionDelete, Entity: entity.AuditExpense,
		EntityID: cur.ID, OrderID: orderID, Diff: audit.Deleted{ID: cur.ID},
	}, uc.now())
}

// ── Gastos de orden ───────────────────────────────────────────────────────────

// ListByOrder gastos imputados a la orden.
func (uc *ExpenseUseCase) ListByOrder(ctx context.Context, orderID string) ([]dto.ExpenseResponse, error) {
	var out []dto.ExpenseResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFound("orden")
		}
		rows, err := r.Expenses.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		out = make([]dto.ExpenseResponse, 0, len(rows))
		for _, e := range rows {
			out = append(out, toExpenseResponse(e))
		}
		return nil
	})
	return out, err
}

// AddToOrder registra un gasto de la orden; el creador es el actor.
func (uc *ExpenseUseCase) AddToOrder(ctx context.Context, actor entity.Actor, orderID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	v, err := uc.validateCreate(in)
	if err != nil {
		return nil, err
	}
	var out dto.ExpenseResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		e, err := uc.insert(ctx, r, actor, entity.OrderScope{OrderID: order.ID}, v)
		if err != nil {
			return err
		}
		out = toExpenseResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func loadOrderExpense(ctx context.Context, r ports.Repos, orderID, expenseID string) (*entity.Expense, error) {
	e, err := r.Expenses.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil || !e.BelongsTo(orderID) {
		return nil, domain.NotFound("gasto")
	}
	return e, nil
}

// UpdateOrderExpense edita un gasto de la orden (admin o creador).
func (uc *ExpenseUseCase) UpdateOrderExpense(ctx context.Context, actor entity.Actor, orderID, expenseID string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	p, err := uc.validatePatch(in)
	if err != nil {
		return nil, err
	}
	var out dto.ExpenseResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		cur, err := loadOrderExpense(ctx, r, order.ID, expenseID)
		if err != nil {
			return err
		}
		if err := canEdit(actor, cur); err != nil {
			return err
		}
		e, err := uc.apply(ctx, r, actor, cur, p)
		if err != nil {
			return err
		}
		out = toExpenseResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrderExpense elimina un gasto de la orden (admin o creador).
func (uc *ExpenseUseCase) DeleteOrderExpense(ctx context.Context, actor entity.Actor, orderID, expenseID string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		cur, err := loadOrderExpense(ctx, r, order.ID, expenseID)
		if err != nil {
			return err
		}
		if err := canEdit(actor, cur); err != nil {
			return err
		}
		return uc.remove(ctx, r, actor, cur)
	})
}

// ── Gastos generales ──────────────────────────────────────────────────────────

// ListShop gastos generales, fecha desc. Sólo admin.
func (uc *ExpenseUseCase) ListShop(ctx context.Context, actor entity.Actor, in dto.ExpenseListRequest) ([]dto.ExpenseResponse, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	var filter repository.ExpenseFilter
	if in.From != "" {
		from, err := time.ParseInLocation(analytics.DateLayout, in.From, time.UTC)
		if err != nil {
			return nil, domain.Validation("from: use YYYY-MM-DD")
		}
		filter.From = &from
	}
	if in.To != "" {
		to, err := time.ParseInLocation(analytics.DateLayout, in.To, time.UTC)
		if err != nil {
			return nil, domain.Validation("to: use YYYY-MM-DD")
		}
		end := analytics.EndOfDay(to)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, domain.Validation("from posterior a to")
	}

	var out []dto.ExpenseResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		rows, err := r.Expenses.ListShopWide(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]dto.ExpenseResponse, 0, len(rows))
		for _, e := range rows {
			out = append(out, toExpenseResponse(e))
		}
		return nil
	})
	return out, err
}

// CreateShop registra un gasto general. Sólo admin; no recalcula ninguna orden.
func (uc *ExpenseUseCase) CreateShop(ctx context.Context, actor entity.Actor, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	v, err := uc.validateCreate(in)
	if err != nil {
		return nil, err
	}
	var out dto.ExpenseResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		e, err := uc.insert(ctx, r, actor, entity.ShopWide{}, v)
		if err != nil {
			return err
		}
		out = toExpenseResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func loadShopExpense(ctx context.Context, r ports.Repos, expenseID string) (*entity.Expense, error) {
	e, err := r.Expenses.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("gasto")
	}
	if _, ok := e.Scope.(entity.ShopWide); !ok {
		return nil, domain.NotFound("gasto general")
	}
	return e, nil
}

// UpdateShop edita un gasto general (admin o creador).
func (uc *ExpenseUseCase) UpdateShop(ctx context.Context, actor entity.Actor, expenseID string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	p, err := uc.validatePatch(in)
	if err != nil {
		return nil, err
	}
	var out dto.ExpenseResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		cur, err := loadShopExpense(ctx, r, expenseID)
		if err != nil {
			return err
		}
		if err := canEdit(actor, cur); err != nil {
			return err
		}
		e, err := uc.apply(ctx, r, actor, cur, p)
		if err != nil {
			return err
		}
		out = toExpenseResponse(e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteShop elimina un gasto general (admin o creador).
func (uc *ExpenseUseCase) DeleteShop(ctx context.Context, actor entity.Actor, expenseID string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		cur, err := loadShopExpense(ctx, r, expenseID)
		if err != nil {
			return err
		}
		if err := canEdit(actor, cur); err != nil {
			return err
		}
		return uc.remove(ctx, r, actor, cur)
	})
}
