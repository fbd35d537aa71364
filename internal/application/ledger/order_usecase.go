package ledger

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ports"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/audit"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	rules "github.com/jhoicas/taller-api/internal/domain/ledger"
	"github.com/jhoicas/taller-api/internal/domain/repository"
)

const detailAuditLimit = 50

var phonePattern = regexp.MustCompile(`^[0-9()+\-\s]+$`)

// OrderUseCase alta, listado, detalle, edición y cambio de estado de órdenes.
type OrderUseCase struct {
	tx  ports.TxRunner
	now Clock
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(tx ports.TxRunner, clock Clock) *OrderUseCase {
	return &OrderUseCase{tx: tx, now: clockOrNow(clock)}
}

// Create abre una orden en estado NEW.
func (uc *OrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	title, err := text("title", in.Title, 1, 80)
	if err != nil {
		return nil, err
	}
	serial, _, err := optionalText("guitar_serial", &in.GuitarSerial, 80)
	if err != nil {
		return nil, err
	}
	desc, _, err := optionalText("description", &in.Description, 2000)
	if err != nil {
		return nil, err
	}

	var out dto.OrderResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		now := uc.now().UTC()
		order := &entity.Order{
			ID:           uuid.New().String(),
			Title:        title,
			GuitarSerial: serial,
			Description:  desc,
			Status:       entity.StatusNew,
			CreatedByID:  actor.UserID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionCreate, Entity: entity.AuditOrder,
			EntityID: order.ID, OrderID: &order.ID,
			Diff: audit.Created{
				"id":           order.ID,
				"title":        order.Title,
				"guitarSerial": audit.Value(order.GuitarSerial),
				"description":  audit.Value(order.Description),
				"status":       string(order.Status),
			},
		}, now); err != nil {
			return err
		}
		out = toOrderResponse(order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List órdenes por updatedAt desc, con el último comentario de cada una.
func (uc *OrderUseCase) List(ctx context.Context, actor entity.Actor, in dto.OrderListRequest) ([]dto.OrderResponse, error) {
	filter := repository.OrderFilter{Query: strings.TrimSpace(in.Q)}
	for _, raw := range in.Status {
		for _, s := range strings.Split(raw, ",") {
			s = strings.ToUpper(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			st := entity.OrderStatus(s)
			if !st.Valid() {
				return nil, domain.Validation("estado desconocido: " + s)
			}
			filter.Statuses = append(filter.Statuses, st)
		}
	}
	if in.Mine {
		filter.PerformerID = actor.UserID
	}

	var out []dto.OrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		orders, err := r.Orders.List(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]dto.OrderResponse, 0, len(orders))
		for _, o := range orders {
			resp := toOrderResponse(o)
			last, err := r.Comments.LastByOrder(ctx, o.ID)
			if err != nil {
				return err
			}
			if last != nil {
				c := toCommentResponse(last)
				resp.LastComment = &c
			}
			out = append(out, resp)
		}
		return nil
	})
	return out, err
}

// Get detalle de la orden: líneas, repuestos, gastos, comentarios y últimas 50 filas de auditoría.
func (uc *OrderUseCase) Get(ctx context.Context, actor entity.Actor, orderID string) (*dto.OrderDetailResponse, error) {
	var out dto.OrderDetailResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		order, err := r.Orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
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
		expenses, err := r.Expenses.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		comments, err := r.Comments.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		logs, err := r.Audit.List(ctx, repository.AuditFilter{OrderID: orderID, Limit: detailAuditLimit})
		if err != nil {
			return err
		}

		out.OrderResponse = toOrderResponse(order)
		out.Works = make([]dto.WorkResponse, 0, len(works))
		for _, w := range works {
			out.Works = append(out.Works, toWorkResponse(w))
		}
		out.Parts = make([]dto.PartResponse, 0, len(parts))
		for _, p := range parts {
			out.Parts = append(out.Parts, toPartResponse(p, actor.IsAdmin))
		}
		out.Expenses = make([]dto.ExpenseResponse, 0, len(expenses))
		for _, e := range expenses {
			out.Expenses = append(out.Expenses, toExpenseResponse(e))
		}
		out.Comments = make([]dto.CommentResponse, 0, len(comments))
		for _, c := range comments {
			out.Comments = append(out.Comments, toCommentResponse(c))
		}
		out.Audit = appaudit.ToResponses(logs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update edita los datos descriptivos de la orden. Sólo admin y sólo si no está pagada.
// Un string vacío vacía el campo.
func (uc *OrderUseCase) Update(ctx context.Context, actor entity.Actor, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if !actor.IsAdmin {
		return nil, domain.Forbidden("sólo un admin puede editar la orden")
	}
	if in.Title == nil && in.GuitarSerial == nil && in.Description == nil && in.CustomerName == nil && in.CustomerPhone == nil {
		return nil, domain.Validation("no hay campos para actualizar")
	}
	var title string
	if in.Title != nil {
		v, err := text("title", *in.Title, 1, 80)
		if err != nil {
			return nil, err
		}
		title = v
	}
	serial, serialSet, err := optionalText("guitar_serial", in.GuitarSerial, 80)
	if err != nil {
		return nil, err
	}
	desc, descSet, err := optionalText("description", in.Description, 2000)
	if err != nil {
		return nil, err
	}
	customer, customerSet, err := optionalText("customer_name", in.CustomerName, 120)
	if err != nil {
		return nil, err
	}
	phone, phoneSet, err := optionalText("customer_phone", in.CustomerPhone, 32)
	if err != nil {
		return nil, err
	}
	if phone != nil && !phonePattern.MatchString(*phone) {
		return nil, domain.Validation("customer_phone: sólo dígitos, espacios y ()+-")
	}

	var out dto.OrderResponse
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		cur, err := loadMutableOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		next := *cur
		if in.Title != nil {
			next.Title = title
		}
		if serialSet {
			next.GuitarSerial = serial
		}
		if descSet {
			next.Description = desc
		}
		if customerSet {
			next.CustomerName = customer
		}
		if phoneSet {
			next.CustomerPhone = phone
		}

		changed := audit.Changed{}
		audit.Track(changed, "title", cur.Title, next.Title)
		audit.TrackOptional(changed, "guitarSerial", cur.GuitarSerial, next.GuitarSerial)
		audit.TrackOptional(changed, "description", cur.Description, next.Description)
		audit.TrackOptional(changed, "customerName", cur.CustomerName, next.CustomerName)
		audit.TrackOptional(changed, "customerPhone", cur.CustomerPhone, next.CustomerPhone)
		if changed.Empty() {
			out = toOrderResponse(cur)
			return nil
		}

		now := uc.now().UTC()
		next.UpdatedAt = now
		if err := r.Orders.Update(ctx, &next); err != nil {
			return err
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionUpdate, Entity: entity.AuditOrder,
			EntityID: next.ID, OrderID: &next.ID, Diff: changed,
		}, now); err != nil {
			return err
		}
		out = toOrderResponse(&next)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeStatus mueve la orden de estado. Entrar o salir de PAID exige admin;
// paidAt se fija al entrar en PAID y se limpia al salir. Mismo estado = sin cambios.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, actor entity.Actor, orderID string, in dto.ChangeStatusRequest) (*dto.OrderResponse, error) {
	next := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	if !next.Valid() {
		return nil, domain.Validation("estado desconocido: " + in.Status)
	}

	var out dto.OrderResponse
	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		cur, err := loadOrder(ctx, r, orderID)
		if err != nil {
			return err
		}
		if err := rules.AssertStatusChange(actor, cur.Status, next); err != nil {
			return err
		}
		if cur.Status == next {
			out = toOrderResponse(cur)
			return nil
		}

		now := uc.now().UTC()
		updated := *cur
		updated.Status = next
		updated.PaidAt = rules.NextPaidAt(next, now)
		updated.UpdatedAt = now
		if err := r.Orders.Update(ctx, &updated); err != nil {
			return err
		}
		diff := audit.Changed{
			"status": {From: string(cur.Status), To: string(next)},
			"paidAt": {From: audit.Timestamp(cur.PaidAt), To: audit.Timestamp(updated.PaidAt)},
		}
		if err := appaudit.Write(ctx, r.Audit, appaudit.Record{
			Actor: actor, Action: entity.ActionStatusChange, Entity: entity.AuditOrder,
			EntityID: cur.ID, OrderID: &cur.ID, Diff: diff,
		}, now); err != nil {
			return err
		}
		out = toOrderResponse(&updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
