package ledger

import (
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain/entity"
)

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:                 o.ID,
		Title:              o.Title,
		GuitarSerial:       o.GuitarSerial,
		Description:        o.Description,
		CustomerName:       o.CustomerName,
		CustomerPhone:      o.CustomerPhone,
		Status:             string(o.Status),
		PaidAt:             o.PaidAt,
		CreatedByID:        o.CreatedByID,
		LaborSubtotalCents: o.LaborSubtotalCents,
		PartsSubtotalCents: o.PartsSubtotalCents,
		InvoiceTotalCents:  o.InvoiceTotalCents,
		OrderExpensesCents: o.OrderExpensesCents,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func toWorkResponse(w *entity.OrderWork) dto.WorkResponse {
	return dto.WorkResponse{
		ID:                      w.ID,
		OrderID:                 w.OrderID,
		ServiceID:               entity.ServiceIDOf(w.Source),
		ServiceName:             w.ServiceName,
		UnitPriceCents:          w.UnitPriceCents,
		Quantity:                w.Quantity,
		PerformerID:             w.PerformerID,
		CommissionPctSnapshot:   w.CommissionPctSnapshot,
		CommissionCentsSnapshot: w.CommissionCentsSnapshot,
		CreatedAt:               w.CreatedAt,
		UpdatedAt:               w.UpdatedAt,
	}
}

// toPartResponse oculta el costo interno salvo para admin.
func toPartResponse(p *entity.OrderPart, showCost bool) dto.PartResponse {
	out := dto.PartResponse{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Name:           p.Name,
		UnitPriceCents: p.UnitPriceCents,
		Quantity:       p.Quantity,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if showCost {
		out.CostCents = p.CostCents
	}
	return out
}

func toExpenseResponse(e *entity.Expense) dto.ExpenseResponse {
	return dto.ExpenseResponse{
		ID:          e.ID,
		OrderID:     entity.OrderIDOf(e.Scope),
		Title:       e.Title,
		AmountCents: e.AmountCents,
		ExpenseDate: e.ExpenseDate,
		CreatedByID: e.CreatedByID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toCommentResponse(c *entity.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        c.ID,
		OrderID:   c.OrderID,
		AuthorID:  c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
