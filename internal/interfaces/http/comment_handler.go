package http

import (
	"github.com/gofiber/fiber/v2"

	appaudit "github.com/jhoicas/taller-api/internal/application/audit"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ledger"
)

// CommentHandler comentarios e historial de auditoría de la orden.
type CommentHandler struct {
	comments *ledger.CommentUseCase
	audit    *appaudit.UseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(comments *ledger.CommentUseCase, audit *appaudit.UseCase) *CommentHandler {
	return &CommentHandler{comments: comments, audit: audit}
}

// List godoc
// @Summary      Comentarios de la orden (más recientes primero)
// @Tags         comments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.CommentResponse
// @Router       /api/orders/{id}/comments [get]
func (h *CommentHandler) List(c *fiber.Ctx) error {
	out, err := h.comments.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Add godoc
// @Summary      Comentar la orden
// @Tags         comments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.CreateCommentRequest  true  "Texto"
// @Success      201   {object}  dto.CommentResponse
// @Router       /api/orders/{id}/comments [post]
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.comments.Add(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Audit godoc
// @Summary      Historial de auditoría de la orden
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la orden"
// @Param        limit   query  int     false  "1..500 (default 200)"
// @Param        entity  query  string  false  "ORDER, ORDER_WORK, ..."
// @Param        action  query  string  false  "CREATE, UPDATE, ..."
// @Success      200  {array}   dto.AuditLogResponse
// @Router       /api/orders/{id}/audit [get]
func (h *CommentHandler) Audit(c *fiber.Ctx) error {
	var in dto.AuditListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.audit.ListByOrder(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
