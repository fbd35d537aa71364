package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ledger"
)

// ExpenseHandler gastos de orden y gastos generales del taller.
type ExpenseHandler struct {
	uc *ledger.ExpenseUseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *ledger.ExpenseUseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// ListByOrder godoc
// @Summary      Gastos de la orden
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {array}   dto.ExpenseResponse
// @Router       /api/orders/{id}/expenses [get]
func (h *ExpenseHandler) ListByOrder(c *fiber.Ctx) error {
	out, err := h.uc.ListByOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddToOrder godoc
// @Summary      Registrar gasto de la orden
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/expenses [post]
func (h *ExpenseHandler) AddToOrder(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddToOrder(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateOrderExpense godoc
// @Summary      Editar gasto de la orden (admin o creador)
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string  true  "ID de la orden"
// @Param        expenseId  path  string  true  "ID del gasto"
// @Param        body       body  dto.UpdateExpenseRequest  true  "Campos a cambiar"
// @Success      200        {object}  dto.ExpenseResponse
// @Failure      403        {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/expenses/{expenseId} [patch]
func (h *ExpenseHandler) UpdateOrderExpense(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateOrderExpense(c.UserContext(), GetActor(c), c.Params("id"), c.Params("expenseId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteOrderExpense godoc
// @Summary      Eliminar gasto de la orden (admin o creador)
// @Tags         expenses
// @Security     Bearer
// @Param        id         path  string  true  "ID de la orden"
// @Param        expenseId  path  string  true  "ID del gasto"
// @Success      204
// @Router       /api/orders/{id}/expenses/{expenseId} [delete]
func (h *ExpenseHandler) DeleteOrderExpense(c *fiber.Ctx) error {
	if err := h.uc.DeleteOrderExpense(c.UserContext(), GetActor(c), c.Params("id"), c.Params("expenseId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListShop godoc
// @Summary      Gastos generales del taller (admin)
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD, inclusivo"
// @Success      200   {array}   dto.ExpenseResponse
// @Router       /api/expenses [get]
func (h *ExpenseHandler) ListShop(c *fiber.Ctx) error {
	var in dto.ExpenseListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.ListShop(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateShop godoc
// @Summary      Registrar gasto general (admin)
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) CreateShop(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateShop(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateShop godoc
// @Summary      Editar gasto general (admin o creador)
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del gasto"
// @Param        body  body  dto.UpdateExpenseRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ExpenseResponse
// @Router       /api/expenses/{id} [patch]
func (h *ExpenseHandler) UpdateShop(c *fiber.Ctx) error {
	var in dto.UpdateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateShop(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteShop godoc
// @Summary      Eliminar gasto general (admin o creador)
// @Tags         expenses
// @Security     Bearer
// @Param        id  path  string  true  "ID del gasto"
// @Success      204
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteShop(c *fiber.Ctx) error {
	if err := h.uc.DeleteShop(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
