package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/ledger"
)

// LineHandler líneas de mano de obra y repuestos de una orden.
type LineHandler struct {
	works *ledger.WorkUseCase
	parts *ledger.PartUseCase
}

// NewLineHandler construye el handler.
func NewLineHandler(works *ledger.WorkUseCase, parts *ledger.PartUseCase) *LineHandler {
	return &LineHandler{works: works, parts: parts}
}

// AddWorkFromService godoc
// @Summary      Agregar línea desde el catálogo
// @Tags         works
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AddWorkFromServiceRequest  true  "Servicio y ejecutor"
// @Success      201   {object}  dto.WorkResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/works/from-service [post]
func (h *LineHandler) AddWorkFromService(c *fiber.Ctx) error {
	var in dto.AddWorkFromServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.works.AddFromService(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddCustomWork godoc
// @Summary      Agregar trabajo libre
// @Tags         works
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AddCustomWorkRequest  true  "Nombre, precio y ejecutor"
// @Success      201   {object}  dto.WorkResponse
// @Router       /api/orders/{id}/works/custom [post]
func (h *LineHandler) AddCustomWork(c *fiber.Ctx) error {
	var in dto.AddCustomWorkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.works.AddCustom(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateWork godoc
// @Summary      Editar línea de trabajo
// @Tags         works
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la orden"
// @Param        workId  path  string  true  "ID de la línea"
// @Param        body    body  dto.UpdateWorkRequest  true  "Campos a cambiar"
// @Success      200     {object}  dto.WorkResponse
// @Router       /api/orders/{id}/works/{workId} [patch]
func (h *LineHandler) UpdateWork(c *fiber.Ctx) error {
	var in dto.UpdateWorkRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.works.Update(c.UserContext(), GetActor(c), c.Params("id"), c.Params("workId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteWork godoc
// @Summary      Eliminar línea de trabajo
// @Tags         works
// @Security     Bearer
// @Param        id      path  string  true  "ID de la orden"
// @Param        workId  path  string  true  "ID de la línea"
// @Success      204
// @Router       /api/orders/{id}/works/{workId} [delete]
func (h *LineHandler) DeleteWork(c *fiber.Ctx) error {
	if err := h.works.Delete(c.UserContext(), GetActor(c), c.Params("id"), c.Params("workId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddPart godoc
// @Summary      Agregar repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.AddPartRequest  true  "Repuesto"
// @Success      201   {object}  dto.PartResponse
// @Router       /api/orders/{id}/parts [post]
func (h *LineHandler) AddPart(c *fiber.Ctx) error {
	var in dto.AddPartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.parts.Add(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePart godoc
// @Summary      Editar repuesto
// @Tags         parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string  true  "ID de la orden"
// @Param        partId  path  string  true  "ID del repuesto"
// @Param        body    body  dto.UpdatePartRequest  true  "Campos a cambiar"
// @Success      200     {object}  dto.PartResponse
// @Router       /api/orders/{id}/parts/{partId} [patch]
func (h *LineHandler) UpdatePart(c *fiber.Ctx) error {
	var in dto.UpdatePartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.parts.Update(c.UserContext(), GetActor(c), c.Params("id"), c.Params("partId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeletePart godoc
// @Summary      Eliminar repuesto
// @Tags         parts
// @Security     Bearer
// @Param        id      path  string  true  "ID de la orden"
// @Param        partId  path  string  true  "ID del repuesto"
// @Success      204
// @Router       /api/orders/{id}/parts/{partId} [delete]
func (h *LineHandler) DeletePart(c *fiber.Ctx) error {
	if err := h.parts.Delete(c.UserContext(), GetActor(c), c.Params("id"), c.Params("partId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
