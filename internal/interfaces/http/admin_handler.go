package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/application/usecase"
)

// CatalogHandler usuarios y servicios: lectura pública para el selector y administración.
type CatalogHandler struct {
	users    *usecase.UserUseCase
	services *usecase.ServiceUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(users *usecase.UserUseCase, services *usecase.ServiceUseCase) *CatalogHandler {
	return &CatalogHandler{users: users, services: services}
}

// Performers godoc
// @Summary      Ejecutores activos
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PerformerResponse
// @Router       /api/users [get]
func (h *CatalogHandler) Performers(c *fiber.Ctx) error {
	out, err := h.users.ListPerformers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ActiveServices godoc
// @Summary      Catálogo activo
// @Tags         services
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/services [get]
func (h *CatalogHandler) ActiveServices(c *fiber.Ctx) error {
	out, err := h.services.List(c.UserContext(), true)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      Usuarios (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/users [get]
func (h *CatalogHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateUser godoc
// @Summary      Crear usuario (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users [post]
func (h *CatalogHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateUser godoc
// @Summary      Editar rol, estado o porcentaje (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Router       /api/admin/users/{id} [patch]
func (h *CatalogHandler) UpdateUser(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.users.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Cambiar contraseña (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.ResetPasswordRequest  true  "Nueva contraseña"
// @Success      204
// @Router       /api/admin/users/{id}/password [post]
func (h *CatalogHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.users.ResetPassword(c.UserContext(), GetActor(c), c.Params("id"), in); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListServices godoc
// @Summary      Catálogo completo (admin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ServiceResponse
// @Router       /api/admin/services [get]
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	out, err := h.services.List(c.UserContext(), false)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateService godoc
// @Summary      Crear servicio (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateServiceRequest  true  "Servicio"
// @Success      201   {object}  dto.ServiceResponse
// @Router       /api/admin/services [post]
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var in dto.CreateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.services.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateService godoc
// @Summary      Editar servicio (admin)
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del servicio"
// @Param        body  body  dto.UpdateServiceRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.ServiceResponse
// @Router       /api/admin/services/{id} [patch]
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	var in dto.UpdateServiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.services.Update(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
