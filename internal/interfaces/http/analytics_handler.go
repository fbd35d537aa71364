package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/taller-api/internal/application/analytics"
	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
)

// AnalyticsHandler maneja los reportes de ganancia del taller y la comisión propia.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Shop godoc
// @Summary      Ganancia del taller por período (admin)
// @Description  Mano de obra cobrada, comisiones, gastos y neto sobre órdenes PAID.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Inicio (YYYY-MM-DD). Default: primer día del mes."
// @Param        to      query  string  false  "Fin inclusivo (YYYY-MM-DD). Default: hoy."
// @Param        bucket  query  string  false  "day|week|month"
// @Success      200  {object}  dto.ShopAnalyticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/analytics [get]
func (h *AnalyticsHandler) Shop(c *fiber.Ctx) error {
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	report, err := h.uc.Shop(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// MyCommission godoc
// @Summary      Comisión del usuario autenticado
// @Description  Sólo la propia: no acepta performerId.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "Inicio (YYYY-MM-DD)"
// @Param        to      query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Param        bucket  query  string  false  "day|week|month"
// @Success      200  {object}  dto.MyCommissionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/me/commission [get]
func (h *AnalyticsHandler) MyCommission(c *fiber.Ctx) error {
	if c.Query("performerId") != "" || c.Query("performer_id") != "" {
		return domain.Validation("performerId no está permitido")
	}
	var req dto.AnalyticsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}
	report, err := h.uc.MyCommission(c.UserContext(), GetActor(c), req)
	if err != nil {
		return err
	}
	return c.JSON(report)
}
