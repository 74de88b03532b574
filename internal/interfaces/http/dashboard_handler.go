package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/usecase"
	"github.com/jhoicas/Fichajes-api/internal/domain"
)

// DashboardHandler maneja el panel agregado de una obra (protegido).
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// ProjectStats godoc
// @Summary      Panel de una obra: presencia, horas, coste y presupuesto
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {object}  dto.ProjectStats
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/stats [get]
func (h *DashboardHandler) ProjectStats(c *fiber.Ctx) error {
	stats, err := h.uc.ProjectStats(c.Params("projectId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "obra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}
