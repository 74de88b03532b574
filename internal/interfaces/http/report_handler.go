package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/report"
	"github.com/jhoicas/Fichajes-api/internal/domain"
)

// ReportHandler maneja los exports de fichajes y el parte de fin de jornada (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportCSV godoc
// @Summary      Export CSV de fichajes de una obra
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        projectId  path   string  true   "ID de la obra"
// @Param        strict     query  bool    false  "con true, cero sesiones devuelve 422 en vez de solo cabecera"
// @Success      200  {object}  dto.ExportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/export/csv [get]
func (h *ReportHandler) ExportCSV(c *fiber.Ctx) error {
	fileName, content, err := h.uc.ExportCSV(c.Params("projectId"), c.QueryBool("strict"))
	if err != nil {
		return h.exportError(c, err)
	}
	return c.JSON(dto.ExportResponse{FileName: fileName, Content: content})
}

// ExportXLSX godoc
// @Summary      Export Excel de fichajes de una obra
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/export/xlsx [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	fileName, content, err := h.uc.ExportXLSX(c.Params("projectId"))
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(content)
}

// ExportPDF godoc
// @Summary      Hoja de horas de una obra en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	fileName, content, err := h.uc.ExportPDF(c.Context(), c.Params("projectId"))
	if err != nil {
		return h.exportError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(content)
}

// DaySummary godoc
// @Summary      Parte narrativo de fin de jornada (asunto + cuerpo)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Param        body       body  dto.SummaryRequest  true  "notas libres"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/summary [post]
func (h *ReportHandler) DaySummary(c *fiber.Ctx) error {
	var in dto.SummaryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	subject, body, err := h.uc.DaySummary(c.Params("projectId"), GetWorkerID(c), in.Notes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "obra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SummaryResponse{Subject: subject, Body: body})
}

func (h *ReportHandler) exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "obra no encontrada"})
	}
	if errors.Is(err, domain.ErrEmptyInput) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_EXPORT", Message: "no hay sesiones que exportar"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
