package http

import (
	"encoding/base64"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/attendance"
	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
)

// AttendanceHandler maneja los fichajes (protegido).
type AttendanceHandler struct {
	uc        *attendance.UseCase
	precision int
}

// NewAttendanceHandler construye el handler de fichajes.
func NewAttendanceHandler(uc *attendance.UseCase, precision int) *AttendanceHandler {
	if precision <= 0 {
		precision = 2
	}
	return &AttendanceHandler{uc: uc, precision: precision}
}

// ClockIn godoc
// @Summary      Fichar llegada
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockInRequest  true  "project_id, gps (opcional), signature en base64"
// @Success      201   {object}  dto.SessionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	workerID := GetWorkerID(c)
	var in dto.ClockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	signature, err := base64.StdEncoding.DecodeString(in.Signature)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_EVIDENCE", Message: "firma ilegible (base64 inválido)"})
	}
	var coord *entity.GPS
	if in.GPS != nil {
		coord = &entity.GPS{Lat: in.GPS.Lat, Lng: in.GPS.Lng}
	}
	result, err := h.uc.ClockIn(c.Context(), attendance.ClockInInput{
		ActingWorkerID: workerID,
		ProjectID:      in.ProjectID,
		Coordinate:     coord,
		Signature:      signature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingEvidence) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_EVIDENCE", Message: "el fichaje requiere firma"})
		}
		if errors.Is(err, domain.ErrLocationUnavailable) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "LOCATION_UNAVAILABLE", Message: "no se pudo obtener la posición y la política la exige"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "trabajador u obra no encontrados"})
		}
		if errors.Is(err, domain.ErrDuplicateSession) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SESSION", Message: "ya hay una sesión para este trabajador hoy"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.SessionResponse{
		ID:        result.SessionID,
		WorkerID:  workerID,
		ProjectID: in.ProjectID,
		CheckIn:   result.CheckIn,
	}
	if result.GPS != nil {
		resp.GPS = &dto.GPSDTO{Lat: result.GPS.Lat, Lng: result.GPS.Lng}
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ClockOut godoc
// @Summary      Fichar salida
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockOutRequest  true  "session_id, signature en base64"
// @Success      200   {object}  dto.SessionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	workerID := GetWorkerID(c)
	var in dto.ClockOutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	signature, err := base64.StdEncoding.DecodeString(in.Signature)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_EVIDENCE", Message: "firma ilegible (base64 inválido)"})
	}
	result, err := h.uc.ClockOut(c.Context(), attendance.ClockOutInput{
		ActingWorkerID: workerID,
		SessionID:      in.SessionID,
		Signature:      signature,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingEvidence) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "MISSING_EVIDENCE", Message: "el cierre requiere firma"})
		}
		if errors.Is(err, domain.ErrSessionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SESSION_NOT_FOUND", Message: "sesión no encontrada"})
		}
		if errors.Is(err, domain.ErrAlreadyClosed) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CLOSED", Message: "la sesión ya está cerrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "la sesión pertenece a otro trabajador"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	hours := result.TotalHours.StringFixed(int32(h.precision))
	return c.JSON(dto.SessionResponse{
		ID:         result.SessionID,
		WorkerID:   workerID,
		CheckOut:   &result.CheckOut,
		TotalHours: &hours,
		Warnings:   result.Warnings,
	})
}

// ListByProject godoc
// @Summary      Sesiones de una obra (check-in más reciente primero)
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {array}   dto.SessionResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/attendance/projects/{projectId}/sessions [get]
func (h *AttendanceHandler) ListByProject(c *fiber.Ctx) error {
	sessions, forgotten, err := h.uc.ListByProject(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for i, s := range sessions {
		resp := dto.SessionResponse{
			ID:        s.ID,
			WorkerID:  s.WorkerID,
			ProjectID: s.ProjectID,
			CheckIn:   s.CheckIn,
			CheckOut:  s.CheckOut,
			Forgotten: forgotten[i],
		}
		if s.GPS != nil {
			resp.GPS = &dto.GPSDTO{Lat: s.GPS.Lat, Lng: s.GPS.Lng}
		}
		if s.TotalHours != nil {
			hours := s.TotalHours.StringFixed(int32(h.precision))
			resp.TotalHours = &hours
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}
