package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/usecase"
	"github.com/jhoicas/Fichajes-api/internal/domain"
)

// InventoryHandler maneja el stock de obra y los pedidos urgentes (protegido).
type InventoryHandler struct {
	uc *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// CreateItem godoc
// @Summary      Alta de material en el stock de una obra
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "project_id, label, quantity_initial, threshold_alert, unit"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateItem(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de material inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ApplyDelta godoc
// @Summary      Ajuste incremental de stock (+/-, suelo en 0)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del material"
// @Param        body  body  dto.ApplyDeltaRequest  true  "delta"
// @Success      200   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/delta [post]
func (h *InventoryHandler) ApplyDelta(c *fiber.Ctx) error {
	var in dto.ApplyDeltaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.ApplyDelta(c.Context(), c.Params("id"), in.Delta)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "delta no puede ser cero"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(item)
}

// ListByProject godoc
// @Summary      Stock de una obra
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {array}   dto.ItemResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/inventory [get]
func (h *InventoryHandler) ListByProject(c *fiber.Ctx) error {
	items, err := h.uc.ListByProject(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// CreateNeed godoc
// @Summary      Anotar necesidad urgente de material
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNeedRequest  true  "project_id, article"
// @Success      201   {object}  dto.NeedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/needs [post]
func (h *InventoryHandler) CreateNeed(c *fiber.Ctx) error {
	var in dto.CreateNeedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	need, err := h.uc.CreateNeed(c.Context(), in, GetWorkerID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del pedido inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(need)
}

// ListNeeds godoc
// @Summary      Pedidos urgentes de una obra
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {array}   dto.NeedResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/needs [get]
func (h *InventoryHandler) ListNeeds(c *fiber.Ctx) error {
	needs, err := h.uc.ListNeeds(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(needs)
}

// UpdateNeedStatus godoc
// @Summary      Cambiar estado de un pedido urgente
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID del pedido"
// @Param        body  body  dto.UpdateNeedRequest  true  "status: to_order | ordered | delivered"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/needs/{id} [put]
func (h *InventoryHandler) UpdateNeedStatus(c *fiber.Ctx) error {
	var in dto.UpdateNeedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateNeedStatus(c.Params("id"), in.Status); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado de pedido inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
