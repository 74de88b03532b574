package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/usecase"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
)

// DocumentHandler maneja el dossier documental de obra (protegido).
type DocumentHandler struct {
	uc *usecase.DocumentUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *usecase.DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar metadatos de un documento subido
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterDocumentRequest  true  "project_id, kind, name, url"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *DocumentHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	doc, err := h.uc.Register(in.ProjectID, in.Kind, in.Name, in.URL, GetWorkerID(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de documento inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toDocumentResponse(doc))
}

// ListByProject godoc
// @Summary      Dossier completo de una obra
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID de la obra"
// @Success      200  {array}   dto.DocumentResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/projects/{projectId}/documents [get]
func (h *DocumentHandler) ListByProject(c *fiber.Ctx) error {
	docs, err := h.uc.ListByProject(c.Params("projectId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, toDocumentResponse(d))
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar metadatos de un documento
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toDocumentResponse(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:         d.ID,
		ProjectID:  d.ProjectID,
		Kind:       d.Kind,
		Name:       d.Name,
		URL:        d.URL,
		UploadedBy: d.UploadedBy,
		CreatedAt:  d.CreatedAt,
	}
}
