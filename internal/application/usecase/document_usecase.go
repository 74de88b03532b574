package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

// DocumentUseCase metadatos del dossier de obra (fotos, planos, partes,
// certificados). El binario vive en el storage externo; aquí solo la referencia.
type DocumentUseCase struct {
	repo repository.DocumentRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{repo: repo}
}

// Register da de alta el metadato de un fichero ya subido al storage.
func (uc *DocumentUseCase) Register(projectID, kind, name, url, uploadedBy string) (*entity.Document, error) {
	switch kind {
	case entity.DocPhoto, entity.DocPlan, entity.DocReport, entity.DocCertificate:
	default:
		return nil, domain.ErrInvalidInput
	}
	if projectID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	doc := &entity.Document{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Kind:       kind,
		Name:       name,
		URL:        url,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByProject dossier completo de la obra.
func (uc *DocumentUseCase) ListByProject(projectID string) ([]*entity.Document, error) {
	return uc.repo.ListByProject(projectID)
}

// Delete borra el metadato (el fichero del storage es responsabilidad externa).
func (uc *DocumentUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}
