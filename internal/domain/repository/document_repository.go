package repository

import "github.com/jhoicas/Fichajes-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia de metadatos de documentos.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	ListByProject(projectID string) ([]*entity.Document, error)
	CountByKind(projectID, kind string) (int, error)
	Delete(id string) error
}
