package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de metadatos de documentos.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste los metadatos de un documento.
func (r *DocumentRepo) Create(d *entity.Document) error {
	query := `
		INSERT INTO documents (id, project_id, kind, name, url, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.ProjectID, d.Kind, d.Name, d.URL, d.UploadedBy, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// ListByProject lista los documentos de una obra, más reciente primero.
func (r *DocumentRepo) ListByProject(projectID string) ([]*entity.Document, error) {
	query := `
		SELECT id, project_id, kind, name, url, uploaded_by, created_at
		FROM documents WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Kind, &d.Name, &d.URL, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// CountByKind cuenta los documentos de un tipo en una obra.
func (r *DocumentRepo) CountByKind(projectID, kind string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM documents WHERE project_id = $1 AND kind = $2`, projectID, kind).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// Delete elimina los metadatos de un documento.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
