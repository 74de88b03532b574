package dto

import "time"

// RegisterDocumentRequest alta de metadatos de un documento ya subido al
// storage (el binario nunca pasa por esta API).
type RegisterDocumentRequest struct {
	ProjectID string `json:"project_id" validate:"required,uuid"`
	Kind      string `json:"kind" validate:"required,oneof=photo plan report certificate"`
	Name      string `json:"name" validate:"required,min=1,max=300"`
	URL       string `json:"url" validate:"required,url"`
}

// DocumentResponse salida de un documento del dossier.
type DocumentResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Kind       string    `json:"kind"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedBy string    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
