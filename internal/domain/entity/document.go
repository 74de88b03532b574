package entity

import "time"

// Tipos de documento de obra. Representación canónica única: una sola tabla
// discriminada por Kind (el esquema de blobs sueltos del prototipo no se
// reproduce).
const (
	DocPhoto       = "photo"
	DocPlan        = "plan"
	DocReport      = "report"
	DocCertificate = "certificate"
)

// Document es metadato de un fichero de obra; el binario vive en el storage
// externo y aquí solo se referencia por URL.
type Document struct {
	ID         string
	ProjectID  string
	Kind       string // photo, plan, report, certificate
	Name       string
	URL        string
	UploadedBy string // WorkerID
	CreatedAt  time.Time
}
