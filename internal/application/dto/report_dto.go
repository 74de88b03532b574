package dto

// SummaryRequest datos del parte de fin de jornada que el dispositivo conoce
// (las notas libres); el resto lo resuelve el servidor.
type SummaryRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// SummaryResponse parte de fin de jornada listo para la superficie de correo
// externa; el core nunca lo envía.
type SummaryResponse struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ExportResponse export tabular con nombre de fichero sugerido.
type ExportResponse struct {
	FileName string `json:"file_name"`
	Content  string `json:"content"`
}
