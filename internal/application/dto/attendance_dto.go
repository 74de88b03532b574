package dto

import "time"

// GPSDTO coordenada opcional capturada por el dispositivo en el check-in.
type GPSDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ClockInRequest entrada del fichaje de llegada. La firma viaja en base64
// (canvas del muro de fichaje); el GPS puede venir vacío si el dispositivo no
// lo consiguió; entonces decide la política require_gps.
type ClockInRequest struct {
	ProjectID string  `json:"project_id" validate:"required,uuid"`
	GPS       *GPSDTO `json:"gps"`
	Signature string  `json:"signature" validate:"required"`
}

// ClockOutRequest entrada del fichaje de salida.
type ClockOutRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	Signature string `json:"signature" validate:"required"`
}

// SessionResponse salida de una sesión de fichaje. TotalHours viene redondeado
// a los dígitos de presentación configurados; el valor almacenado no se redondea.
type SessionResponse struct {
	ID         string     `json:"id"`
	WorkerID   string     `json:"worker_id"`
	WorkerName string     `json:"worker_name,omitempty"`
	Matricule  string     `json:"matricule,omitempty"`
	ProjectID  string     `json:"project_id"`
	CheckIn    time.Time  `json:"check_in"`
	CheckOut   *time.Time `json:"check_out,omitempty"`
	GPS        *GPSDTO    `json:"gps,omitempty"`
	TotalHours *string    `json:"total_hours,omitempty"`
	Forgotten  bool       `json:"forgotten"`
	Warnings   []string   `json:"warnings,omitempty"`
}
