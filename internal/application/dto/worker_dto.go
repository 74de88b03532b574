package dto

import "time"

// CreateWorkerRequest alta de trabajador (acción de admin).
type CreateWorkerRequest struct {
	Matricule  string   `json:"matricule" validate:"required,min=3,max=32"`
	Name       string   `json:"name" validate:"required,min=1,max=200"`
	Role       string   `json:"role" validate:"required,oneof=admin site_lead crew_lead operator temp"`
	Phone      string   `json:"phone" validate:"omitempty,max=32"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,min=0"`
	Pin        string   `json:"pin" validate:"omitempty,min=4,max=12"` // solo admins; se hashea en el use case
}

// UpdateWorkerRequest edición de trabajador; Status cubre las transiciones
// (vacaciones, baja, etc.).
type UpdateWorkerRequest struct {
	Name       string   `json:"name" validate:"omitempty,max=200"`
	Role       string   `json:"role" validate:"omitempty,oneof=admin site_lead crew_lead operator temp"`
	Status     string   `json:"status" validate:"omitempty,oneof=available leave sick stopped"`
	Phone      string   `json:"phone" validate:"omitempty,max=32"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,min=0"`
}

// WorkerResponse salida de un trabajador (sin pin).
type WorkerResponse struct {
	ID         string    `json:"id"`
	Matricule  string    `json:"matricule"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	Phone      string    `json:"phone,omitempty"`
	HourlyRate *float64  `json:"hourly_rate,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WorkerStatusCounters contadores del directorio (disponibles, de baja, ...).
type WorkerStatusCounters struct {
	Available int `json:"available"`
	OnLeave   int `json:"leave"`
	Sick      int `json:"sick"`
	Stopped   int `json:"stopped"`
}
