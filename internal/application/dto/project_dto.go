package dto

import "time"

// CreateProjectRequest alta de obra.
type CreateProjectRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Address     string   `json:"address" validate:"omitempty,max=300"`
	City        string   `json:"city" validate:"omitempty,max=100"`
	Crew        []string `json:"crew" validate:"omitempty,dive,uuid"`
	BudgetHours float64  `json:"budget_hours" validate:"omitempty,min=0"`
}

// UpdateProjectRequest edición de obra; Status cubre pending → started → finished.
type UpdateProjectRequest struct {
	Name        string   `json:"name" validate:"omitempty,max=200"`
	Address     string   `json:"address" validate:"omitempty,max=300"`
	City        string   `json:"city" validate:"omitempty,max=100"`
	BudgetHours *float64 `json:"budget_hours" validate:"omitempty,min=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=pending started finished"`
}

// SetCrewRequest reemplaza el equipo asignado.
type SetCrewRequest struct {
	Crew []string `json:"crew" validate:"required,dive,uuid"`
}

// ProjectResponse salida de una obra. CrewNames resuelve los IDs contra el
// directorio: una referencia colgante se presenta como "trabajador desconocido".
type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	Crew        []string  `json:"crew"`
	CrewNames   []string  `json:"crew_names,omitempty"`
	BudgetHours float64   `json:"budget_hours"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
