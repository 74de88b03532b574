package dto

import "time"

// CreateTaskRequest alta de tarea en el tablero de obra.
type CreateTaskRequest struct {
	ProjectID  string `json:"project_id" validate:"required,uuid"`
	Label      string `json:"label" validate:"required,min=1,max=300"`
	AssigneeID string `json:"assignee_id" validate:"omitempty,uuid"`
	Urgent     bool   `json:"urgent"`
}

// ToggleTaskRequest alterna el flag done.
type ToggleTaskRequest struct {
	Done bool `json:"done"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Label      string    `json:"label"`
	Done       bool      `json:"done"`
	AssigneeID string    `json:"assignee_id,omitempty"`
	Urgent     bool      `json:"urgent"`
	CreatedAt  time.Time `json:"created_at"`
}

// TaskProgress avance del tablero: done/total y porcentaje.
type TaskProgress struct {
	Total   int     `json:"total"`
	Done    int     `json:"done"`
	Percent float64 `json:"percent"`
}
