package entity

import "time"

// Task es una tarea de obra del tablero diario. Sin sub-workflow: solo se
// alterna el flag Done.
type Task struct {
	ID         string
	ProjectID  string
	Label      string
	Done       bool
	AssigneeID string
	Urgent     bool
	CreatedAt  time.Time
}
