package repository

import "github.com/jhoicas/Fichajes-api/internal/domain/entity"

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Create(task *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	ListByProject(projectID string) ([]*entity.Task, error)
	SetDone(id string, done bool) error
	Delete(id string) error
}
