package repository

import "github.com/jhoicas/Fichajes-api/internal/domain/entity"

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(project *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	Update(project *entity.Project) error
	List(limit, offset int) ([]*entity.Project, error)
	// SetCrew reemplaza el equipo asignado (lista de WorkerIDs).
	SetCrew(projectID string, crew []string) error
}
