package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

// TaskUseCase tablero de tareas de obra. Cada mutación publica un evento de
// cambio por identificador para que los listeners refresquen solo esa fila.
type TaskUseCase struct {
	repo      repository.TaskRepository
	publisher events.Publisher
	log       *logger.Logger
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(repo repository.TaskRepository, publisher events.Publisher, log *logger.Logger) *TaskUseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TaskUseCase{repo: repo, publisher: publisher, log: log}
}

// Create alta de tarea.
func (uc *TaskUseCase) Create(ctx context.Context, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if in.Label == "" || in.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}
	task := &entity.Task{
		ID:         uuid.New().String(),
		ProjectID:  in.ProjectID,
		Label:      in.Label,
		AssigneeID: in.AssigneeID,
		Urgent:     in.Urgent,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(task); err != nil {
		return nil, err
	}
	uc.publish(ctx, task, events.ActionCreated)
	return toTaskResponse(task), nil
}

// Toggle alterna el flag done.
func (uc *TaskUseCase) Toggle(ctx context.Context, id string, done bool) (*dto.TaskResponse, error) {
	task, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetDone(id, done); err != nil {
		return nil, err
	}
	task.Done = done
	uc.publish(ctx, task, events.ActionUpdated)
	return toTaskResponse(task), nil
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(ctx context.Context, id string) error {
	task, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.publish(ctx, task, events.ActionDeleted)
	return nil
}

// ListByProject tareas de la obra con el avance agregado.
func (uc *TaskUseCase) ListByProject(projectID string) ([]dto.TaskResponse, *dto.TaskProgress, error) {
	tasks, err := uc.repo.ListByProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	list := make([]dto.TaskResponse, 0, len(tasks))
	progress := &dto.TaskProgress{}
	for _, t := range tasks {
		list = append(list, *toTaskResponse(t))
		progress.Total++
		if t.Done {
			progress.Done++
		}
	}
	if progress.Total > 0 {
		progress.Percent = float64(progress.Done) / float64(progress.Total) * 100
	}
	return list, progress, nil
}

func (uc *TaskUseCase) publish(ctx context.Context, task *entity.Task, action string) {
	err := uc.publisher.Publish(ctx, events.Change{
		Entity:    events.EntityTask,
		ID:        task.ID,
		ProjectID: task.ProjectID,
		Action:    action,
		At:        time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("task_id", task.ID).Msg("no se pudo publicar el evento de cambio")
	}
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:         t.ID,
		ProjectID:  t.ProjectID,
		Label:      t.Label,
		Done:       t.Done,
		AssigneeID: t.AssigneeID,
		Urgent:     t.Urgent,
		CreatedAt:  t.CreatedAt,
	}
}
