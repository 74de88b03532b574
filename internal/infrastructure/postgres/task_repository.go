package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación del puerto TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de persistencia para tareas.
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, project_id, label, done, assignee_id, urgent, created_at`

// Create persiste una nueva tarea.
func (r *TaskRepo) Create(t *entity.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.ProjectID, t.Label, t.Done, t.AssigneeID, t.Urgent, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *TaskRepo) GetByID(id string) (*entity.Task, error) {
	query := `SELECT id, project_id, label, done, COALESCE(assignee_id::text, ''), urgent, created_at
		FROM tasks WHERE id = $1`
	var t entity.Task
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.ProjectID, &t.Label, &t.Done, &t.AssigneeID, &t.Urgent, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}
	return &t, nil
}

// ListByProject lista las tareas de una obra, urgentes primero, luego por creación.
func (r *TaskRepo) ListByProject(projectID string) ([]*entity.Task, error) {
	query := `SELECT id, project_id, label, done, COALESCE(assignee_id::text, ''), urgent, created_at
		FROM tasks WHERE project_id = $1 ORDER BY urgent DESC, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Label, &t.Done, &t.AssigneeID, &t.Urgent, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// SetDone fija el estado done de la tarea.
func (r *TaskRepo) SetDone(id string, done bool) error {
	_, err := r.q.Exec(context.Background(), `UPDATE tasks SET done = $2 WHERE id = $1`, id, done)
	if err != nil {
		return fmt.Errorf("set task done: %w", err)
	}
	return nil
}

// Delete elimina una tarea por ID.
func (r *TaskRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
