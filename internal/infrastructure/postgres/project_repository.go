package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo implementación del puerto ProjectRepository sobre PostgreSQL.
// El equipo asignado (crew) se guarda como text[] de WorkerIDs.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de persistencia para obras.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id, name, address, city, crew, budget_hours, status, created_at, updated_at`

// Create persiste una nueva obra.
func (r *ProjectRepo) Create(p *entity.Project) error {
	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Address, p.City, p.Crew, p.BudgetHours, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetByID obtiene una obra por ID.
func (r *ProjectRepo) GetByID(id string) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	var p entity.Project
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.City, &p.Crew, &p.BudgetHours, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return &p, nil
}

// Update actualiza una obra.
func (r *ProjectRepo) Update(p *entity.Project) error {
	query := `
		UPDATE projects
		SET name = $2, address = $3, city = $4, budget_hours = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Address, p.City, p.BudgetHours, p.Status, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// List lista obras ordenadas por creación descendente con paginación.
func (r *ProjectRepo) List(limit, offset int) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		var p entity.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.Crew, &p.BudgetHours,
			&p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SetCrew reemplaza el equipo asignado a la obra.
func (r *ProjectRepo) SetCrew(projectID string, crew []string) error {
	query := `UPDATE projects SET crew = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, projectID, crew)
	if err != nil {
		return fmt.Errorf("set project crew: %w", err)
	}
	return nil
}
