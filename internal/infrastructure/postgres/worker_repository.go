package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo implementación del puerto WorkerRepository sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador de persistencia para trabajadores.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

const workerColumns = `id, matricule, name, role, status, phone, hourly_rate, pin_hash, created_at, updated_at`

// Create persiste un nuevo trabajador.
func (r *WorkerRepo) Create(w *entity.Worker) error {
	query := `
		INSERT INTO workers (` + workerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.Matricule, w.Name, w.Role, w.Status, w.Phone, w.HourlyRate, w.PinHash,
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatriculeExists
		}
		return fmt.Errorf("insert worker: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajador por ID.
func (r *WorkerRepo) GetByID(id string) (*entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get worker by id")
}

// GetByMatricule obtiene un trabajador por matrícula (ya normalizada a mayúsculas).
func (r *WorkerRepo) GetByMatricule(matricule string) (*entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers WHERE matricule = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, matricule), "get worker by matricule")
}

// Update actualiza un trabajador.
func (r *WorkerRepo) Update(w *entity.Worker) error {
	query := `
		UPDATE workers
		SET name = $2, role = $3, status = $4, phone = $5, hourly_rate = $6, pin_hash = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.Name, w.Role, w.Status, w.Phone, w.HourlyRate, w.PinHash, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update worker: %w", err)
	}
	return nil
}

// List lista trabajadores ordenados por nombre con paginación.
func (r *WorkerRepo) List(limit, offset int) ([]*entity.Worker, error) {
	query := `SELECT ` + workerColumns + ` FROM workers ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list workers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Worker
	for rows.Next() {
		var w entity.Worker
		if err := rows.Scan(&w.ID, &w.Matricule, &w.Name, &w.Role, &w.Status, &w.Phone,
			&w.HourlyRate, &w.PinHash, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan worker: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// RatesByID devuelve la tarifa horaria por WorkerID, omitiendo los que no la tienen.
func (r *WorkerRepo) RatesByID() (map[string]decimal.Decimal, error) {
	query := `SELECT id, hourly_rate FROM workers WHERE hourly_rate IS NOT NULL`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list worker rates: %w", err)
	}
	defer rows.Close()
	rates := make(map[string]decimal.Decimal)
	for rows.Next() {
		var id string
		var rate decimal.Decimal
		if err := rows.Scan(&id, &rate); err != nil {
			return nil, fmt.Errorf("scan worker rate: %w", err)
		}
		rates[id] = rate
	}
	return rates, rows.Err()
}

func (r *WorkerRepo) scanOne(row pgx.Row, op string) (*entity.Worker, error) {
	var w entity.Worker
	err := row.Scan(&w.ID, &w.Matricule, &w.Name, &w.Role, &w.Status, &w.Phone,
		&w.HourlyRate, &w.PinHash, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &w, nil
}
