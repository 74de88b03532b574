package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

var _ repository.AttendanceTxRepository = (*AttendanceRepo)(nil)

// AttendanceRepo implementación del puerto AttendanceRepository sobre PostgreSQL.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador del libro de fichajes. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

const sessionColumns = `id, worker_id, project_id, check_in, check_out, gps_lat, gps_lng,
	signature_in, signature_out, total_hours, created_at`

// Create persiste una nueva sesión de fichaje.
func (r *AttendanceRepo) Create(s *entity.AttendanceSession) error {
	var lat, lng *float64
	if s.GPS != nil {
		lat, lng = &s.GPS.Lat, &s.GPS.Lng
	}
	query := `
		INSERT INTO attendance_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.WorkerID, s.ProjectID, s.CheckIn, s.CheckOut, lat, lng,
		s.SignatureIn, s.SignatureOut, s.TotalHours, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attendance session: %w", err)
	}
	return nil
}

// GetByID obtiene una sesión por ID.
func (r *AttendanceRepo) GetByID(id string) (*entity.AttendanceSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM attendance_sessions WHERE id = $1`
	s, err := scanSession(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session by id: %w", err)
	}
	return s, nil
}

// FindOpenByWorker devuelve las sesiones abiertas del trabajador.
func (r *AttendanceRepo) FindOpenByWorker(workerID string) ([]*entity.AttendanceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE worker_id = $1 AND check_out IS NULL`
	return r.list(query, workerID)
}

// FindOpenByWorkerForUpdate igual que FindOpenByWorker pero bloqueando las filas
// (SELECT ... FOR UPDATE). Solo tiene sentido dentro de una transacción.
func (r *AttendanceRepo) FindOpenByWorkerForUpdate(workerID string) ([]*entity.AttendanceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE worker_id = $1 AND check_out IS NULL
		FOR UPDATE`
	return r.list(query, workerID)
}

// ExistsForDay indica si ya hay una sesión del trabajador en la obra ese día
// natural. El día se define en UTC, la misma expresión que el índice único
// uq_sessions_worker_project_day.
func (r *AttendanceRepo) ExistsForDay(workerID, projectID string, day time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance_sessions
			WHERE worker_id = $1 AND project_id = $2
			  AND (check_in AT TIME ZONE 'UTC')::date = ($3::timestamptz AT TIME ZONE 'UTC')::date
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, workerID, projectID, day).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check session for day: %w", err)
	}
	return exists, nil
}

// ListByProject lista las sesiones de una obra, check-in más reciente primero.
func (r *AttendanceRepo) ListByProject(projectID string) ([]*entity.AttendanceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE project_id = $1
		ORDER BY check_in DESC`
	return r.list(query, projectID)
}

// ListClosedByProject lista solo las sesiones ya cerradas, check-in más reciente primero.
func (r *AttendanceRepo) ListClosedByProject(projectID string) ([]*entity.AttendanceSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM attendance_sessions
		WHERE project_id = $1 AND check_out IS NOT NULL
		ORDER BY check_in DESC`
	return r.list(query, projectID)
}

// CloseIfOpen cierra la sesión con update condicional (WHERE check_out IS NULL).
// Devuelve false si la sesión ya estaba cerrada por otro caller.
func (r *AttendanceRepo) CloseIfOpen(id string, checkOut time.Time, signature []byte, totalHours decimal.Decimal) (bool, error) {
	query := `
		UPDATE attendance_sessions
		SET check_out = $2, signature_out = $3, total_hours = $4
		WHERE id = $1 AND check_out IS NULL`
	tag, err := r.q.Exec(context.Background(), query, id, checkOut, signature, totalHours)
	if err != nil {
		return false, fmt.Errorf("close session: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AttendanceRepo) list(query string, args ...any) ([]*entity.AttendanceSession, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.AttendanceSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSession(row pgx.Row) (*entity.AttendanceSession, error) {
	var s entity.AttendanceSession
	var lat, lng *float64
	err := row.Scan(&s.ID, &s.WorkerID, &s.ProjectID, &s.CheckIn, &s.CheckOut, &lat, &lng,
		&s.SignatureIn, &s.SignatureOut, &s.TotalHours, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		s.GPS = &entity.GPS{Lat: *lat, Lng: *lng}
	}
	return &s, nil
}
