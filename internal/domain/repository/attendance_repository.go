package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
)

// AttendanceRepository define el puerto de persistencia del libro de fichajes.
// El store es la única fuente de verdad: el engine no cachea estado entre
// llamadas y siempre relee antes de mutar.
type AttendanceRepository interface {
	Create(session *entity.AttendanceSession) error
	GetByID(id string) (*entity.AttendanceSession, error)
	// FindOpenByWorker devuelve las sesiones abiertas del trabajador (cualquier obra).
	FindOpenByWorker(workerID string) ([]*entity.AttendanceSession, error)
	// ExistsForDay indica si ya hay una sesión (abierta o cerrada) del
	// trabajador en la obra cuyo check-in cae en el día natural de day.
	ExistsForDay(workerID, projectID string, day time.Time) (bool, error)
	// ListByProject ordena por check-in descendente (mismo orden que la pantalla
	// de nóminas, que el export debe reflejar).
	ListByProject(projectID string) ([]*entity.AttendanceSession, error)
	ListClosedByProject(projectID string) ([]*entity.AttendanceSession, error)
	// CloseIfOpen cierra la sesión solo si sigue abierta (update condicional:
	// WHERE check_out IS NULL). Devuelve false si otro caller ganó la carrera.
	CloseIfOpen(id string, checkOut time.Time, signature []byte, totalHours decimal.Decimal) (bool, error)
}

// AttendanceTxRepository añade las variantes con bloqueo de fila que solo tienen
// sentido dentro de una transacción (SELECT ... FOR UPDATE).
type AttendanceTxRepository interface {
	AttendanceRepository
	FindOpenByWorkerForUpdate(workerID string) ([]*entity.AttendanceSession, error)
}
