// Package attendance implementa el engine de fichaje: la máquina de estados
// clock-in → clock-out por (trabajador, obra), la detección de olvidos y los
// agregados derivados. Todo estado sale del store en cada llamada; el engine no
// cachea sesiones entre operaciones.
package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
	"github.com/jhoicas/Fichajes-api/internal/domain/timeclock"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

// UseCase engine de fichaje.
type UseCase struct {
	txRunner    TxRunner
	sessionRepo repository.AttendanceRepository
	workerRepo  repository.WorkerRepository
	projectRepo repository.ProjectRepository
	geo         GeoProvider
	publisher   events.Publisher
	policy      Policy
	log         *logger.Logger

	now func() time.Time // inyectable en tests
}

// NewUseCase construye el engine. geo puede ser nil si require_gps está apagado.
func NewUseCase(
	txRunner TxRunner,
	sessionRepo repository.AttendanceRepository,
	workerRepo repository.WorkerRepository,
	projectRepo repository.ProjectRepository,
	geo GeoProvider,
	publisher events.Publisher,
	policy Policy,
	log *logger.Logger,
) *UseCase {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UseCase{
		txRunner:    txRunner,
		sessionRepo: sessionRepo,
		workerRepo:  workerRepo,
		projectRepo: projectRepo,
		geo:         geo,
		publisher:   publisher,
		policy:      policy,
		log:         log,
		now:         time.Now,
	}
}

// ClockInInput entrada del fichaje de llegada. ActingWorkerID viene siempre del
// contexto autenticado de la llamada, nunca de un estado global.
type ClockInInput struct {
	ActingWorkerID string
	ProjectID      string
	Coordinate     *entity.GPS // nil = el dispositivo no consiguió posición
	Signature      []byte
}

// ClockInResult resultado del alta de sesión.
type ClockInResult struct {
	SessionID string
	CheckIn   time.Time
	GPS       *entity.GPS
}

// ClockIn abre una sesión de fichaje. Transición permitida solo desde
// "sin sesión" o desde una sesión cerrada de un día anterior: como mucho una
// sesión por trabajador, obra y día. Toda validación ocurre antes de persistir;
// si algo falla no se escribe nada (una única escritura en caso de éxito).
func (uc *UseCase) ClockIn(ctx context.Context, in ClockInInput) (*ClockInResult, error) {
	if len(in.Signature) == 0 {
		return nil, domain.ErrMissingEvidence
	}
	worker, err := uc.workerRepo.GetByID(in.ActingWorkerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}
	project, err := uc.projectRepo.GetByID(in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	coord := in.Coordinate
	if coord == nil && uc.policy.RequireGPS {
		coord, err = uc.locate(ctx)
		if err != nil {
			return nil, domain.ErrLocationUnavailable
		}
	}

	now := uc.now()
	session := &entity.AttendanceSession{
		ID:          uuid.New().String(),
		WorkerID:    in.ActingWorkerID,
		ProjectID:   in.ProjectID,
		CheckIn:     now,
		GPS:         coord,
		SignatureIn: in.Signature,
		CreatedAt:   now,
	}

	// Chequeo de duplicado + insert en la misma transacción, con bloqueo de las
	// sesiones abiertas del trabajador para que dos clock-in concurrentes no
	// pasen los dos el chequeo.
	err = uc.txRunner.Run(ctx, func(repo repository.AttendanceTxRepository) error {
		open, err := repo.FindOpenByWorkerForUpdate(in.ActingWorkerID)
		if err != nil {
			return err
		}
		for _, s := range open {
			if s.ProjectID == in.ProjectID || !uc.policy.AllowMultiProject {
				return domain.ErrDuplicateSession
			}
		}
		exists, err := repo.ExistsForDay(in.ActingWorkerID, in.ProjectID, now)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateSession
		}
		return repo.Create(session)
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, events.Change{
		Entity: events.EntitySession, ID: session.ID,
		ProjectID: session.ProjectID, Action: events.ActionCreated, At: now,
	})
	return &ClockInResult{SessionID: session.ID, CheckIn: now, GPS: coord}, nil
}

// ClockOutInput entrada del fichaje de salida.
type ClockOutInput struct {
	ActingWorkerID string
	SessionID      string
	Signature      []byte
}

// ClockOutResult resultado del cierre. Warnings lleva los avisos no fatales
// (ej. CLOCK_SKEW); la operación no aborta por ellos.
type ClockOutResult struct {
	SessionID  string
	CheckOut   time.Time
	TotalHours decimal.Decimal
	Warnings   []string
}

// ClockOut cierra una sesión abierta. El update del store está condicionado a
// que la sesión siga abierta; el perdedor de una carrera de doble clock-out
// recibe ErrAlreadyClosed y la sesión no se toca dos veces.
func (uc *UseCase) ClockOut(ctx context.Context, in ClockOutInput) (*ClockOutResult, error) {
	if len(in.Signature) == 0 {
		return nil, domain.ErrMissingEvidence
	}
	session, err := uc.sessionRepo.GetByID(in.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if !session.Open() {
		return nil, domain.ErrAlreadyClosed
	}
	if in.ActingWorkerID != "" && session.WorkerID != in.ActingWorkerID {
		return nil, domain.ErrForbidden
	}

	var warnings []string
	checkOut := uc.now()
	if checkOut.Before(session.CheckIn) {
		// Deriva de reloj entre dispositivos: se fija al check-in en vez de
		// fallar, y se avisa.
		checkOut = session.CheckIn
		warnings = append(warnings, domain.WarnClockSkew)
		uc.log.Warn().
			Str("session_id", session.ID).
			Time("check_in", session.CheckIn).
			Msg("clock-out anterior al check-in; ajustado al check-in")
	}
	total := timeclock.HoursBetween(session.CheckIn, checkOut)

	closed, err := uc.sessionRepo.CloseIfOpen(session.ID, checkOut, in.Signature, total)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, domain.ErrAlreadyClosed
	}

	uc.publish(ctx, events.Change{
		Entity: events.EntitySession, ID: session.ID,
		ProjectID: session.ProjectID, Action: events.ActionUpdated, At: checkOut,
	})
	return &ClockOutResult{
		SessionID:  session.ID,
		CheckOut:   checkOut,
		TotalHours: total,
		Warnings:   warnings,
	}, nil
}

// ListByProject devuelve las sesiones de la obra (check-in descendente) junto
// con el flag derivado de olvido calculado con la hora actual.
func (uc *UseCase) ListByProject(projectID string) ([]*entity.AttendanceSession, []bool, error) {
	sessions, err := uc.sessionRepo.ListByProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	now := uc.now()
	forgotten := make([]bool, len(sessions))
	for i, s := range sessions {
		forgotten[i] = timeclock.Forgotten(s, now, uc.policy.ForgottenCutoffHour)
	}
	return sessions, forgotten, nil
}

// locate pide una lectura al proveedor de geolocalización con espera acotada.
func (uc *UseCase) locate(ctx context.Context) (*entity.GPS, error) {
	if uc.geo == nil {
		return nil, domain.ErrLocationUnavailable
	}
	coord, err := uc.geo.Locate(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("proveedor de geolocalización no disponible")
		return nil, err
	}
	return coord, nil
}

func (uc *UseCase) publish(ctx context.Context, change events.Change) {
	if err := uc.publisher.Publish(ctx, change); err != nil {
		uc.log.Warn().Err(err).Str("entity", change.Entity).Msg("no se pudo publicar el evento de cambio")
	}
}
