package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fichajes-api/internal/application/events"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*entity.AttendanceSession
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]*entity.AttendanceSession{}}
}

func (f *fakeStore) Create(s *entity.AttendanceSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.ID] = &cp
	return nil
}

func (f *fakeStore) GetByID(id string) (*entity.AttendanceSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStore) FindOpenByWorker(workerID string) ([]*entity.AttendanceSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.AttendanceSession
	for _, s := range f.sessions {
		if s.WorkerID == workerID && s.CheckOut == nil {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) FindOpenByWorkerForUpdate(workerID string) ([]*entity.AttendanceSession, error) {
	return f.FindOpenByWorker(workerID)
}

func (f *fakeStore) ExistsForDay(workerID, projectID string, day time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	y, m, d := day.Date()
	for _, s := range f.sessions {
		sy, sm, sd := s.CheckIn.Date()
		if s.WorkerID == workerID && s.ProjectID == projectID && sy == y && sm == m && sd == d {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListByProject(projectID string) ([]*entity.AttendanceSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.AttendanceSession
	for _, s := range f.sessions {
		if s.ProjectID == projectID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeStore) ListClosedByProject(projectID string) ([]*entity.AttendanceSession, error) {
	all, _ := f.ListByProject(projectID)
	var out []*entity.AttendanceSession
	for _, s := range all {
		if s.CheckOut != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) CloseIfOpen(id string, checkOut time.Time, signature []byte, totalHours decimal.Decimal) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok || s.CheckOut != nil {
		return false, nil
	}
	co := checkOut
	th := totalHours
	s.CheckOut = &co
	s.SignatureOut = signature
	s.TotalHours = &th
	return true, nil
}

type fakeTxRunner struct {
	repo repository.AttendanceTxRepository
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(repo repository.AttendanceTxRepository) error) error {
	return fn(f.repo)
}

type fakeWorkerRepo struct {
	workers map[string]*entity.Worker
}

func (f *fakeWorkerRepo) Create(w *entity.Worker) error           { f.workers[w.ID] = w; return nil }
func (f *fakeWorkerRepo) GetByID(id string) (*entity.Worker, error) {
	return f.workers[id], nil
}
func (f *fakeWorkerRepo) GetByMatricule(string) (*entity.Worker, error) { return nil, nil }
func (f *fakeWorkerRepo) Update(*entity.Worker) error                   { return nil }
func (f *fakeWorkerRepo) List(int, int) ([]*entity.Worker, error)       { return nil, nil }
func (f *fakeWorkerRepo) RatesByID() (map[string]decimal.Decimal, error) {
	return map[string]decimal.Decimal{}, nil
}

type fakeProjectRepo struct {
	projects map[string]*entity.Project
}

func (f *fakeProjectRepo) Create(p *entity.Project) error { f.projects[p.ID] = p; return nil }
func (f *fakeProjectRepo) GetByID(id string) (*entity.Project, error) {
	return f.projects[id], nil
}
func (f *fakeProjectRepo) Update(*entity.Project) error             { return nil }
func (f *fakeProjectRepo) List(int, int) ([]*entity.Project, error) { return nil, nil }
func (f *fakeProjectRepo) SetCrew(string, []string) error           { return nil }

type fakeGeo struct {
	coord *entity.GPS
	err   error
}

func (f *fakeGeo) Locate(context.Context) (*entity.GPS, error) { return f.coord, f.err }

type capturePublisher struct {
	mu      sync.Mutex
	changes []events.Change
}

func (p *capturePublisher) Publish(_ context.Context, c events.Change) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, c)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	workerID  = "w-1"
	otherID   = "w-2"
	projectID = "p-1"
	otherProj = "p-2"
)

type fixture struct {
	uc        *UseCase
	store     *fakeStore
	geo       *fakeGeo
	publisher *capturePublisher
	clock     *time.Time
}

func newFixture(t *testing.T, policy Policy) *fixture {
	t.Helper()
	store := newFakeStore()
	geo := &fakeGeo{coord: &entity.GPS{Lat: 48.89, Lng: 2.23}}
	pub := &capturePublisher{}
	workers := &fakeWorkerRepo{workers: map[string]*entity.Worker{
		workerID: {ID: workerID, Matricule: "AB123", Name: "Marc Dupont"},
		otherID:  {ID: otherID, Matricule: "CD456", Name: "Luc Martin"},
	}}
	projects := &fakeProjectRepo{projects: map[string]*entity.Project{
		projectID: {ID: projectID, Name: "Rue des Lilas"},
		otherProj: {ID: otherProj, Name: "Quai Nord"},
	}}

	uc := NewUseCase(&fakeTxRunner{repo: store}, store, workers, projects, geo, pub, policy, logger.NewNop())
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }
	return &fixture{uc: uc, store: store, geo: geo, publisher: pub, clock: &now}
}

func (f *fixture) advanceTo(t time.Time) { *f.clock = t }

var signature = []byte{0x89, 'P', 'N', 'G'}

// ──────────────────────────────────────────────────────────────────────────────
// ClockIn
// ──────────────────────────────────────────────────────────────────────────────

func TestClockIn_ConCoordenadaDelDispositivo(t *testing.T) {
	f := newFixture(t, Policy{RequireGPS: true})

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID,
		ProjectID:      projectID,
		Coordinate:     &entity.GPS{Lat: 40.0, Lng: -3.7},
		Signature:      signature,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	stored, err := f.store.GetByID(result.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored, "la sesión debe quedar persistida")
	assert.True(t, stored.Open(), "la sesión recién abierta no tiene check-out")
	assert.Equal(t, 40.0, stored.GPS.Lat)
	assert.Equal(t, signature, stored.SignatureIn)

	require.Len(t, f.publisher.changes, 1)
	assert.Equal(t, events.EntitySession, f.publisher.changes[0].Entity)
	assert.Equal(t, events.ActionCreated, f.publisher.changes[0].Action)
}

func TestClockIn_SinCoordenada_ResuelveConProveedor(t *testing.T) {
	f := newFixture(t, Policy{RequireGPS: true})

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID,
		ProjectID:      projectID,
		Signature:      signature,
	})
	require.NoError(t, err)
	require.NotNil(t, result.GPS)
	assert.Equal(t, 48.89, result.GPS.Lat)
	assert.Equal(t, 2.23, result.GPS.Lng)
}

func TestClockIn_SinPosicionYPoliticaEstricta_NoPersisteNada(t *testing.T) {
	f := newFixture(t, Policy{RequireGPS: true})
	f.geo.coord = nil
	f.geo.err = context.DeadlineExceeded

	_, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID,
		ProjectID:      projectID,
		Signature:      signature,
	})
	assert.ErrorIs(t, err, domain.ErrLocationUnavailable)
	assert.Empty(t, f.store.sessions, "un fichaje rechazado no escribe nada")
	assert.Empty(t, f.publisher.changes)
}

func TestClockIn_SinGPSConPoliticaLaxa_Acepta(t *testing.T) {
	f := newFixture(t, Policy{RequireGPS: false})
	f.geo.coord = nil
	f.geo.err = context.DeadlineExceeded

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID,
		ProjectID:      projectID,
		Signature:      signature,
	})
	require.NoError(t, err)
	assert.Nil(t, result.GPS, "sin require_gps la coordenada puede faltar")
}

func TestClockIn_SinFirma_Rechazado(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID,
		ProjectID:      projectID,
	})
	assert.ErrorIs(t, err, domain.ErrMissingEvidence)
}

func TestClockIn_TrabajadorInexistente(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: "nadie",
		ProjectID:      projectID,
		Signature:      signature,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClockIn_ConSesionAbierta_Duplicado(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	_, err = f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSession)
}

func TestClockIn_SegundaSesionMismoDiaTrasCerrar_Duplicado(t *testing.T) {
	f := newFixture(t, Policy{})

	first, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	f.advanceTo(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	_, err = f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: workerID, SessionID: first.SessionID, Signature: signature,
	})
	require.NoError(t, err)

	// Mismo día, misma obra: como mucho una sesión.
	_, err = f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSession)
}

func TestClockIn_OtraObraConMultiProject(t *testing.T) {
	f := newFixture(t, Policy{AllowMultiProject: true})

	_, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	_, err = f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: otherProj, Signature: signature,
	})
	assert.NoError(t, err, "con allow_multi_project la segunda obra es válida")

	// Sin el flag, la segunda obra se rechaza mientras la primera siga abierta.
	g := newFixture(t, Policy{AllowMultiProject: false})
	_, err = g.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)
	_, err = g.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: otherProj, Signature: signature,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateSession)
}

// ──────────────────────────────────────────────────────────────────────────────
// ClockOut
// ──────────────────────────────────────────────────────────────────────────────

func TestClockOut_JornadaCompleta(t *testing.T) {
	f := newFixture(t, Policy{})

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	// 08:00 → 16:30 son 8.5 horas exactas.
	f.advanceTo(time.Date(2026, 3, 10, 16, 30, 0, 0, time.UTC))
	out, err := f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: workerID, SessionID: result.SessionID, Signature: signature,
	})
	require.NoError(t, err)
	assert.True(t, out.TotalHours.Equal(decimal.RequireFromString("8.5")),
		"esperaba 8.5 horas, obtuve %s", out.TotalHours)
	assert.Empty(t, out.Warnings)

	stored, _ := f.store.GetByID(result.SessionID)
	assert.False(t, stored.Open())
	assert.Equal(t, signature, stored.SignatureOut)
}

func TestClockOut_DobleCierre_AlreadyClosed(t *testing.T) {
	f := newFixture(t, Policy{})

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	f.advanceTo(time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC))
	_, err = f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: workerID, SessionID: result.SessionID, Signature: signature,
	})
	require.NoError(t, err)

	_, err = f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: workerID, SessionID: result.SessionID, Signature: signature,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyClosed)
}

func TestClockOut_DeOtroTrabajador_Forbidden(t *testing.T) {
	f := newFixture(t, Policy{})

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	_, err = f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: otherID, SessionID: result.SessionID, Signature: signature,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClockOut_RelojAtrasado_AjustaYAvisa(t *testing.T) {
	f := newFixture(t, Policy{})

	result, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	// El reloj del dispositivo de salida va por detrás del de entrada.
	f.advanceTo(time.Date(2026, 3, 10, 7, 45, 0, 0, time.UTC))
	out, err := f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: workerID, SessionID: result.SessionID, Signature: signature,
	})
	require.NoError(t, err)
	assert.True(t, out.TotalHours.IsZero(), "con checkout ajustado al check-in la duración es 0")
	assert.Contains(t, out.Warnings, domain.WarnClockSkew)
	assert.Equal(t, result.CheckIn, out.CheckOut)
}

func TestClockOut_SesionInexistente(t *testing.T) {
	f := newFixture(t, Policy{})

	_, err := f.uc.ClockOut(context.Background(), ClockOutInput{
		ActingWorkerID: workerID, SessionID: "no-existe", Signature: signature,
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Olvidos
// ──────────────────────────────────────────────────────────────────────────────

func TestListByProject_MarcaOlvidosTrasElCorte(t *testing.T) {
	f := newFixture(t, Policy{ForgottenCutoffHour: 18})

	_, err := f.uc.ClockIn(context.Background(), ClockInInput{
		ActingWorkerID: workerID, ProjectID: projectID, Signature: signature,
	})
	require.NoError(t, err)

	// A media tarde todavía no es olvido.
	f.advanceTo(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))
	_, forgotten, err := f.uc.ListByProject(projectID)
	require.NoError(t, err)
	require.Len(t, forgotten, 1)
	assert.False(t, forgotten[0])

	// Pasado el corte la sesión abierta cuenta como olvido.
	f.advanceTo(time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC))
	_, forgotten, err = f.uc.ListByProject(projectID)
	require.NoError(t, err)
	assert.True(t, forgotten[0])
}
