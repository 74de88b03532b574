package auth_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Fichajes-api/internal/application/auth"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Fichajes-api/pkg/jwt"
)

type stubWorkerRepo struct {
	byMatricule map[string]*entity.Worker
}

func (s *stubWorkerRepo) Create(*entity.Worker) error             { return nil }
func (s *stubWorkerRepo) GetByID(string) (*entity.Worker, error)  { return nil, nil }
func (s *stubWorkerRepo) Update(*entity.Worker) error             { return nil }
func (s *stubWorkerRepo) List(int, int) ([]*entity.Worker, error) { return nil, nil }
func (s *stubWorkerRepo) RatesByID() (map[string]decimal.Decimal, error) {
	return nil, nil
}
func (s *stubWorkerRepo) GetByMatricule(m string) (*entity.Worker, error) {
	return s.byMatricule[m], nil
}

func newAuthUC(t *testing.T, workers ...*entity.Worker) *auth.UseCase {
	t.Helper()
	repo := &stubWorkerRepo{byMatricule: map[string]*entity.Worker{}}
	for _, w := range workers {
		repo.byMatricule[w.Matricule] = w
	}
	return auth.NewUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "fichajes-obra-test",
	})
}

func TestLogin_MatriculaSinPin(t *testing.T) {
	uc := newAuthUC(t, &entity.Worker{
		ID: "w-1", Matricule: "AB123", Name: "Marc Dupont",
		Role: entity.RoleOperator, Status: entity.WorkerAvailable,
	})

	// La matrícula se normaliza: minúsculas y espacios no importan.
	out, err := uc.Login(auth.LoginRequest{Matricule: "  ab123 "})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "Marc Dupont", out.Worker.Name)

	workerID, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "w-1", workerID)
	assert.Equal(t, entity.RoleOperator, role)
}

func TestLogin_AdminConPin(t *testing.T) {
	hash, err := auth.HashPin("4321")
	require.NoError(t, err)
	uc := newAuthUC(t, &entity.Worker{
		ID: "w-9", Matricule: "ZZ900", Role: entity.RoleAdmin,
		Status: entity.WorkerAvailable, PinHash: hash,
	})

	_, err = uc.Login(auth.LoginRequest{Matricule: "ZZ900", Pin: "0000"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "PIN incorrecto debe rechazarse")

	out, err := uc.Login(auth.LoginRequest{Matricule: "ZZ900", Pin: "4321"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogin_MatriculaDesconocida(t *testing.T) {
	uc := newAuthUC(t)

	_, err := uc.Login(auth.LoginRequest{Matricule: "NADIE"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"matrícula desconocida y PIN incorrecto devuelven el mismo error")
}

func TestLogin_TrabajadorDeBaja(t *testing.T) {
	uc := newAuthUC(t, &entity.Worker{
		ID: "w-2", Matricule: "CD456", Role: entity.RoleOperator,
		Status: entity.WorkerStopped,
	})

	_, err := uc.Login(auth.LoginRequest{Matricule: "CD456"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
