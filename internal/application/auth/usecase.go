package auth

import (
	"strings"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
	"github.com/jhoicas/Fichajes-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase autenticación por matricule. El matricule funciona como código de
// acceso (se normaliza a mayúsculas, como el formulario original); los roles
// con acceso admin verifican además un PIN con bcrypt.
type UseCase struct {
	workerRepo repository.WorkerRepository
	jwtCfg     JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(workerRepo repository.WorkerRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{workerRepo: workerRepo, jwtCfg: jwtCfg}
}

// LoginRequest entrada del login. Pin solo es obligatorio si el trabajador
// tiene PIN configurado (admins).
type LoginRequest struct {
	Matricule string `json:"matricule" validate:"required"`
	Pin       string `json:"pin" validate:"omitempty"`
}

// LoginResponse token + trabajador autenticado.
type LoginResponse struct {
	Token  string             `json:"token"`
	Worker dto.WorkerResponse `json:"worker"`
}

// Login busca el matricule, verifica el PIN si aplica y emite el JWT con
// WorkerID y rol. Matricule desconocido → ErrUnauthorized (mismo mensaje que
// un PIN incorrecto, para no filtrar qué matricules existen).
func (uc *UseCase) Login(in LoginRequest) (*LoginResponse, error) {
	matricule := strings.ToUpper(strings.TrimSpace(in.Matricule))
	if matricule == "" {
		return nil, domain.ErrInvalidInput
	}
	worker, err := uc.workerRepo.GetByMatricule(matricule)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrUnauthorized
	}
	if worker.PinHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(worker.PinHash), []byte(in.Pin)); err != nil {
			return nil, domain.ErrUnauthorized
		}
	}
	if worker.Status == entity.WorkerStopped {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, worker.ID, worker.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, Worker: ToWorkerResponse(worker)}, nil
}

// HashPin hashea un PIN de admin con bcrypt (usado por el alta de trabajadores).
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ToWorkerResponse mapea la entidad a DTO (sin pin).
func ToWorkerResponse(w *entity.Worker) dto.WorkerResponse {
	resp := dto.WorkerResponse{
		ID:        w.ID,
		Matricule: w.Matricule,
		Name:      w.Name,
		Role:      w.Role,
		Status:    w.Status,
		Phone:     w.Phone,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.HourlyRate != nil {
		rate, _ := w.HourlyRate.Float64()
		resp.HourlyRate = &rate
	}
	return resp
}
