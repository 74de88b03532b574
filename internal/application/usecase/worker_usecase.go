package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/application/auth"
	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

// WorkerUseCase CRUD del directorio de trabajadores. Ciclo de vida blando:
// nunca se borra, las bajas son transiciones de estado.
type WorkerUseCase struct {
	repo repository.WorkerRepository
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(repo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{repo: repo}
}

// Create alta de trabajador (acción de admin). El matricule se normaliza a
// mayúsculas; un PIN solo se acepta para el rol admin.
func (uc *WorkerUseCase) Create(in dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	if in.Matricule == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByMatricule(normalizeMatricule(in.Matricule))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrMatriculeExists
	}
	now := time.Now()
	worker := &entity.Worker{
		ID:        uuid.New().String(),
		Matricule: normalizeMatricule(in.Matricule),
		Name:      in.Name,
		Role:      in.Role,
		Status:    entity.WorkerAvailable,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.HourlyRate != nil {
		rate := decimal.NewFromFloat(*in.HourlyRate)
		worker.HourlyRate = &rate
	}
	if in.Pin != "" {
		if in.Role != entity.RoleAdmin {
			return nil, domain.ErrInvalidInput
		}
		worker.PinHash, err = auth.HashPin(in.Pin)
		if err != nil {
			return nil, err
		}
	}
	if err := uc.repo.Create(worker); err != nil {
		return nil, err
	}
	resp := auth.ToWorkerResponse(worker)
	return &resp, nil
}

// Update edición de trabajador: nombre, rol, teléfono, tarifa y transiciones
// de estado (vacaciones, baja...).
func (uc *WorkerUseCase) Update(id string, in dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	worker, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		worker.Name = in.Name
	}
	if in.Role != "" {
		worker.Role = in.Role
	}
	if in.Status != "" {
		worker.Status = in.Status
	}
	if in.Phone != "" {
		worker.Phone = in.Phone
	}
	if in.HourlyRate != nil {
		rate := decimal.NewFromFloat(*in.HourlyRate)
		worker.HourlyRate = &rate
	}
	worker.UpdatedAt = time.Now()
	if err := uc.repo.Update(worker); err != nil {
		return nil, err
	}
	resp := auth.ToWorkerResponse(worker)
	return &resp, nil
}

// GetByID devuelve un trabajador.
func (uc *WorkerUseCase) GetByID(id string) (*dto.WorkerResponse, error) {
	worker, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}
	resp := auth.ToWorkerResponse(worker)
	return &resp, nil
}

// List directorio ordenado por nombre, con contadores por estado.
func (uc *WorkerUseCase) List(page dto.PageRequest) ([]dto.WorkerResponse, *dto.WorkerStatusCounters, error) {
	page.DefaultPage()
	workers, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, nil, err
	}
	list := make([]dto.WorkerResponse, 0, len(workers))
	counters := &dto.WorkerStatusCounters{}
	for _, w := range workers {
		list = append(list, auth.ToWorkerResponse(w))
		switch w.Status {
		case entity.WorkerAvailable:
			counters.Available++
		case entity.WorkerOnLeave:
			counters.OnLeave++
		case entity.WorkerSick:
			counters.Sick++
		case entity.WorkerStopped:
			counters.Stopped++
		}
	}
	return list, counters, nil
}

func normalizeMatricule(m string) string {
	out := make([]rune, 0, len(m))
	for _, r := range m {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r != ' ' {
			out = append(out, r)
		}
	}
	return string(out)
}
