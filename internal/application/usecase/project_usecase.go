package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

// ProjectUseCase CRUD de obras y asignación de equipo.
type ProjectUseCase struct {
	repo       repository.ProjectRepository
	workerRepo repository.WorkerRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(repo repository.ProjectRepository, workerRepo repository.WorkerRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo, workerRepo: workerRepo}
}

// Create alta de obra en estado pending.
func (uc *ProjectUseCase) Create(in dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	project := &entity.Project{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		Crew:        in.Crew,
		BudgetHours: decimal.NewFromFloat(in.BudgetHours),
		Status:      entity.ProjectPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(project); err != nil {
		return nil, err
	}
	return uc.toResponse(project), nil
}

// Update edición de obra, incluidas las transiciones pending → started → finished.
func (uc *ProjectUseCase) Update(id string, in dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Address != "" {
		project.Address = in.Address
	}
	if in.City != "" {
		project.City = in.City
	}
	if in.BudgetHours != nil {
		project.BudgetHours = decimal.NewFromFloat(*in.BudgetHours)
	}
	if in.Status != "" {
		project.Status = in.Status
	}
	project.UpdatedAt = time.Now()
	if err := uc.repo.Update(project); err != nil {
		return nil, err
	}
	return uc.toResponse(project), nil
}

// SetCrew reemplaza el equipo. Los IDs se validan contra el directorio; un ID
// desconocido rechaza la asignación (las referencias colgantes solo se toleran
// en lectura).
func (uc *ProjectUseCase) SetCrew(id string, crew []string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	for _, workerID := range crew {
		w, err := uc.workerRepo.GetByID(workerID)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if err := uc.repo.SetCrew(id, crew); err != nil {
		return nil, err
	}
	project.Crew = crew
	return uc.toResponse(project), nil
}

// GetByID devuelve una obra con los nombres del equipo resueltos.
func (uc *ProjectUseCase) GetByID(id string) (*dto.ProjectResponse, error) {
	project, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(project), nil
}

// List lista de obras paginada.
func (uc *ProjectUseCase) List(page dto.PageRequest) ([]dto.ProjectResponse, error) {
	page.DefaultPage()
	projects, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		list = append(list, *uc.toResponse(p))
	}
	return list, nil
}

func (uc *ProjectUseCase) toResponse(p *entity.Project) *dto.ProjectResponse {
	budget, _ := p.BudgetHours.Float64()
	resp := &dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		City:        p.City,
		Crew:        p.Crew,
		BudgetHours: budget,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	// Resolución best effort de nombres: una referencia colgante se muestra
	// como "trabajador desconocido", nunca rompe la lectura.
	for _, workerID := range p.Crew {
		w, err := uc.workerRepo.GetByID(workerID)
		if err != nil || w == nil {
			resp.CrewNames = append(resp.CrewNames, "unknown worker")
			continue
		}
		resp.CrewNames = append(resp.CrewNames, w.Name)
	}
	return resp
}
