package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Fichajes-api/internal/application/dto"
	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
	"github.com/jhoicas/Fichajes-api/internal/domain/timeclock"
	"github.com/jhoicas/Fichajes-api/pkg/logger"
)

// DashboardUseCase agrega las tarjetas del panel de obra: presencia, horas,
// coste de mano de obra y consumo de presupuesto. Solo lecturas y funciones
// puras de timeclock.
type DashboardUseCase struct {
	sessionRepo   repository.AttendanceRepository
	workerRepo    repository.WorkerRepository
	projectRepo   repository.ProjectRepository
	taskRepo      repository.TaskRepository
	inventoryRepo repository.InventoryRepository
	cutoffHour    int
	precision     int32
	log           *logger.Logger

	now func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	sessionRepo repository.AttendanceRepository,
	workerRepo repository.WorkerRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	inventoryRepo repository.InventoryRepository,
	cutoffHour int,
	precision int,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		sessionRepo:   sessionRepo,
		workerRepo:    workerRepo,
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		inventoryRepo: inventoryRepo,
		cutoffHour:    cutoffHour,
		precision:     int32(precision),
		log:           log,
		now:           time.Now,
	}
}

// ProjectStats calcula las estadísticas de una obra. Las tarifas ausentes
// cuentan 0 en el coste y generan un warning de calidad de datos en el
// resultado y en el log (política explícita, nunca silenciosa).
func (uc *DashboardUseCase) ProjectStats(projectID string) (*dto.ProjectStats, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	sessions, err := uc.sessionRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	rates, err := uc.workerRepo.RatesByID()
	if err != nil {
		return nil, err
	}

	now := uc.now()
	totalHours := timeclock.TotalHours(sessions)
	progress := timeclock.BudgetProgress(totalHours, project.BudgetHours)
	cost, missingRates := timeclock.LaborCost(sessions, rates)

	stats := &dto.ProjectStats{
		ProjectID:      projectID,
		PresentToday:   timeclock.PresentCount(sessions, now),
		TotalHours:     totalHours.Round(uc.precision).String(),
		LaborCost:      cost.Round(uc.precision).String(),
		BudgetHours:    project.BudgetHours.Round(uc.precision).String(),
		BudgetProgress: progress.Round(uc.precision).String(),
		OverBudget:     progress.GreaterThan(decimal.NewFromInt(100)),
	}
	for _, s := range sessions {
		if timeclock.Forgotten(s, now, uc.cutoffHour) {
			stats.ForgottenOpen++
		}
	}
	if len(missingRates) > 0 {
		stats.Warnings = append(stats.Warnings, domain.WarnDataQuality)
		uc.log.Warn().
			Strs("worker_ids", missingRates).
			Str("project_id", projectID).
			Msg("trabajadores sin tarifa horaria; cuentan 0 en el coste")
	}

	_, progressTasks, err := taskProgress(uc.taskRepo, projectID)
	if err != nil {
		return nil, err
	}
	stats.Tasks = *progressTasks

	items, err := uc.inventoryRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.LowStock() {
			stats.LowStockItems++
		}
	}
	return stats, nil
}

func taskProgress(repo repository.TaskRepository, projectID string) (int, *dto.TaskProgress, error) {
	tasks, err := repo.ListByProject(projectID)
	if err != nil {
		return 0, nil, err
	}
	progress := &dto.TaskProgress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Done {
			progress.Done++
		}
	}
	if progress.Total > 0 {
		progress.Percent = float64(progress.Done) / float64(progress.Total) * 100
	}
	return len(tasks), progress, nil
}
