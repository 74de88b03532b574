package report

import (
	"context"
	"time"

	"github.com/jhoicas/Fichajes-api/internal/domain"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
	"github.com/jhoicas/Fichajes-api/internal/domain/repository"
)

// UseCase arma los reportes de una obra: une las sesiones con el directorio de
// trabajadores y delega el formato al Formatter y a los generadores.
type UseCase struct {
	sessionRepo repository.AttendanceRepository
	workerRepo  repository.WorkerRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	docRepo     repository.DocumentRepository
	formatter   *Formatter
	spreadsheet SpreadsheetGenerator
	pdf         TimesheetPDFGenerator

	now func() time.Time
}

// NewUseCase construye el caso de uso de reporting.
func NewUseCase(
	sessionRepo repository.AttendanceRepository,
	workerRepo repository.WorkerRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	docRepo repository.DocumentRepository,
	formatter *Formatter,
	spreadsheet SpreadsheetGenerator,
	pdf TimesheetPDFGenerator,
) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		workerRepo:  workerRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		docRepo:     docRepo,
		formatter:   formatter,
		spreadsheet: spreadsheet,
		pdf:         pdf,
		now:         time.Now,
	}
}

// rowsForProject une sesiones y trabajadores. Una referencia colgante deja el
// nombre vacío y el Formatter la rinde como "unknown worker".
func (uc *UseCase) rowsForProject(projectID string) (*entity.Project, []Row, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, domain.ErrNotFound
	}
	sessions, err := uc.sessionRepo.ListByProject(projectID)
	if err != nil {
		return nil, nil, err
	}
	names := map[string]*entity.Worker{}
	rows := make([]Row, 0, len(sessions))
	for _, s := range sessions {
		w, ok := names[s.WorkerID]
		if !ok {
			w, err = uc.workerRepo.GetByID(s.WorkerID)
			if err != nil {
				return nil, nil, err
			}
			names[s.WorkerID] = w
		}
		row := Row{
			CheckIn:    s.CheckIn,
			CheckOut:   s.CheckOut,
			TotalHours: s.TotalHours,
		}
		if w != nil {
			row.WorkerName = w.Name
			row.Matricule = w.Matricule
		}
		rows = append(rows, row)
	}
	return project, rows, nil
}

// ExportCSV export tabular de la obra; requireNonEmpty es política del caller.
func (uc *UseCase) ExportCSV(projectID string, requireNonEmpty bool) (fileName, content string, err error) {
	project, rows, err := uc.rowsForProject(projectID)
	if err != nil {
		return "", "", err
	}
	content, err = uc.formatter.ExportCSV(rows, requireNonEmpty)
	if err != nil {
		return "", "", err
	}
	return FileName(project.Name, uc.now(), "csv"), content, nil
}

// ExportXLSX export Excel de la obra.
func (uc *UseCase) ExportXLSX(projectID string) (fileName string, content []byte, err error) {
	project, rows, err := uc.rowsForProject(projectID)
	if err != nil {
		return "", nil, err
	}
	content, err = uc.spreadsheet.TimesheetXLSX(project.Name, rows)
	if err != nil {
		return "", nil, err
	}
	return FileName(project.Name, uc.now(), "xlsx"), content, nil
}

// ExportPDF hoja de horas en PDF de la obra.
func (uc *UseCase) ExportPDF(ctx context.Context, projectID string) (fileName string, content []byte, err error) {
	project, rows, err := uc.rowsForProject(projectID)
	if err != nil {
		return "", nil, err
	}
	content, err = uc.pdf.GenerateTimesheetPDF(ctx, project.Name, rows)
	if err != nil {
		return "", nil, err
	}
	return FileName(project.Name, uc.now(), "pdf"), content, nil
}

// DaySummary arma el parte narrativo de fin de jornada del trabajador: su hora
// de salida de hoy, las tareas completadas de la obra, las notas libres y el
// número de fotos del dossier.
func (uc *UseCase) DaySummary(projectID, workerID, notes string) (subject, body string, err error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return "", "", err
	}
	if project == nil {
		return "", "", domain.ErrNotFound
	}
	worker, err := uc.workerRepo.GetByID(workerID)
	if err != nil {
		return "", "", err
	}

	in := SummaryInput{
		ProjectName: project.Name,
		Notes:       notes,
		Date:        uc.now(),
	}
	if worker != nil {
		in.WorkerName = worker.Name
	}

	sessions, err := uc.sessionRepo.ListByProject(projectID)
	if err != nil {
		return "", "", err
	}
	y, m, d := uc.now().Date()
	for _, s := range sessions {
		if s.WorkerID != workerID || s.CheckOut == nil {
			continue
		}
		sy, sm, sd := s.CheckOut.Date()
		if sy == y && sm == m && sd == d {
			in.DepartureTime = s.CheckOut
			break
		}
	}

	tasks, err := uc.taskRepo.ListByProject(projectID)
	if err != nil {
		return "", "", err
	}
	for _, t := range tasks {
		if t.Done {
			in.DoneTasks = append(in.DoneTasks, t.Label)
		}
	}

	in.PhotoCount, err = uc.docRepo.CountByKind(projectID, entity.DocPhoto)
	if err != nil {
		return "", "", err
	}

	subject, body = Summary(in)
	return subject, body, nil
}
