package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Fichajes-api/internal/application/attendance"
	"github.com/jhoicas/Fichajes-api/internal/application/auth"
	"github.com/jhoicas/Fichajes-api/internal/application/report"
	"github.com/jhoicas/Fichajes-api/internal/application/usecase"
	"github.com/jhoicas/Fichajes-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	WorkerUC       *usecase.WorkerUseCase
	ProjectUC      *usecase.ProjectUseCase
	AttendanceUC   *attendance.UseCase
	TaskUC         *usecase.TaskUseCase
	InventoryUC    *usecase.InventoryUseCase
	DocumentUC     *usecase.DocumentUseCase
	ReportUC       *report.UseCase
	DashboardUC    *usecase.DashboardUseCase
	JWTSecret      string
	HoursPrecision int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	leads := RequireRole(entity.RoleAdmin, entity.RoleSiteLead, entity.RoleCrewLead)

	// Workers (directorio; altas y ediciones solo admin)
	workers := protected.Group("/workers")
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workers.Get("/", workerHandler.List)
	workers.Get("/:id", workerHandler.GetByID)
	workers.Post("/", adminOnly, workerHandler.Create)
	workers.Put("/:id", adminOnly, workerHandler.Update)

	// Projects
	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Post("/", leads, projectHandler.Create)
	projects.Put("/:id", leads, projectHandler.Update)
	projects.Put("/:id/crew", leads, projectHandler.SetCrew)

	// Attendance (cualquier trabajador autenticado ficha por sí mismo)
	att := protected.Group("/attendance")
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC, deps.HoursPrecision)
	att.Post("/clock-in", attendanceHandler.ClockIn)
	att.Post("/clock-out", attendanceHandler.ClockOut)
	projects.Get("/:projectId/sessions", attendanceHandler.ListByProject)

	// Tasks
	tasks := protected.Group("/tasks")
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Post("/", taskHandler.Create)
	tasks.Put("/:id/done", taskHandler.Toggle)
	tasks.Delete("/:id", leads, taskHandler.Delete)
	projects.Get("/:projectId/tasks", taskHandler.ListByProject)

	// Inventory + pedidos urgentes
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv.Post("/items", leads, inventoryHandler.CreateItem)
	inv.Post("/items/:id/delta", inventoryHandler.ApplyDelta)
	inv.Post("/needs", inventoryHandler.CreateNeed)
	inv.Put("/needs/:id", leads, inventoryHandler.UpdateNeedStatus)
	projects.Get("/:projectId/inventory", inventoryHandler.ListByProject)
	projects.Get("/:projectId/needs", inventoryHandler.ListNeeds)

	// Documents (metadatos; el binario vive en el storage externo)
	docs := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	docs.Post("/", documentHandler.Register)
	docs.Delete("/:id", leads, documentHandler.Delete)
	projects.Get("/:projectId/documents", documentHandler.ListByProject)

	// Reports + panel
	reportHandler := NewReportHandler(deps.ReportUC)
	projects.Get("/:projectId/export/csv", leads, reportHandler.ExportCSV)
	projects.Get("/:projectId/export/xlsx", leads, reportHandler.ExportXLSX)
	projects.Get("/:projectId/export/pdf", leads, reportHandler.ExportPDF)
	projects.Post("/:projectId/summary", reportHandler.DaySummary)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	projects.Get("/:projectId/stats", dashboardHandler.ProjectStats)
}
